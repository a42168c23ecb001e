// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SharedSecret generates a shared secret between this key pair's private key
// and the peer's public key using Diffie-Hellman key exchange (ECDH) (RFC
// 5903).  RFC5903 Section 9 states we should only return x.
//
// It is recommended to securely hash the result before using as a
// cryptographic key.
func (kp *KeyPair) SharedSecret(peer *KeyPair) ([]byte, error) {
	priv, err := kp.privateKey("SharedSecret")
	if err != nil {
		return nil, err
	}

	var point, result secp256k1.JacobianPoint
	peer.key.pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &result)
	result.ToAffine()
	xBytes := result.X.Bytes()
	return xBytes[:], nil
}
