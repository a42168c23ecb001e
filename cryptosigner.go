package keypair

import (
	"crypto"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignOptions implements crypto.SignerOpts.  Only SHA-256 or the zero hash
// are accepted.
type SignOptions struct {
	Hash crypto.Hash
}

// HashFunc returns the hash used to produce the digest.  A nil *SignOptions
// reports SHA-256.
func (s *SignOptions) HashFunc() crypto.Hash {
	if s == nil {
		return crypto.SHA256
	}
	return s.Hash
}

// cryptoSigner adapts a private key to crypto.Signer.
type cryptoSigner struct {
	priv *secp256k1.PrivateKey
}

// CryptoSigner returns the private key as a crypto.Signer producing DER
// encoded signatures over SHA-256 digests, for use with packages such as
// crypto/x509.
func (kp *KeyPair) CryptoSigner() (crypto.Signer, error) {
	priv, err := kp.privateKey("CryptoSigner")
	if err != nil {
		return nil, err
	}
	return &cryptoSigner{priv: priv}, nil
}

// Public returns the public key as a *crypto/ecdsa.PublicKey.
func (c *cryptoSigner) Public() crypto.PublicKey {
	return c.priv.PubKey().ToECDSA()
}

// Sign will sign the provided digest, returning the DER encoded signature.
// The random source is ignored since nonces are derived per RFC6979. [SignOptions]
// can be used to pass options.
func (c *cryptoSigner) Sign(_ io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 && opts.HashFunc() != crypto.SHA256 {
		str := fmt.Sprintf("unsupported hash %v, want %v", opts.HashFunc(),
			crypto.SHA256)
		return nil, makeError(ErrInvalidDigest, str)
	}
	if len(digest) != crypto.SHA256.Size() {
		str := fmt.Sprintf("bad digest length %d, want %d", len(digest),
			crypto.SHA256.Size())
		return nil, makeError(ErrInvalidDigest, str)
	}
	if c.priv.Key.IsZero() {
		return nil, makeError(ErrMissingPrivateKey,
			"Sign: private key has been zeroed")
	}
	return ecdsa.Sign(c.priv, digest).Serialize(), nil // DER
}
