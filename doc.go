// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package keypair implements EcdsaSecp256k1VerificationKey2019 key pairs for
decentralized identity systems.

A KeyPair holds a compressed secp256k1 public key and, optionally, the
matching private scalar.  Key pairs are immutable once constructed and are
either full (public and private key) or public-only.  The curve arithmetic and
ECDSA primitives are provided by github.com/decred/dcrd/dcrec/secp256k1/v4.

An overview of the features provided by this package are as follows:

  - Private key generation from an injectable random source
  - Construction from raw bytes, base58 fields, JSON Web Keys or fingerprints
  - Validation of key lengths, curve membership, scalar range and
    public/private correspondence
  - Fingerprints: multibase base58btc ('z') of the secp256k1-pub multicodec
    tag (0xe7 0x01) followed by the 33 byte compressed public key
  - Signing and verification of arbitrary data using SHA-256 and RFC6979
    deterministic ECDSA with 64 byte R || S signatures
  - A crypto.Signer adapter producing DER signatures
  - ECDH shared secrets
  - Export as a verification method

Errors returned by this package are of type Error and can be matched against
their ErrorKind with errors.Is.  Fingerprint mismatches and signatures that do
not verify are reported as results, not errors.

Hierarchical deterministic derivation (BIP32) of key pairs is provided by the
hdkey sub package.
*/
package keypair
