package keypair

import (
	"bytes"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PublicKeyLen is the length of a compressed secp256k1 public key.
	PublicKeyLen = secp256k1.PubKeyBytesLenCompressed

	// PrivateKeyLen is the length of a serialized secp256k1 private scalar.
	PrivateKeyLen = secp256k1.PrivKeyBytesLen

	pubKeyFormatEven = 0x02
	pubKeyFormatOdd  = 0x03
)

// material is the validated key material held by a KeyPair.  priv is nil for
// public-only pairs.
type material struct {
	pub      *secp256k1.PublicKey
	pubBytes []byte
	priv     *secp256k1.PrivateKey
}

// validatePublicKey ensures b is a compressed point on the secp256k1 curve.
func validatePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	if len(b) != PublicKeyLen {
		str := fmt.Sprintf("malformed public key: invalid length %d, want %d",
			len(b), PublicKeyLen)
		return nil, makeError(ErrInvalidKey, str)
	}
	if b[0] != pubKeyFormatEven && b[0] != pubKeyFormatOdd {
		str := fmt.Sprintf("malformed public key: invalid format byte %#02x",
			b[0])
		return nil, makeError(ErrInvalidKey, str)
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		str := fmt.Sprintf("invalid public key: %v", err)
		return nil, makeError(ErrInvalidKey, str)
	}
	return pub, nil
}

// validatePrivateKey ensures b is a 32 byte scalar in [1, N-1].
func validatePrivateKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		str := fmt.Sprintf("malformed private key: invalid length %d, want %d",
			len(b), PrivateKeyLen)
		return nil, makeError(ErrInvalidKey, str)
	}
	var k secp256k1.ModNScalar
	defer k.Zero()
	if overflow := k.SetByteSlice(b); overflow {
		return nil, makeError(ErrInvalidKey,
			"invalid private key: scalar is not less than the group order")
	}
	if k.IsZero() {
		return nil, makeError(ErrInvalidKey, "invalid private key: scalar is zero")
	}
	return secp256k1.NewPrivateKey(&k), nil
}

// derivePublicFromPrivate multiplies the base point by the private scalar.
func derivePublicFromPrivate(priv *secp256k1.PrivateKey) *secp256k1.PublicKey {
	return priv.PubKey()
}

// checkCorrespondence reports whether pub is the public key of priv.
func checkCorrespondence(pub []byte, priv *secp256k1.PrivateKey) bool {
	return bytes.Equal(pub, derivePublicFromPrivate(priv).SerializeCompressed())
}

// newMaterial validates the provided raw key bytes.  Either may be nil, but
// not both.  When only the private key is given the public key is derived
// from it.
func newMaterial(pubBytes, privBytes []byte) (*material, error) {
	if pubBytes == nil && privBytes == nil {
		return nil, makeError(ErrMissingKey,
			"either a public or a private key is required")
	}

	m := &material{}
	if privBytes != nil {
		priv, err := validatePrivateKey(privBytes)
		if err != nil {
			return nil, err
		}
		m.priv = priv
	}

	switch {
	case pubBytes != nil:
		pub, err := validatePublicKey(pubBytes)
		if err != nil {
			if m.priv != nil {
				m.priv.Zero()
			}
			return nil, err
		}
		if m.priv != nil && !checkCorrespondence(pubBytes, m.priv) {
			m.priv.Zero()
			return nil, makeError(ErrInvalidKey,
				"public key does not correspond to private key")
		}
		m.pub = pub
		m.pubBytes = append([]byte(nil), pubBytes...)

	default:
		m.pub = derivePublicFromPrivate(m.priv)
		m.pubBytes = m.pub.SerializeCompressed()
	}
	return m, nil
}

// ValidatePublicKey returns an error of kind ErrInvalidKey unless b is a
// 33 byte compressed secp256k1 point.
func ValidatePublicKey(b []byte) error {
	_, err := validatePublicKey(b)
	return err
}

// ValidatePrivateKey returns an error of kind ErrInvalidKey unless b is a
// 32 byte scalar in the range [1, N-1].
func ValidatePrivateKey(b []byte) error {
	priv, err := validatePrivateKey(b)
	if err != nil {
		return err
	}
	priv.Zero()
	return nil
}

// DerivePublicKey returns the compressed public key for the given private
// key bytes.
func DerivePublicKey(privateKey []byte) ([]byte, error) {
	priv, err := validatePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	return derivePublicFromPrivate(priv).SerializeCompressed(), nil
}
