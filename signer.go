package keypair

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/minio/sha256-simd"
)

// SignatureLen is the length of a raw R || S signature.
const SignatureLen = 64

// Signer signs arbitrary data with a key pair's private key.
type Signer struct {
	priv *secp256k1.PrivateKey
}

// Verifier checks signatures against a key pair's public key.
type Verifier struct {
	pub *secp256k1.PublicKey
}

// Signer returns a Signer bound to the private key.  It fails with
// ErrMissingPrivateKey on public-only key pairs.
func (kp *KeyPair) Signer() (*Signer, error) {
	priv, err := kp.privateKey("Signer")
	if err != nil {
		return nil, err
	}
	return &Signer{priv: priv}, nil
}

// Verifier returns a Verifier bound to the public key.
func (kp *KeyPair) Verifier() *Verifier {
	return &Verifier{pub: kp.key.pub}
}

// Sign hashes data with SHA-256 and returns the RFC6979 deterministic ECDSA
// signature as 64 bytes R || S with S in the lower half of the order.
// A Signer whose key pair has since been zeroed fails with
// ErrMissingPrivateKey.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	if s.priv.Key.IsZero() {
		return nil, makeError(ErrMissingPrivateKey,
			"Sign: private key has been zeroed")
	}
	digest := sha256.Sum256(data)
	sig := ecdsa.Sign(s.priv, digest[:])

	r, sv := sig.R(), sig.S()
	out := make([]byte, SignatureLen)
	r.PutBytesUnchecked(out[:32])
	sv.PutBytesUnchecked(out[32:])
	return out, nil
}

// Verify reports whether signature is a valid signature of data.  A
// signature that does not verify is reported as false.  Only a signature of
// the wrong length is an error.
func (v *Verifier) Verify(data, signature []byte) (bool, error) {
	if len(signature) != SignatureLen {
		str := fmt.Sprintf("malformed signature: invalid length %d, want %d",
			len(signature), SignatureLen)
		return false, makeError(ErrInvalidSignature, str)
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow || r.IsZero() {
		return false, nil
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow || s.IsZero() {
		return false, nil
	}

	digest := sha256.Sum256(data)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], v.pub), nil
}
