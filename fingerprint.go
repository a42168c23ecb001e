package keypair

import (
	"bytes"
	"errors"
	"fmt"
)

// FingerprintReason describes why a fingerprint failed to verify.
type FingerprintReason int

const (
	// ReasonNone means the fingerprint matched.
	ReasonNone FingerprintReason = iota

	// ReasonMalformed means the fingerprint could not be decoded: wrong
	// multibase prefix, bad base58, garbled tag or wrong length.
	ReasonMalformed

	// ReasonUnsupportedCodec means the fingerprint decoded but is tagged with
	// a multicodec other than secp256k1-pub.
	ReasonUnsupportedCodec

	// ReasonInvalidKey means the fingerprint carried 33 bytes that are not a
	// valid secp256k1 point.
	ReasonInvalidKey

	// ReasonMismatch means the fingerprint is well formed but names a
	// different public key.
	ReasonMismatch
)

var reasonStrings = map[FingerprintReason]string{
	ReasonNone:             "none",
	ReasonMalformed:        "malformed fingerprint",
	ReasonUnsupportedCodec: "unsupported multicodec",
	ReasonInvalidKey:       "invalid public key",
	ReasonMismatch:         "public key mismatch",
}

// String returns the FingerprintReason as a human-readable string.
func (r FingerprintReason) String() string {
	if s, ok := reasonStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("Unknown FingerprintReason (%d)", int(r))
}

// FingerprintResult is the outcome of comparing a fingerprint with a public
// key.  Err is nil when Valid is true.
type FingerprintResult struct {
	Valid  bool
	Reason FingerprintReason
	Err    error
}

// EncodeFingerprint returns the multibase base58btc encoding of the
// secp256k1-pub multicodec tag followed by the compressed public key.
func EncodeFingerprint(publicKey []byte) (string, error) {
	if _, err := validatePublicKey(publicKey); err != nil {
		return "", err
	}
	return encodeFingerprint(publicKey)
}

// encodeFingerprint skips validation for keys already held by a KeyPair.
func encodeFingerprint(publicKey []byte) (string, error) {
	buf := make([]byte, 0, len(codecPrefix)+len(publicKey))
	buf = append(buf, codecPrefix...)
	buf = append(buf, publicKey...)
	return multibaseEncode(buf)
}

// DecodeFingerprint returns the compressed public key named by fingerprint.
func DecodeFingerprint(fingerprint string) ([]byte, error) {
	data, err := multibaseDecode(fingerprint)
	if err != nil {
		return nil, err
	}
	pub, err := splitCodec(data)
	if err != nil {
		return nil, err
	}
	if len(pub) != PublicKeyLen {
		str := fmt.Sprintf("malformed fingerprint: decoded key length %d, "+
			"want %d", len(pub), PublicKeyLen)
		return nil, makeError(ErrDecode, str)
	}
	if _, err := validatePublicKey(pub); err != nil {
		return nil, err
	}
	return pub, nil
}

// VerifyFingerprint reports whether fingerprint names publicKey.  Failures
// are reported in the result and never as a panic or error return.
func VerifyFingerprint(fingerprint string, publicKey []byte) FingerprintResult {
	decoded, err := DecodeFingerprint(fingerprint)
	if err != nil {
		return FingerprintResult{Reason: reasonFor(err), Err: err}
	}
	if !bytes.Equal(decoded, publicKey) {
		err := makeError(ErrFingerprintMismatch,
			"fingerprint does not match public key")
		return FingerprintResult{Reason: ReasonMismatch, Err: err}
	}
	return FingerprintResult{Valid: true}
}

func reasonFor(err error) FingerprintReason {
	switch {
	case errors.Is(err, ErrUnsupportedCodec):
		return ReasonUnsupportedCodec
	case errors.Is(err, ErrInvalidKey):
		return ReasonInvalidKey
	default:
		return ReasonMalformed
	}
}

// FingerprintFromPublicKey returns the fingerprint for a base58 encoded
// compressed public key.
func FingerprintFromPublicKey(publicKeyBase58 string) (string, error) {
	pub, err := decodeBase58("publicKeyBase58", publicKeyBase58)
	if err != nil {
		return "", err
	}
	return EncodeFingerprint(pub)
}
