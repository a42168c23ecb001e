// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidKey is returned when key material has the wrong length, a
	// public key is not a point on the curve, a private scalar is outside of
	// [1, N-1], or a public and private key do not belong together.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrDecode is returned when a fingerprint has the wrong multibase prefix,
	// is not valid base58, has a garbled multicodec tag or decodes to the
	// wrong number of bytes.
	ErrDecode = ErrorKind("ErrDecode")

	// ErrUnsupportedCodec is returned when a fingerprint decodes cleanly but
	// carries a multicodec tag other than secp256k1-pub.
	ErrUnsupportedCodec = ErrorKind("ErrUnsupportedCodec")

	// ErrMissingPrivateKey is returned when an operation that needs the
	// private key is requested on a public-only key pair.
	ErrMissingPrivateKey = ErrorKind("ErrMissingPrivateKey")

	// ErrMissingKey is returned when a configuration supplies neither a
	// public nor a private key.
	ErrMissingKey = ErrorKind("ErrMissingKey")

	// ErrEncoding is returned when a base58 or base64url key field is
	// malformed.
	ErrEncoding = ErrorKind("ErrEncoding")

	// ErrUnsupportedType is returned when a configuration names a
	// verification method type other than the one this package implements.
	ErrUnsupportedType = ErrorKind("ErrUnsupportedType")

	// ErrInvalidConfig is returned when a serialized configuration cannot be
	// parsed or contains unrecognized fields.
	ErrInvalidConfig = ErrorKind("ErrInvalidConfig")

	// ErrEntropy is returned when the random source fails or keeps producing
	// scalars outside of the valid range.
	ErrEntropy = ErrorKind("ErrEntropy")

	// ErrInvalidSignature is returned when a signature does not have the
	// fixed 64 byte R || S length.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")

	// ErrInvalidDigest is returned when a digest handed to the crypto.Signer
	// adapter is not a 32 byte SHA-256 digest.
	ErrInvalidDigest = ErrorKind("ErrInvalidDigest")

	// ErrFingerprintMismatch is reported when a well-formed fingerprint names
	// a different public key.
	ErrFingerprintMismatch = ErrorKind("ErrFingerprintMismatch")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to key pair handling.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
