package hdkey

import (
	"errors"
)

var (
	ErrInvalidKey                 = errors.New("derived key is invalid")
	ErrInvalidSeed                = errors.New("seed is invalid")
	ErrInvalidChainCode           = errors.New("chain code is invalid")
	ErrDerivingHardenedFromPublic = errors.New("cannot derive a hardened key from public key")
	ErrBadChecksum                = errors.New("bad extended key checksum")
	ErrInvalidKeyLen              = errors.New("serialized extended key length is invalid")
	ErrMaxDepthExceeded           = errors.New("max depth exceeded")
	ErrInvalidPrivateFlag         = errors.New("key private flag does not match version")
	ErrUnknownVersion             = errors.New("unknown extended key version")
)
