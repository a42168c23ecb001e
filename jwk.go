package keypair

import (
	"encoding/base64"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	jwkKeyType = "EC"
	jwkCurve   = "secp256k1"
	coordLen   = 32
)

// JWK is a secp256k1 JSON Web Key (RFC 7517, RFC 8812).
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d,omitempty"`
	Kid string `json:"kid,omitempty"`
}

// JWK returns the key pair as a JSON Web Key.  The private scalar is included
// only when includePrivate is set, which fails on public-only key pairs.
func (kp *KeyPair) JWK(includePrivate bool) (*JWK, error) {
	uncompressed := kp.key.pub.SerializeUncompressed()
	jwk := &JWK{
		Kty: jwkKeyType,
		Crv: jwkCurve,
		X:   base64.RawURLEncoding.EncodeToString(uncompressed[1 : 1+coordLen]),
		Y:   base64.RawURLEncoding.EncodeToString(uncompressed[1+coordLen:]),
		Kid: kp.id,
	}
	if includePrivate {
		priv, err := kp.PrivateKey()
		if err != nil {
			return nil, err
		}
		defer zeroBytes(priv)
		jwk.D = base64.RawURLEncoding.EncodeToString(priv)
	}
	return jwk, nil
}

// FromJWK returns the key pair described by a secp256k1 JSON Web Key.  The
// key pair is full when the JWK carries d and public-only otherwise.
func FromJWK(jwk *JWK) (*KeyPair, error) {
	if jwk.Kty != jwkKeyType || jwk.Crv != jwkCurve {
		str := fmt.Sprintf("unsupported JWK kty %q crv %q", jwk.Kty, jwk.Crv)
		return nil, makeError(ErrUnsupportedType, str)
	}

	uncompressed := make([]byte, 0, secp256k1.PubKeyBytesLenUncompressed)
	uncompressed = append(uncompressed, secp256k1.PubKeyFormatUncompressed)
	for _, c := range []struct{ name, val string }{{"x", jwk.X}, {"y", jwk.Y}} {
		b, err := base64.RawURLEncoding.DecodeString(c.val)
		if err != nil {
			str := fmt.Sprintf("malformed JWK %s: %v", c.name, err)
			return nil, makeError(ErrEncoding, str)
		}
		if len(b) != coordLen {
			str := fmt.Sprintf("malformed JWK %s: invalid length %d, want %d",
				c.name, len(b), coordLen)
			return nil, makeError(ErrInvalidKey, str)
		}
		uncompressed = append(uncompressed, b...)
	}
	pub, err := secp256k1.ParsePubKey(uncompressed)
	if err != nil {
		str := fmt.Sprintf("invalid JWK public key: %v", err)
		return nil, makeError(ErrInvalidKey, str)
	}

	var priv []byte
	if jwk.D != "" {
		if priv, err = base64.RawURLEncoding.DecodeString(jwk.D); err != nil {
			str := fmt.Sprintf("malformed JWK d: %v", err)
			return nil, makeError(ErrEncoding, str)
		}
		defer zeroBytes(priv)
	}

	m, err := newMaterial(pub.SerializeCompressed(), priv)
	if err != nil {
		return nil, err
	}
	return &KeyPair{id: jwk.Kid, key: m}, nil
}
