package keypair

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"
)

// Type is the verification method type of every key pair in this package.
const Type = "EcdsaSecp256k1VerificationKey2019"

// maxGenerateAttempts bounds the number of scalar draws in Generate.  A
// uniform 32 byte draw is out of range with probability below 2^-127, so a
// reader that fails this many times in a row is broken.
const maxGenerateAttempts = 16

// State is the lifecycle state of a KeyPair.
type State uint8

const (
	// StatePublicOnly is a key pair holding only a public key.
	StatePublicOnly State = iota

	// StateFull is a key pair holding both public and private keys.
	StateFull
)

// String returns the State as a human-readable string.
func (s State) String() string {
	switch s {
	case StateFull:
		return "full"
	case StatePublicOnly:
		return "public-only"
	}
	return fmt.Sprintf("Unknown State (%d)", uint8(s))
}

// KeyPair is an EcdsaSecp256k1VerificationKey2019 key pair.  It is immutable
// after construction and safe for concurrent use, with the exception of Zero.
type KeyPair struct {
	id         string
	controller string
	key        *material
}

// GenerateOption configures Generate.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	id         string
	controller string
	rand       io.Reader
}

// WithID sets the identifier of a generated key pair.
func WithID(id string) GenerateOption {
	return func(o *generateOptions) { o.id = id }
}

// WithController sets the controller of a generated key pair.
func WithController(controller string) GenerateOption {
	return func(o *generateOptions) { o.controller = controller }
}

// WithRand replaces crypto/rand.Reader as the source of private scalars.  The
// reader must be safe for the caller's concurrency pattern.
func WithRand(r io.Reader) GenerateOption {
	return func(o *generateOptions) { o.rand = r }
}

// Generate returns a new key pair with a uniformly random private key.
func Generate(opts ...GenerateOption) (*KeyPair, error) {
	o := generateOptions{rand: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}

	var buf [PrivateKeyLen]byte
	defer zeroBytes(buf[:])
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		if _, err := io.ReadFull(o.rand, buf[:]); err != nil {
			str := fmt.Sprintf("failed to read random scalar: %v", err)
			return nil, makeError(ErrEntropy, str)
		}
		priv, err := validatePrivateKey(buf[:])
		if err != nil {
			log.Debug("redrawing out of range scalar", zap.Int("attempt", attempt))
			continue
		}
		pub := derivePublicFromPrivate(priv)
		return &KeyPair{
			id:         o.id,
			controller: o.controller,
			key: &material{
				pub:      pub,
				pubBytes: pub.SerializeCompressed(),
				priv:     priv,
			},
		}, nil
	}
	str := fmt.Sprintf("no valid scalar after %d draws", maxGenerateAttempts)
	return nil, makeError(ErrEntropy, str)
}

// FromRawKeys returns a key pair built from already generated raw key bytes,
// for instance the output of an external key agreement flow.  Both keys are
// validated and must correspond.
func FromRawKeys(publicKey, privateKey []byte) (*KeyPair, error) {
	if publicKey == nil || privateKey == nil {
		return nil, makeError(ErrMissingKey,
			"both public and private key bytes are required")
	}
	m, err := newMaterial(publicKey, privateKey)
	if err != nil {
		log.Debug("rejected raw key pair", zap.Error(err))
		return nil, err
	}
	return &KeyPair{key: m}, nil
}

// FromPublicKey returns a public-only key pair for a compressed public key.
func FromPublicKey(publicKey []byte) (*KeyPair, error) {
	if publicKey == nil {
		return nil, makeError(ErrMissingKey, "public key bytes are required")
	}
	m, err := newMaterial(publicKey, nil)
	if err != nil {
		return nil, err
	}
	return &KeyPair{key: m}, nil
}

// From returns a key pair described by cfg.  When both keys are present they
// must correspond; when only the private key is present the public key is
// derived from it.
func From(cfg Config) (*KeyPair, error) {
	if cfg.Type != "" && cfg.Type != Type {
		str := fmt.Sprintf("unsupported key type %q, want %q", cfg.Type, Type)
		return nil, makeError(ErrUnsupportedType, str)
	}

	var pub, priv []byte
	var err error
	if cfg.PublicKeyBase58 != "" {
		if pub, err = decodeBase58("publicKeyBase58", cfg.PublicKeyBase58); err != nil {
			return nil, err
		}
	}
	if cfg.PrivateKeyBase58 != "" {
		if priv, err = decodeBase58("privateKeyBase58", cfg.PrivateKeyBase58); err != nil {
			return nil, err
		}
		defer zeroBytes(priv)
	}

	m, err := newMaterial(pub, priv)
	if err != nil {
		log.Debug("rejected key pair configuration", zap.String("id", cfg.ID),
			zap.Error(err))
		return nil, err
	}
	return &KeyPair{id: cfg.ID, controller: cfg.Controller, key: m}, nil
}

// FromFingerprint returns the public-only key pair named by fingerprint.
func FromFingerprint(fingerprint string) (*KeyPair, error) {
	pub, err := DecodeFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	return FromPublicKey(pub)
}

// ID returns the caller supplied identifier, or "" when unset.
func (kp *KeyPair) ID() string {
	return kp.id
}

// Controller returns the caller supplied controller, or "" when unset.
func (kp *KeyPair) Controller() string {
	return kp.controller
}

// Type returns the verification method type.
func (kp *KeyPair) Type() string {
	return Type
}

// State reports whether the key pair holds a private key.
func (kp *KeyPair) State() State {
	if kp.key.priv == nil {
		return StatePublicOnly
	}
	return StateFull
}

// privateKey is the single place that enforces the StateFull precondition.
func (kp *KeyPair) privateKey(op string) (*secp256k1.PrivateKey, error) {
	if kp.key.priv == nil {
		str := fmt.Sprintf("%s requires a private key", op)
		return nil, makeError(ErrMissingPrivateKey, str)
	}
	return kp.key.priv, nil
}

// PublicKey returns a copy of the compressed public key.
func (kp *KeyPair) PublicKey() []byte {
	return append([]byte(nil), kp.key.pubBytes...)
}

// PublicKeyBase58 returns the base58 encoding of the compressed public key.
func (kp *KeyPair) PublicKeyBase58() string {
	return encodeBase58(kp.key.pubBytes)
}

// PrivateKey returns a copy of the 32 byte private scalar.
func (kp *KeyPair) PrivateKey() ([]byte, error) {
	priv, err := kp.privateKey("PrivateKey")
	if err != nil {
		return nil, err
	}
	return priv.Serialize(), nil
}

// PrivateKeyBase58 returns the base58 encoding of the private scalar.
func (kp *KeyPair) PrivateKeyBase58() (string, error) {
	priv, err := kp.PrivateKey()
	if err != nil {
		return "", err
	}
	defer zeroBytes(priv)
	return encodeBase58(priv), nil
}

// Fingerprint returns the fingerprint of the public key.
func (kp *KeyPair) Fingerprint() string {
	// The key was validated on construction so encoding cannot fail.
	fp, err := encodeFingerprint(kp.key.pubBytes)
	if err != nil {
		panic(fmt.Sprintf("encoding fingerprint of validated key: %v", err))
	}
	return fp
}

// VerifyFingerprint reports whether fingerprint names this key pair's public
// key.
func (kp *KeyPair) VerifyFingerprint(fingerprint string) FingerprintResult {
	return VerifyFingerprint(fingerprint, kp.key.pubBytes)
}

// Zero overwrites the private key.  The key pair behaves as public-only
// afterwards.  It must not be called concurrently with other methods on the
// same key pair.
func (kp *KeyPair) Zero() {
	if kp.key.priv != nil {
		kp.key.priv.Zero()
		kp.key.priv = nil
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
