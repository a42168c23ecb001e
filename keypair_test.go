package keypair

import (
	"bytes"
	"crypto"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKeyBase58 = "4HvXrvNBrmN5tUCwcjVWRpQG32CtuLvZ12xVf5rv8r1F"
	testPublicKeyBase58  = "231cRx1fhyNzrdj9i3UseKm1ApgMwyDLbKtJJH5AacEwL"
	testFingerprint      = "zQ3shnxmSoA9BJ2Djspq8RZkh9MNcUSYvFmP8Fp46aQqhpio4"
)

func testConfig() Config {
	return Config{
		Type:             Type,
		PrivateKeyBase58: testPrivateKeyBase58,
		PublicKeyBase58:  testPublicKeyBase58,
	}
}

func TestFrom(t *testing.T) {
	kp, err := From(testConfig())
	require.NoError(t, err)
	require.Equal(t, StateFull, kp.State())
	require.Equal(t, testPublicKeyBase58, kp.PublicKeyBase58())

	priv, err := kp.PrivateKeyBase58()
	require.NoError(t, err)
	require.Equal(t, testPrivateKeyBase58, priv)
	require.Equal(t, Type, kp.Type())
	require.Empty(t, kp.ID())
	require.Empty(t, kp.Controller())
}

func TestFromDerivesPublicKey(t *testing.T) {
	kp, err := From(Config{
		ID:               "did:example:123#key-1",
		Controller:       "did:example:123",
		PrivateKeyBase58: testPrivateKeyBase58,
	})
	require.NoError(t, err)
	require.Equal(t, testPublicKeyBase58, kp.PublicKeyBase58())
	require.Equal(t, "did:example:123#key-1", kp.ID())
	require.Equal(t, "did:example:123", kp.Controller())
}

func TestFromPublicOnly(t *testing.T) {
	kp, err := From(Config{PublicKeyBase58: testPublicKeyBase58})
	require.NoError(t, err)
	require.Equal(t, StatePublicOnly, kp.State())

	_, err = kp.PrivateKeyBase58()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
	_, err = kp.Signer()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestFromErrors(t *testing.T) {
	other, err := Generate()
	require.NoError(t, err)

	pub, _ := base58.Decode(testPublicKeyBase58)
	badFormat := append([]byte(nil), pub...)
	badFormat[0] = 0x04
	xTooBig := append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)

	var order [32]byte
	orderN := secp256k1.S256().Params().N.Bytes()
	copy(order[32-len(orderN):], orderN)

	tests := []struct {
		name string
		cfg  Config
		want ErrorKind
	}{{
		name: "no keys",
		cfg:  Config{ID: "did:example:123#key-1"},
		want: ErrMissingKey,
	}, {
		name: "wrong type",
		cfg:  Config{Type: "Ed25519VerificationKey2018", PublicKeyBase58: testPublicKeyBase58},
		want: ErrUnsupportedType,
	}, {
		name: "bad base58 public key",
		cfg:  Config{PublicKeyBase58: "0OIl"},
		want: ErrEncoding,
	}, {
		name: "bad base58 private key",
		cfg:  Config{PrivateKeyBase58: "0OIl"},
		want: ErrEncoding,
	}, {
		name: "short public key",
		cfg:  Config{PublicKeyBase58: base58.Encode(pub[:32])},
		want: ErrInvalidKey,
	}, {
		name: "bad public key format byte",
		cfg:  Config{PublicKeyBase58: base58.Encode(badFormat)},
		want: ErrInvalidKey,
	}, {
		name: "public key x not in field",
		cfg:  Config{PublicKeyBase58: base58.Encode(xTooBig)},
		want: ErrInvalidKey,
	}, {
		name: "zero private key",
		cfg:  Config{PrivateKeyBase58: base58.Encode(make([]byte, 32))},
		want: ErrInvalidKey,
	}, {
		name: "private key equal to order",
		cfg:  Config{PrivateKeyBase58: base58.Encode(order[:])},
		want: ErrInvalidKey,
	}, {
		name: "mismatched keys",
		cfg: Config{
			PrivateKeyBase58: testPrivateKeyBase58,
			PublicKeyBase58:  other.PublicKeyBase58(),
		},
		want: ErrInvalidKey,
	}}

	for _, test := range tests {
		_, err := From(test.cfg)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v (cfg %s)", test.name, err,
				test.want, spew.Sdump(test.cfg))
		}
	}
}

func TestRoundTripPrivateKey(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		var buf [32]byte
		r.Read(buf[:])
		if ValidatePrivateKey(buf[:]) != nil {
			continue
		}
		encoded := base58.Encode(buf[:])

		kp, err := From(Config{PrivateKeyBase58: encoded})
		require.NoError(t, err)
		got, err := kp.PrivateKeyBase58()
		require.NoError(t, err)
		require.Equal(t, encoded, got)

		want, err := DerivePublicKey(buf[:])
		require.NoError(t, err)
		require.Equal(t, want, kp.PublicKey())
	}
}

func TestFromRawKeys(t *testing.T) {
	pub := []byte{
		2, 19, 252, 160, 178, 177, 10, 253, 148, 118, 93, 42, 57, 95, 97, 25,
		46, 158, 19, 85, 69, 211, 237, 234, 166, 1, 94, 113, 54, 93, 140, 101,
		183,
	}
	priv := []byte{
		116, 116, 182, 199, 181, 251, 247, 83, 57, 194, 254, 7, 116, 187, 178,
		253, 139, 143, 132, 153, 110, 213, 142, 160, 190, 76, 129, 8, 162, 138,
		140, 155,
	}

	kp, err := FromRawKeys(pub, priv)
	require.NoError(t, err)
	require.Equal(t, StateFull, kp.State())

	signer, err := kp.Signer()
	require.NoError(t, err)
	data := []byte("test 1")
	sig, err := signer.Sign(data)
	require.NoError(t, err)
	ok, err := kp.Verifier().Verify(data, sig)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = FromRawKeys(pub, nil)
	require.ErrorIs(t, err, ErrMissingKey)

	flipped := append([]byte(nil), priv...)
	flipped[31] ^= 0x01
	_, err = FromRawKeys(pub, flipped)
	require.ErrorIs(t, err, ErrInvalidKey)
}

// sequenceReader yields the queued chunks in order and then EOF.
type sequenceReader struct {
	chunks [][]byte
}

func (s *sequenceReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks = s.chunks[1:]
	return n, nil
}

func TestGenerate(t *testing.T) {
	kp, err := Generate(WithID("did:example:456#key-1"),
		WithController("did:example:456"))
	require.NoError(t, err)
	require.Equal(t, StateFull, kp.State())
	require.Equal(t, "did:example:456#key-1", kp.ID())
	require.Equal(t, "did:example:456", kp.Controller())
	require.Len(t, kp.PublicKey(), PublicKeyLen)

	other, err := Generate()
	require.NoError(t, err)
	require.NotEqual(t, kp.PublicKey(), other.PublicKey())
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	b, err := Generate(WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestGenerateRedraw(t *testing.T) {
	valid := bytes.Repeat([]byte{0x01}, 32)
	r := &sequenceReader{chunks: [][]byte{
		make([]byte, 32),               // zero
		bytes.Repeat([]byte{0xff}, 32), // above the order
		valid,
	}}

	kp, err := Generate(WithRand(r))
	require.NoError(t, err)
	priv, err := kp.PrivateKey()
	require.NoError(t, err)
	require.Equal(t, valid, priv)
}

func TestGenerateEntropyFailures(t *testing.T) {
	_, err := Generate(WithRand(&sequenceReader{}))
	require.ErrorIs(t, err, ErrEntropy)

	chunks := make([][]byte, maxGenerateAttempts)
	for i := range chunks {
		chunks[i] = make([]byte, 32)
	}
	_, err = Generate(WithRand(&sequenceReader{chunks: chunks}))
	require.ErrorIs(t, err, ErrEntropy)
}

func TestFingerprint(t *testing.T) {
	fp, err := FingerprintFromPublicKey(testPublicKeyBase58)
	require.NoError(t, err)
	require.Equal(t, testFingerprint, fp)

	kp, err := From(testConfig())
	require.NoError(t, err)
	require.Equal(t, testFingerprint, kp.Fingerprint())
	require.Equal(t, kp.Fingerprint(), kp.Fingerprint())

	res := kp.VerifyFingerprint(testFingerprint)
	require.True(t, res.Valid, spew.Sdump(res))
	require.Equal(t, ReasonNone, res.Reason)
	require.NoError(t, res.Err)
}

func TestFromFingerprint(t *testing.T) {
	kp, err := FromFingerprint(testFingerprint)
	require.NoError(t, err)
	require.Equal(t, StatePublicOnly, kp.State())
	require.Equal(t, Type, kp.Type())
	require.Equal(t, testPublicKeyBase58, kp.PublicKeyBase58())
	require.True(t, kp.VerifyFingerprint(testFingerprint).Valid)

	_, err = kp.Signer()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
	_, err = kp.CryptoSigner()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestVerifyFingerprintMismatch(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	res := kp.VerifyFingerprint(testFingerprint)
	require.False(t, res.Valid)
	require.Equal(t, ReasonMismatch, res.Reason)
	require.ErrorIs(t, res.Err, ErrFingerprintMismatch)
}

func TestExport(t *testing.T) {
	kp, err := From(Config{
		ID:               "did:example:123#key-1",
		Controller:       "did:example:123",
		PrivateKeyBase58: testPrivateKeyBase58,
	})
	require.NoError(t, err)

	vm, err := kp.Export(ExportOptions{PublicKey: true, IncludeContext: true})
	require.NoError(t, err)
	require.Equal(t, SuiteContext, vm.Context)
	require.Equal(t, testPublicKeyBase58, vm.PublicKeyBase58)
	require.Empty(t, vm.PrivateKeyBase58)

	vm, err = kp.Export(ExportOptions{PublicKey: true, PrivateKey: true,
		IncludeContext: true})
	require.NoError(t, err)
	data, err := json.Marshal(vm)
	require.NoError(t, err)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	require.Equal(t, vm.Config(), cfg)

	restored, err := From(cfg)
	require.NoError(t, err)
	require.Equal(t, kp.Fingerprint(), restored.Fingerprint())
	require.Equal(t, kp.ID(), restored.ID())

	public, err := FromFingerprint(kp.Fingerprint())
	require.NoError(t, err)
	_, err = public.Export(ExportOptions{PrivateKey: true})
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestParseConfigRejectsUnknownFields(t *testing.T) {
	_, err := ParseConfig([]byte(`{"publicKeyBase58":"` + testPublicKeyBase58 +
		`","publicKeyHex":"02"}`))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte(`{"id": 1}`))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte(`{} {}`))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestZero(t *testing.T) {
	kp, err := From(testConfig())
	require.NoError(t, err)
	signer, err := kp.Signer()
	require.NoError(t, err)
	cs, err := kp.CryptoSigner()
	require.NoError(t, err)

	kp.Zero()
	require.Equal(t, StatePublicOnly, kp.State())
	_, err = kp.Signer()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
	require.Equal(t, testFingerprint, kp.Fingerprint())

	// Signers handed out earlier must not sign with the wiped scalar.
	sig, err := signer.Sign([]byte("test 1"))
	require.ErrorIs(t, err, ErrMissingPrivateKey)
	require.Nil(t, sig)
	digest := make([]byte, 32)
	_, err = cs.Sign(nil, digest, crypto.SHA256)
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestNewMaterialRejectsBadPublicKey(t *testing.T) {
	priv, err := base58.Decode(testPrivateKeyBase58)
	require.NoError(t, err)
	badPub := append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)

	_, err = FromRawKeys(badPub, priv)
	require.ErrorIs(t, err, ErrInvalidKey)

	// The caller's private key bytes are left untouched.
	require.Equal(t, testPrivateKeyBase58, base58.Encode(priv))
}

func TestSharedSecret(t *testing.T) {
	alice, err := Generate()
	require.NoError(t, err)
	bob, err := Generate()
	require.NoError(t, err)

	ab, err := alice.SharedSecret(bob)
	require.NoError(t, err)
	ba, err := bob.SharedSecret(alice)
	require.NoError(t, err)
	require.Equal(t, ab, ba)
	require.Len(t, ab, 32)

	public, err := FromFingerprint(bob.Fingerprint())
	require.NoError(t, err)
	viaPublic, err := alice.SharedSecret(public)
	require.NoError(t, err)
	require.Equal(t, ab, viaPublic)

	_, err = public.SharedSecret(alice)
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}
