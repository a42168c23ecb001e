// Package hdkey derives key pairs hierarchically from a seed following BIP32.
package hdkey

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/ModChain/keypair"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
)

const (
	// HardenedBit marks a child index as hardened.
	HardenedBit = 0x80000000

	// MinSeedLen and MaxSeedLen bound the seed accepted by NewMaster.
	MinSeedLen = 16
	MaxSeedLen = 64

	chainCodeLen = 32

	// version (4) || depth (1) || parent fingerprint (4) ||
	// child num (4) || chain code (32) || key data (33)
	serializedKeyLen = 4 + 1 + 4 + 4 + chainCodeLen + 33
	checksumLen      = 4
)

var masterKey = []byte("Bitcoin seed")

// ExtendedKey is a BIP32 extended key.  KeyData holds the 32 byte private
// scalar for private keys and the 33 byte compressed public key otherwise.
type ExtendedKey struct {
	Version           KeyVersion
	Depth             uint8
	ParentFingerprint [4]byte
	ChildNumber       uint32
	KeyData           []byte
	ChainCode         []byte
}

// NewMaster returns the master extended private key for seed.
func NewMaster(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedLen || len(seed) > MaxSeedLen {
		return nil, ErrInvalidSeed
	}
	il, key, chainCode, err := splitHMAC(seed, masterKey)
	if err != nil {
		return nil, ErrInvalidSeed
	}
	il.Zero()

	return &ExtendedKey{
		Version:   MainnetPrivate,
		KeyData:   append([]byte(nil), key...),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

// FromPublicKey returns a depth zero extended public key for the public key
// of kp and the given chain code.
func FromPublicKey(kp *keypair.KeyPair, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != chainCodeLen {
		return nil, ErrInvalidChainCode
	}
	return &ExtendedKey{
		Version:   MainnetPublic,
		KeyData:   kp.PublicKey(),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

// Parse decodes a base58check serialized extended key.
func Parse(str string) (*ExtendedKey, error) {
	bin, err := base58.Decode(str)
	if err != nil {
		return nil, err
	}

	k := &ExtendedKey{}
	return k, k.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives the extended key at index i.  Private parents derive private
// children and public parents derive public children.
//
// Indexes with HardenedBit set derive hardened children, which is only
// possible from a private parent:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	child, _, err := k.child(i)
	return child, err
}

func (k *ExtendedKey) child(i uint32) (*ExtendedKey, []byte, error) {
	if k.Depth == 0xff {
		return nil, nil, ErrMaxDepthExceeded
	}

	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return nil, nil, ErrDerivingHardenedFromPublic
	}

	parentPub, err := k.pubKeyBytes()
	if err != nil {
		return nil, nil, err
	}

	const keyLen = 33
	data := make([]byte, keyLen+4)
	if isChildHardened {
		// 0x00 || ser256(kpar) || ser32(i)
		copy(data[1:], k.KeyData)
	} else {
		// serP(point(kpar)) || ser32(i)
		copy(data, parentPub)
	}
	binary.BigEndian.PutUint32(data[keyLen:], i)

	il, ilBytes, chainCode, err := splitHMAC(data, k.ChainCode)
	zero(data)
	if err != nil {
		return nil, nil, err
	}
	defer il.Zero()

	child := &ExtendedKey{
		Depth:       k.Depth + 1,
		ChildNumber: i,
		ChainCode:   append([]byte(nil), chainCode...),
	}
	copy(child.ParentFingerprint[:], hash160(parentPub))

	if k.IsPrivate() {
		// ki = parse256(IL) + kpar (mod n)
		var key secp256k1.ModNScalar
		key.SetByteSlice(k.KeyData)
		key.Add(&il)
		if key.IsZero() {
			return nil, nil, ErrInvalidKey
		}
		keyData := key.Bytes()
		key.Zero()
		child.KeyData = keyData[:]
		child.Version = k.Version
	} else {
		// Ki = point(parse256(IL)) + Kpar
		parent, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, nil, err
		}
		var ilPoint, parentPoint, result secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(&il, &ilPoint)
		parent.AsJacobian(&parentPoint)
		secp256k1.AddNonConst(&ilPoint, &parentPoint, &result)
		result.ToAffine()
		if result.X.IsZero() && result.Y.IsZero() {
			return nil, nil, ErrInvalidKey
		}
		child.KeyData = secp256k1.NewPublicKey(&result.X, &result.Y).SerializeCompressed()
		child.Version = k.Version
	}
	return child, ilBytes, nil
}

// Derive returns the extended key at path below k.
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	_, key, err := k.DeriveWithIL(path)
	return key, err
}

// DeriveWithIL is Derive that also returns the cumulative IL tweak, the sum
// modulo N of every step's IL, or nil for an empty path.
func (k *ExtendedKey) DeriveWithIL(path []uint32) (*big.Int, *ExtendedKey, error) {
	if len(path) == 0 {
		return nil, k, nil
	}
	var acc secp256k1.ModNScalar
	defer acc.Zero()
	extKey := k
	for _, i := range path {
		var ilBytes []byte
		var err error
		extKey, ilBytes, err = extKey.child(i)
		if err != nil {
			return nil, nil, err
		}
		var il secp256k1.ModNScalar
		il.SetByteSlice(ilBytes)
		acc.Add(&il)
		il.Zero()
	}
	sum := acc.Bytes()
	return new(big.Int).SetBytes(sum[:]), extKey, nil
}

// Neuter returns the extended public key of k.  Public keys are returned
// unaltered.
func (k *ExtendedKey) Neuter() (*ExtendedKey, error) {
	if !k.IsPrivate() {
		return k, nil
	}
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		Version:           k.Version.public(),
		Depth:             k.Depth,
		ParentFingerprint: k.ParentFingerprint,
		ChildNumber:       k.ChildNumber,
		KeyData:           pub,
		ChainCode:         k.ChainCode,
	}, nil
}

// KeyPair returns the key pair held by k: full for private extended keys and
// public-only otherwise.
func (k *ExtendedKey) KeyPair() (*keypair.KeyPair, error) {
	if !k.IsPrivate() {
		return keypair.FromPublicKey(k.KeyData)
	}
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return keypair.FromRawKeys(pub, k.KeyData)
}

// MarshalBinary encodes the key in standard format that can be base58 encoded
// for humans.
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	out := make([]byte, 0, serializedKeyLen+checksumLen)
	out = append(out, k.Version[:]...)
	out = append(out, k.Depth)
	out = append(out, k.ParentFingerprint[:]...)
	out = append(out, childNumBytes[:]...)
	out = append(out, k.ChainCode...)
	if k.IsPrivate() {
		out = append(out, 0x00)
		out = append(out, k.KeyData...)
	} else {
		out = append(out, k.KeyData...)
	}
	if len(out) != serializedKeyLen {
		return nil, ErrInvalidKeyLen
	}

	return append(out, doubleSha256(out)[:checksumLen]...), nil
}

func (k *ExtendedKey) String() string {
	bin, err := k.MarshalBinary()
	if err != nil {
		return ""
	}
	return base58.Encode(bin)
}

// pubKeyBytes returns the compressed public key of k.
func (k *ExtendedKey) pubKeyBytes() ([]byte, error) {
	if !k.IsPrivate() {
		return k.KeyData, nil
	}
	return keypair.DerivePublicKey(k.KeyData)
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+checksumLen {
		return ErrInvalidKeyLen
	}

	payload := data[:serializedKeyLen]
	checkSum := data[serializedKeyLen:]
	if !bytes.Equal(checkSum, doubleSha256(payload)[:checksumLen]) {
		return ErrBadChecksum
	}

	var version KeyVersion
	copy(version[:], payload[:4])
	if !version.Known() {
		return ErrUnknownVersion
	}
	depth := payload[4]
	var parentFP [4]byte
	copy(parentFP[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13 : 13+chainCodeLen]
	keyData := payload[13+chainCodeLen:]

	// Private key data is prefixed with 0x00, compressed public keys start
	// with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		keyData = keyData[1:]
		if err := keypair.ValidatePrivateKey(keyData); err != nil {
			return err
		}
	} else if err := keypair.ValidatePublicKey(keyData); err != nil {
		return err
	}

	k.Version = version
	k.Depth = depth
	k.ParentFingerprint = parentFP
	k.ChildNumber = childNumber
	k.KeyData = append([]byte(nil), keyData...)
	k.ChainCode = append([]byte(nil), chainCode...)
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
