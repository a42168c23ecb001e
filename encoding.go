package keypair

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

// fingerprintEncoding is the multibase used for fingerprints (prefix 'z').
const fingerprintEncoding = multibase.Base58BTC

// fingerprintCodec is the multicodec tag for a compressed secp256k1 public
// key.
const fingerprintCodec = multicodec.Secp256k1Pub

// codecPrefix is the varint form of fingerprintCodec, 0xe7 0x01.
var codecPrefix = varint.ToUvarint(uint64(fingerprintCodec))

// encodeBase58 encodes b with the bitcoin base58 alphabet.
func encodeBase58(b []byte) string {
	return base58.Encode(b)
}

// decodeBase58 decodes a bitcoin alphabet base58 string.  field names the
// configuration field for error reporting.
func decodeBase58(field, s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		str := fmt.Sprintf("malformed %s: %v", field, err)
		return nil, makeError(ErrEncoding, str)
	}
	return b, nil
}

// multibaseEncode wraps data in the fingerprint multibase.
func multibaseEncode(data []byte) (string, error) {
	return multibase.Encode(fingerprintEncoding, data)
}

// multibaseDecode strips and validates the fingerprint multibase prefix.
func multibaseDecode(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, makeError(ErrDecode, "empty fingerprint")
	}
	enc, data, err := multibase.Decode(s)
	if err != nil {
		str := fmt.Sprintf("malformed fingerprint: %v", err)
		return nil, makeError(ErrDecode, str)
	}
	if enc != fingerprintEncoding {
		str := fmt.Sprintf("malformed fingerprint: unexpected multibase "+
			"prefix %q, want %q", s[0], rune(fingerprintEncoding))
		return nil, makeError(ErrDecode, str)
	}
	return data, nil
}

// splitCodec strips the multicodec tag from data and returns the remaining
// bytes.
func splitCodec(data []byte) ([]byte, error) {
	code, n, err := varint.FromUvarint(data)
	if err != nil {
		str := fmt.Sprintf("malformed fingerprint: bad multicodec tag: %v", err)
		return nil, makeError(ErrDecode, str)
	}
	if multicodec.Code(code) != fingerprintCodec {
		str := fmt.Sprintf("unsupported multicodec %s (%#x), want %s",
			multicodec.Code(code), code, fingerprintCodec)
		return nil, makeError(ErrUnsupportedCodec, str)
	}
	return data[n:], nil
}
