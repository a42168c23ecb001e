package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// splitHMAC returns IL as a scalar and IR as the chain code for HMAC-SHA512
// keyed with salt over data.
//
// See: https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki
func splitHMAC(data, salt []byte) (il secp256k1.ModNScalar, ilBytes, chainCode []byte, err error) {
	mac := hmac.New(sha512.New, salt)
	mac.Write(data)
	I := mac.Sum(nil)

	ilBytes = I[:32]   // IL
	chainCode = I[32:] // IR

	// In case parse256(IL) >= n or IL = 0 the key is invalid and one should
	// proceed with the next value for i.
	if overflow := il.SetByteSlice(ilBytes); overflow || il.IsZero() {
		err = ErrInvalidKey
	}
	return
}
