package keypair

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Config describes a key pair for From.  The zero value of a field means the
// field is unset.  At least one of PublicKeyBase58 and PrivateKeyBase58 must
// be set.
type Config struct {
	// ID is an opaque identifier, typically a DID URL.  It is not validated.
	ID string `json:"id,omitempty"`

	// Controller is an opaque identifier of the controlling entity.
	Controller string `json:"controller,omitempty"`

	// Type must be empty or EcdsaSecp256k1VerificationKey2019.
	Type string `json:"type,omitempty"`

	// PublicKeyBase58 is the base58 encoded 33 byte compressed public key.
	PublicKeyBase58 string `json:"publicKeyBase58,omitempty"`

	// PrivateKeyBase58 is the base58 encoded 32 byte private scalar.
	PrivateKeyBase58 string `json:"privateKeyBase58,omitempty"`
}

// ParseConfig decodes a JSON verification method object into a Config.  A
// JSON-LD "@context" member is accepted and ignored.  Any other field not in
// Config is rejected.
func ParseConfig(data []byte) (Config, error) {
	var doc struct {
		Context json.RawMessage `json:"@context,omitempty"`
		Config
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		str := fmt.Sprintf("invalid key pair configuration: %v", err)
		return Config{}, makeError(ErrInvalidConfig, str)
	}
	if dec.More() {
		return Config{}, makeError(ErrInvalidConfig,
			"invalid key pair configuration: trailing data")
	}
	return doc.Config, nil
}
