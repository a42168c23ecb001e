package keypair

// SuiteContext is the JSON-LD context of EcdsaSecp256k1VerificationKey2019.
const SuiteContext = "https://w3id.org/security/suites/secp256k1-2019/v1"

// VerificationMethod is the exported form of a key pair.
type VerificationMethod struct {
	Context          string `json:"@context,omitempty"`
	ID               string `json:"id,omitempty"`
	Type             string `json:"type"`
	Controller       string `json:"controller,omitempty"`
	PublicKeyBase58  string `json:"publicKeyBase58,omitempty"`
	PrivateKeyBase58 string `json:"privateKeyBase58,omitempty"`
}

// ExportOptions selects what Export includes.
type ExportOptions struct {
	PublicKey      bool
	PrivateKey     bool
	IncludeContext bool
}

// Export returns the key pair as a verification method.  Exporting the
// private key of a public-only key pair fails with ErrMissingPrivateKey.
func (kp *KeyPair) Export(opts ExportOptions) (*VerificationMethod, error) {
	vm := &VerificationMethod{
		ID:         kp.id,
		Type:       Type,
		Controller: kp.controller,
	}
	if opts.IncludeContext {
		vm.Context = SuiteContext
	}
	if opts.PublicKey {
		vm.PublicKeyBase58 = kp.PublicKeyBase58()
	}
	if opts.PrivateKey {
		priv, err := kp.PrivateKeyBase58()
		if err != nil {
			return nil, err
		}
		vm.PrivateKeyBase58 = priv
	}
	return vm, nil
}

// Config returns the verification method as a Config accepted by From.
func (vm *VerificationMethod) Config() Config {
	return Config{
		ID:               vm.ID,
		Controller:       vm.Controller,
		Type:             vm.Type,
		PublicKeyBase58:  vm.PublicKeyBase58,
		PrivateKeyBase58: vm.PrivateKeyBase58,
	}
}
