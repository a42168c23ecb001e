package hdkey

// KeyVersion is the four byte prefix of a serialized extended key.
type KeyVersion [4]byte

var (
	MainnetPublic  = KeyVersion{0x04, 0x88, 0xb2, 0x1e} // xpub
	MainnetPrivate = KeyVersion{0x04, 0x88, 0xad, 0xe4} // xprv
	TestnetPublic  = KeyVersion{0x04, 0x35, 0x87, 0xcf} // tpub
	TestnetPrivate = KeyVersion{0x04, 0x35, 0x83, 0x94} // tprv
)

// IsPrivate returns true if the version is for a private key
func (kv KeyVersion) IsPrivate() bool {
	switch kv {
	case MainnetPrivate, TestnetPrivate:
		return true
	}
	return false
}

// Known reports whether kv is one of the versions above.
func (kv KeyVersion) Known() bool {
	switch kv {
	case MainnetPublic, MainnetPrivate, TestnetPublic, TestnetPrivate:
		return true
	}
	return false
}

func (kv KeyVersion) public() KeyVersion {
	switch kv {
	case MainnetPrivate:
		return MainnetPublic
	case TestnetPrivate:
		return TestnetPublic
	}
	return kv
}
