package cryptoalg

// Processors bundles one processor per family. The dispatcher holds exactly one
// of each, so every variant resolves to a single primitive.
type Processors struct {
	Hash         HashProcessor
	MAC          MACProcessor
	Cipher       CipherProcessor
	Password     PasswordProcessor
	RSA          RSAProcessor
	Signature    SignatureProcessor
	KeyAgreement KeyAgreementProcessor
}
