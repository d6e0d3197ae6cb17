package gateway

import (
	"fmt"
	"sort"
	"strings"
)

// Variant identifies exactly one concrete cryptographic primitive.
//
// Argon2d, RIPEMD-256/320 and Keccak-224/384 have no constant because
// golang.org/x/crypto does not implement them; ParseVariant rejects their names.
type Variant int

// Hash variants
const (
	VariantUnknown Variant = iota
	MD4
	MD5
	RIPEMD160
	Whirlpool
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	Keccak256
	Keccak512
	SHAKE128
	SHAKE256
	BLAKE2b
	BLAKE2s
	BLAKE3
)

// MAC variants
const (
	HMAC Variant = iota + 100
	AESCMAC
)

// Symmetric cipher variants
const (
	AES128GCM Variant = iota + 200
	AES192GCM
	AES256GCM
	AES128CTR
	AES192CTR
	AES256CTR
	AES128CCM
	AES192CCM
	AES256CCM
	AES128SIV
	AES256SIV
	AES256EME
	ChaCha20
	ChaCha20Poly1305
	XChaCha20Poly1305
	DESCBC
	TripleDESCBC
	DESCTR
	TripleDESCTR
)

// Password hashing and key derivation variants
const (
	Argon2i Variant = iota + 300
	Argon2id
	Bcrypt
	PBKDF2SHA256
	Scrypt
	HKDFSHA256
)

// Asymmetric variants
const (
	RSAOAEP Variant = iota + 400
	ECDSAP256
	ECDSASecp256k1
	Ed25519
	RSAPSS
	RSAPKCS1v15
	ECDHP256
	ECDHP384
	X25519
)

// Family groups variants that share one dispatch shape.
type Family int

// Families
const (
	FamilyUnknown Family = iota
	FamilyHash
	FamilyMAC
	FamilyCipher
	FamilyPassword
	FamilyAsymmetricEncryption
	FamilySignature
	FamilyKeyAgreement
)

var familyNames = map[Family]string{
	FamilyHash:                 "hash",
	FamilyMAC:                  "mac",
	FamilyCipher:               "cipher",
	FamilyPassword:             "password",
	FamilyAsymmetricEncryption: "asymmetric-encryption",
	FamilySignature:            "signature",
	FamilyKeyAgreement:         "key-agreement",
}

// String returns the lower-case family name.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknown"
}

type descriptor struct {
	name   string
	family Family
}

var descriptors = map[Variant]descriptor{
	MD4:               {"md4", FamilyHash},
	MD5:               {"md5", FamilyHash},
	RIPEMD160:         {"ripemd160", FamilyHash},
	Whirlpool:         {"whirlpool", FamilyHash},
	SHA1:              {"sha1", FamilyHash},
	SHA224:            {"sha224", FamilyHash},
	SHA256:            {"sha256", FamilyHash},
	SHA384:            {"sha384", FamilyHash},
	SHA512:            {"sha512", FamilyHash},
	SHA512_224:        {"sha512-224", FamilyHash},
	SHA512_256:        {"sha512-256", FamilyHash},
	SHA3_224:          {"sha3-224", FamilyHash},
	SHA3_256:          {"sha3-256", FamilyHash},
	SHA3_384:          {"sha3-384", FamilyHash},
	SHA3_512:          {"sha3-512", FamilyHash},
	Keccak256:         {"keccak256", FamilyHash},
	Keccak512:         {"keccak512", FamilyHash},
	SHAKE128:          {"shake128", FamilyHash},
	SHAKE256:          {"shake256", FamilyHash},
	BLAKE2b:           {"blake2b", FamilyHash},
	BLAKE2s:           {"blake2s", FamilyHash},
	BLAKE3:            {"blake3", FamilyHash},
	HMAC:              {"hmac", FamilyMAC},
	AESCMAC:           {"aes-cmac", FamilyMAC},
	AES128GCM:         {"aes-128-gcm", FamilyCipher},
	AES192GCM:         {"aes-192-gcm", FamilyCipher},
	AES256GCM:         {"aes-256-gcm", FamilyCipher},
	AES128CTR:         {"aes-128-ctr", FamilyCipher},
	AES192CTR:         {"aes-192-ctr", FamilyCipher},
	AES256CTR:         {"aes-256-ctr", FamilyCipher},
	AES128CCM:         {"aes-128-ccm", FamilyCipher},
	AES192CCM:         {"aes-192-ccm", FamilyCipher},
	AES256CCM:         {"aes-256-ccm", FamilyCipher},
	AES128SIV:         {"aes-128-siv", FamilyCipher},
	AES256SIV:         {"aes-256-siv", FamilyCipher},
	AES256EME:         {"aes-256-eme", FamilyCipher},
	ChaCha20:          {"chacha20", FamilyCipher},
	ChaCha20Poly1305:  {"chacha20-poly1305", FamilyCipher},
	XChaCha20Poly1305: {"xchacha20-poly1305", FamilyCipher},
	DESCBC:            {"des-cbc", FamilyCipher},
	TripleDESCBC:      {"3des-cbc", FamilyCipher},
	DESCTR:            {"des-ctr", FamilyCipher},
	TripleDESCTR:      {"3des-ctr", FamilyCipher},
	Argon2i:           {"argon2i", FamilyPassword},
	Argon2id:          {"argon2id", FamilyPassword},
	Bcrypt:            {"bcrypt", FamilyPassword},
	PBKDF2SHA256:      {"pbkdf2-sha256", FamilyPassword},
	Scrypt:            {"scrypt", FamilyPassword},
	HKDFSHA256:        {"hkdf-sha256", FamilyPassword},
	RSAOAEP:           {"rsa-oaep", FamilyAsymmetricEncryption},
	ECDSAP256:         {"ecdsa-p256", FamilySignature},
	ECDSASecp256k1:    {"ecdsa-secp256k1", FamilySignature},
	Ed25519:           {"ed25519", FamilySignature},
	RSAPSS:            {"rsa-pss", FamilySignature},
	RSAPKCS1v15:       {"rsa-pkcs1v15", FamilySignature},
	ECDHP256:          {"ecdh-p256", FamilyKeyAgreement},
	ECDHP384:          {"ecdh-p384", FamilyKeyAgreement},
	X25519:            {"x25519", FamilyKeyAgreement},
}

var variantsByName = func() map[string]Variant {
	m := make(map[string]Variant, len(descriptors))
	for v, d := range descriptors {
		m[d.name] = v
	}
	return m
}()

// String returns the canonical variant name, e.g. "aes-256-gcm".
func (v Variant) String() string {
	if d, ok := descriptors[v]; ok {
		return d.name
	}
	return "unknown"
}

// Family returns the dispatch family of the variant.
func (v Variant) Family() Family {
	return descriptors[v].family
}

// IsValid reports whether v is a member of the closed enumeration.
func (v Variant) IsValid() bool {
	_, ok := descriptors[v]
	return ok
}

// IsStreaming reports whether the variant can be driven through a session.
func (v Variant) IsStreaming() bool {
	f := v.Family()
	return f == FamilyHash || f == FamilyMAC
}

// IsXOF reports whether the variant is an extendable-output function.
func (v Variant) IsXOF() bool {
	return v == BLAKE3 || v == SHAKE128 || v == SHAKE256
}

// MarshalText encodes the variant as its canonical name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a canonical variant name.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant resolves a canonical, case-insensitive variant name.
func ParseVariant(name string) (Variant, error) {
	v, ok := variantsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return VariantUnknown, NewInvalidParameter(VariantUnknown, "variant", fmt.Sprintf("unknown variant %q", name))
	}
	return v, nil
}

// AllVariants returns every variant ordered by family and declaration order.
func AllVariants() []Variant {
	all := make([]Variant, 0, len(descriptors))
	for v := range descriptors {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}
