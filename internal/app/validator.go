package app

import (
	"fmt"
	"slices"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
)

// Output length ceilings and sizes shared by several rules.
const (
	blake3MaxOutput    = 1024
	shakeMaxOutput     = 65536
	blake2bMaxOutput   = 64
	kdfMaxOutput       = 1024
	argon2MinOutput    = 4
	hkdfMaxOutput      = 255 * 32
	aeadTagSize        = 16
	sivTagSize         = 16
	emeBlockSize       = 16
	emeMaxBlocks       = 128
	desBlockSize       = 8
	ecdsaDigestSize    = 32
	ecdsaPublicKeySize = 65
	minSaltLength      = 8
	bcryptMaxPassword  = 72
	minPBKDF2Iter      = 1000
	minScryptLogN      = 10
	minBcryptCost      = 4
)

// outputMode tells how a hash variant treats a requested output length.
type outputMode int

const (
	outputNone outputMode = iota
	outputExact
	outputTruncatable
	outputXOF
	outputSizedAtOpen
)

// callMode is the entry point a parameter set is validated for.
type callMode int

const (
	modeCompute callMode = iota
	modeVerify
	modeOpen
)

// rule is one row of the precondition table.
type rule struct {
	keySizes       []int // allowed key lengths; nil means no key
	anyKey         bool  // any non-empty key
	nonceSizes     []int
	nonceOptional  bool // any nonce length including none
	keyedKeySizes  [2]int
	deriveContext  bool
	additionalData bool
	directional    bool
	hashes         []gateway.Variant // allowed inner hashes; VariantUnknown selects the default
	output         outputMode
	outputLength   int // native or default output length
	maxOutput      int
	lengthRequired bool // XOF output length must be given explicitly
	check          func(params *gateway.ParameterSet, input []byte, verify bool) error
}

var rsaSignatureHashes = []gateway.Variant{gateway.VariantUnknown, gateway.SHA256, gateway.SHA384, gateway.SHA512}

// hmacInnerHashes are the fixed-output hashes usable inside HMAC.
var hmacInnerHashes = []gateway.Variant{
	gateway.MD4, gateway.MD5, gateway.RIPEMD160, gateway.Whirlpool, gateway.SHA1,
	gateway.SHA224, gateway.SHA256, gateway.SHA384, gateway.SHA512, gateway.SHA512_224, gateway.SHA512_256,
	gateway.SHA3_224, gateway.SHA3_256, gateway.SHA3_384, gateway.SHA3_512,
	gateway.Keccak256, gateway.Keccak512, gateway.BLAKE2b, gateway.BLAKE2s,
}

// fixedSizes are the native output sizes of the fixed-output hashes.
var fixedSizes = map[gateway.Variant]int{
	gateway.MD4: 16, gateway.MD5: 16, gateway.RIPEMD160: 20, gateway.Whirlpool: 64,
	gateway.SHA1: 20, gateway.SHA224: 28, gateway.SHA256: 32, gateway.SHA384: 48, gateway.SHA512: 64,
	gateway.SHA512_224: 28, gateway.SHA512_256: 32,
	gateway.SHA3_224: 28, gateway.SHA3_256: 32, gateway.SHA3_384: 48, gateway.SHA3_512: 64,
	gateway.Keccak256: 32, gateway.Keccak512: 64, gateway.BLAKE2b: 64, gateway.BLAKE2s: 32,
}

func fixedHashRule(v gateway.Variant) rule {
	return rule{output: outputExact, outputLength: fixedSizes[v], maxOutput: fixedSizes[v]}
}

func aeadRule(keySize, nonceSize int) rule {
	return rule{
		keySizes:       []int{keySize},
		nonceSizes:     []int{nonceSize},
		additionalData: true,
		directional:    true,
		check:          minCiphertext(aeadTagSize),
	}
}

func streamRule(keySize, nonceSize int) rule {
	return rule{keySizes: []int{keySize}, nonceSizes: []int{nonceSize}, directional: true}
}

func cbcRule(keySize int) rule {
	return rule{
		keySizes:    []int{keySize},
		nonceSizes:  []int{desBlockSize},
		directional: true,
		check: func(params *gateway.ParameterSet, input []byte, _ bool) error {
			if params.EffectiveOperation() == gateway.OperationDecrypt && (len(input) == 0 || len(input)%desBlockSize != 0) {
				return fieldError("input", "ciphertext must be a positive multiple of %d bytes, got %d", desBlockSize, len(input))
			}
			return nil
		},
	}
}

func kdfRule(minOutput, maxOutput int, check func(*gateway.ParameterSet, []byte, bool) error) rule {
	return rule{outputLength: 32, maxOutput: maxOutput, check: func(params *gateway.ParameterSet, input []byte, verify bool) error {
		if params.HashLength != nil && *params.HashLength < minOutput {
			return fieldError("hash_length", "must be at least %d bytes", minOutput)
		}
		if check != nil {
			return check(params, input, verify)
		}
		return nil
	}}
}

// Validator checks a (variant, parameter set) pair against the variant's rule
// row before any primitive is invoked. It holds no mutable state.
type Validator struct {
	rules map[gateway.Variant]rule
}

// NewValidator creates the validator with the full rule table.
func NewValidator() *Validator {
	rules := map[gateway.Variant]rule{
		gateway.MD4:       {output: outputTruncatable, outputLength: 16, maxOutput: 16},
		gateway.Whirlpool: {output: outputTruncatable, outputLength: 64, maxOutput: 64},
		gateway.SHAKE128:  {output: outputXOF, maxOutput: shakeMaxOutput, lengthRequired: true},
		gateway.SHAKE256:  {output: outputXOF, maxOutput: shakeMaxOutput, lengthRequired: true},
		gateway.BLAKE2b: {
			output: outputSizedAtOpen, outputLength: 64, maxOutput: blake2bMaxOutput,
			keyedKeySizes: [2]int{1, 64},
		},
		gateway.BLAKE2s: {output: outputExact, outputLength: 32, maxOutput: 32, keyedKeySizes: [2]int{1, 32}},
		gateway.BLAKE3: {
			output: outputXOF, outputLength: 32, maxOutput: blake3MaxOutput,
			keyedKeySizes: [2]int{32, 32}, deriveContext: true,
			check: func(params *gateway.ParameterSet, _ []byte, _ bool) error {
				if len(params.KeyedKey) > 0 && params.DeriveKeyContext != nil {
					return fieldError("derive_key_context", "keyed mode and derive-key mode are mutually exclusive")
				}
				return nil
			},
		},

		gateway.HMAC:    {anyKey: true, hashes: hmacInnerHashes, output: outputExact},
		gateway.AESCMAC: {keySizes: []int{16, 24, 32}, output: outputExact, outputLength: 16, maxOutput: 16},

		gateway.AES128GCM:         aeadRule(16, 12),
		gateway.AES192GCM:         aeadRule(24, 12),
		gateway.AES256GCM:         aeadRule(32, 12),
		gateway.AES128CCM:         aeadRule(16, 13),
		gateway.AES192CCM:         aeadRule(24, 13),
		gateway.AES256CCM:         aeadRule(32, 13),
		gateway.ChaCha20Poly1305:  aeadRule(32, 12),
		gateway.XChaCha20Poly1305: aeadRule(32, 24),
		gateway.AES128SIV: {
			keySizes: []int{32}, nonceOptional: true, additionalData: true, directional: true,
			check: minCiphertext(sivTagSize),
		},
		gateway.AES256SIV: {
			keySizes: []int{64}, nonceOptional: true, additionalData: true, directional: true,
			check: minCiphertext(sivTagSize),
		},
		gateway.AES256EME: {
			keySizes: []int{32}, nonceSizes: []int{16}, directional: true,
			check: func(_ *gateway.ParameterSet, input []byte, _ bool) error {
				if len(input) == 0 || len(input)%emeBlockSize != 0 || len(input) > emeMaxBlocks*emeBlockSize {
					return fieldError("input", "must be 1 to %d whole %d-byte blocks, got %d bytes", emeMaxBlocks, emeBlockSize, len(input))
				}
				return nil
			},
		},
		gateway.AES128CTR:    streamRule(16, 16),
		gateway.AES192CTR:    streamRule(24, 16),
		gateway.AES256CTR:    streamRule(32, 16),
		gateway.ChaCha20:     streamRule(32, 12),
		gateway.DESCTR:       streamRule(8, 8),
		gateway.TripleDESCTR: streamRule(24, 8),
		gateway.DESCBC:       cbcRule(8),
		gateway.TripleDESCBC: cbcRule(24),

		gateway.Argon2i:      kdfRule(argon2MinOutput, kdfMaxOutput, checkArgon2),
		gateway.Argon2id:     kdfRule(argon2MinOutput, kdfMaxOutput, checkArgon2),
		gateway.PBKDF2SHA256: kdfRule(1, kdfMaxOutput, checkPBKDF2),
		gateway.Scrypt:       kdfRule(1, kdfMaxOutput, checkScrypt),
		gateway.Bcrypt:       {check: checkBcrypt},
		gateway.HKDFSHA256: kdfRule(1, hkdfMaxOutput, func(params *gateway.ParameterSet, input []byte, verify bool) error {
			if len(input) == 0 {
				return fieldError("input", "input key material must not be empty")
			}
			if verify && len(params.Tag) == 0 {
				return fieldError("tag", "expected derived key is required for verification")
			}
			return nil
		}),

		gateway.RSAOAEP: {
			anyKey: true, directional: true,
			hashes: []gateway.Variant{gateway.VariantUnknown, gateway.SHA1, gateway.SHA256, gateway.SHA384, gateway.SHA512},
		},
		gateway.RSAPSS:         {anyKey: true, hashes: rsaSignatureHashes},
		gateway.RSAPKCS1v15:    {anyKey: true, hashes: rsaSignatureHashes},
		gateway.ECDSAP256:      {anyKey: true, check: checkECDSA},
		gateway.ECDSASecp256k1: {anyKey: true, check: checkECDSA},
		gateway.Ed25519: {anyKey: true, check: func(params *gateway.ParameterSet, _ []byte, _ bool) error {
			if len(params.Key) != 32 {
				return fieldError("key", "expected 32 bytes, got %d", len(params.Key))
			}
			return nil
		}},
		gateway.ECDHP256: {},
		gateway.ECDHP384: {},
		gateway.X25519:   {},
	}

	for v := range fixedSizes {
		if _, ok := rules[v]; !ok {
			rules[v] = fixedHashRule(v)
		}
	}

	return &Validator{rules: rules}
}

// Validate checks the parameters of a one-shot compute call.
func (v *Validator) Validate(variant gateway.Variant, params *gateway.ParameterSet, input []byte) error {
	return v.validate(variant, params, input, modeCompute)
}

// ValidateVerify checks the parameters of a verify call.
func (v *Validator) ValidateVerify(variant gateway.Variant, params *gateway.ParameterSet, input []byte) error {
	switch variant.Family() {
	case gateway.FamilyMAC, gateway.FamilyPassword, gateway.FamilySignature:
	default:
		return gateway.NewInvalidParameter(variant, "variant", fmt.Sprintf("%s does not support verification", variant))
	}
	return v.validate(variant, params, input, modeVerify)
}

// ValidateOpen checks the parameters of a streaming session.
func (v *Validator) ValidateOpen(variant gateway.Variant, params *gateway.ParameterSet) error {
	if variant.IsValid() && !variant.IsStreaming() {
		return gateway.NewInvalidParameter(variant, "variant", fmt.Sprintf("%s does not support streaming", variant))
	}
	return v.validate(variant, params, nil, modeOpen)
}

// ValidateKeyGeneration checks a key pair generation request.
func (v *Validator) ValidateKeyGeneration(variant gateway.Variant, params *gateway.ParameterSet) error {
	if _, err := v.ruleFor(variant); err != nil {
		return err
	}
	switch variant.Family() {
	case gateway.FamilyAsymmetricEncryption, gateway.FamilySignature, gateway.FamilyKeyAgreement:
	default:
		return gateway.NewInvalidParameter(variant, "variant", fmt.Sprintf("%s has no key pairs", variant))
	}
	if err := params.Validate(); err != nil {
		return withVariant(err, variant)
	}
	if params.KeyBits != 0 && !isRSA(variant) {
		return gateway.NewInvalidParameter(variant, "key_bits", "only RSA variants accept a key size")
	}
	return nil
}

// ValidateKeyAgreement checks raw key lengths for a shared secret derivation.
func (v *Validator) ValidateKeyAgreement(variant gateway.Variant, privateKey, peerPublicKey []byte) error {
	if _, err := v.ruleFor(variant); err != nil {
		return err
	}

	var privLen, pubLen int
	switch variant {
	case gateway.ECDHP256:
		privLen, pubLen = 32, 65
	case gateway.ECDHP384:
		privLen, pubLen = 48, 97
	case gateway.X25519:
		privLen, pubLen = 32, 32
	default:
		return gateway.NewInvalidParameter(variant, "variant", fmt.Sprintf("%s is not a key agreement variant", variant))
	}

	if len(privateKey) != privLen {
		return gateway.NewInvalidParameter(variant, "private_key", fmt.Sprintf("expected %d bytes, got %d", privLen, len(privateKey)))
	}
	if len(peerPublicKey) != pubLen {
		return gateway.NewInvalidParameter(variant, "peer_public_key", fmt.Sprintf("expected %d bytes, got %d", pubLen, len(peerPublicKey)))
	}
	return nil
}

// ValidateOAEPPlaintext enforces plaintext_len <= k - 2*hLen - 2 once the
// modulus size k of the parsed key is known.
func (v *Validator) ValidateOAEPPlaintext(hash gateway.Variant, modulusBytes, plaintextLen int) error {
	hLen := 32
	switch hash {
	case gateway.SHA1:
		hLen = 20
	case gateway.SHA384:
		hLen = 48
	case gateway.SHA512:
		hLen = 64
	}
	limit := modulusBytes - 2*hLen - 2
	if plaintextLen > limit {
		return gateway.NewInvalidParameter(gateway.RSAOAEP, "input", fmt.Sprintf("plaintext of %d bytes exceeds the OAEP limit of %d bytes", plaintextLen, max(limit, 0)))
	}
	return nil
}

// ResolveFinalizeLength decides the output length of a session. An explicit
// length wins over params.HashLength, which wins over the variant default.
// Only an absent length selects the default; an explicit zero for an XOF is
// rejected.
func (v *Validator) ResolveFinalizeLength(variant gateway.Variant, params *gateway.ParameterSet, requested *int) (int, error) {
	r, err := v.ruleFor(variant)
	if err != nil {
		return 0, err
	}

	length, explicit := 0, true
	switch {
	case requested != nil:
		length = *requested
	case params != nil && params.HashLength != nil:
		length = *params.HashLength
	default:
		explicit = false
	}
	if length < 0 {
		return 0, gateway.NewInvalidParameter(variant, "hash_length", "must not be negative")
	}

	native := v.outputLength(variant, r, params)
	switch r.output {
	case outputXOF:
		if explicit && length == 0 {
			return 0, gateway.NewInvalidParameter(variant, "hash_length", "must be at least 1")
		}
		if length == 0 {
			if r.lengthRequired {
				return 0, gateway.NewInvalidParameter(variant, "hash_length", "an output length is required")
			}
			return r.outputLength, nil
		}
		if length > r.maxOutput {
			return 0, gateway.NewOutputLengthExceeded(variant, length, r.maxOutput)
		}
	case outputTruncatable:
		if length == 0 {
			return native, nil
		}
		if length > r.maxOutput {
			return 0, gateway.NewOutputLengthExceeded(variant, length, r.maxOutput)
		}
	case outputExact, outputSizedAtOpen:
		if length == 0 {
			return native, nil
		}
		if length != native {
			return 0, gateway.NewInvalidParameter(variant, "hash_length", fmt.Sprintf("%s produces exactly %d bytes", variant, native))
		}
	}
	return length, nil
}

// Info returns the registry listing of every variant.
func (v *Validator) Info() []gateway.VariantInfo {
	variants := gateway.AllVariants()
	infos := make([]gateway.VariantInfo, 0, len(variants))
	for _, variant := range variants {
		r := v.rules[variant]
		info := gateway.VariantInfo{
			Name:      variant.String(),
			Family:    variant.Family().String(),
			Streaming: variant.IsStreaming(),
			XOF:       variant.IsXOF(),
			KeySizes:  r.keySizes,
		}
		if !r.nonceOptional {
			info.NonceSizes = r.nonceSizes
		}
		if variant.Family() == gateway.FamilyHash || variant == gateway.AESCMAC {
			info.OutputLength = r.outputLength
			info.MaxOutputLength = r.maxOutput
		}
		infos = append(infos, info)
	}
	return infos
}

func (v *Validator) ruleFor(variant gateway.Variant) (rule, error) {
	r, ok := v.rules[variant]
	if !ok || !variant.IsValid() {
		return rule{}, gateway.NewInvalidParameter(variant, "variant", "unknown variant")
	}
	return r, nil
}

func (v *Validator) validate(variant gateway.Variant, params *gateway.ParameterSet, input []byte, mode callMode) error {
	r, err := v.ruleFor(variant)
	if err != nil {
		return err
	}
	if params == nil {
		params = &gateway.ParameterSet{}
	}
	if err := params.Validate(); err != nil {
		return withVariant(err, variant)
	}

	if err := checkKey(variant, r, params); err != nil {
		return err
	}
	if err := checkNonce(variant, r, params); err != nil {
		return err
	}
	if len(params.AdditionalData) > 0 && !r.additionalData {
		return gateway.NewInvalidParameter(variant, "additional_data", fmt.Sprintf("%s does not authenticate associated data", variant))
	}
	if params.Operation != "" && !r.directional {
		return gateway.NewInvalidParameter(variant, "operation", fmt.Sprintf("%s has no encrypt or decrypt direction", variant))
	}
	if r.hashes != nil {
		if !slices.Contains(r.hashes, params.Hash) {
			return gateway.NewInvalidParameter(variant, "hash", fmt.Sprintf("%s cannot be used with %s", params.Hash, variant))
		}
	} else if params.Hash != gateway.VariantUnknown {
		return gateway.NewInvalidParameter(variant, "hash", fmt.Sprintf("%s takes no inner hash", variant))
	}
	if len(params.KeyedKey) > 0 {
		lo, hi := r.keyedKeySizes[0], r.keyedKeySizes[1]
		if hi == 0 {
			return gateway.NewInvalidParameter(variant, "keyed_key", fmt.Sprintf("%s has no keyed mode", variant))
		}
		if len(params.KeyedKey) < lo || len(params.KeyedKey) > hi {
			return gateway.NewInvalidParameter(variant, "keyed_key", lengthReason(lo, hi, len(params.KeyedKey)))
		}
	}
	if params.DeriveKeyContext != nil && !r.deriveContext && variant != gateway.HKDFSHA256 {
		return gateway.NewInvalidParameter(variant, "derive_key_context", fmt.Sprintf("%s has no derive-key mode", variant))
	}
	verify := mode == modeVerify
	if verify && variant.Family() == gateway.FamilyMAC && len(params.Tag) == 0 {
		return gateway.NewInvalidParameter(variant, "tag", "a tag is required for verification")
	}
	if verify && variant.Family() == gateway.FamilySignature && len(params.Signature) == 0 {
		return gateway.NewInvalidParameter(variant, "signature", "a signature is required for verification")
	}

	if err := v.checkHashLength(variant, r, params); err != nil {
		return err
	}
	if r.lengthRequired && params.HashLength == nil && mode != modeOpen {
		return gateway.NewInvalidParameter(variant, "hash_length", "an output length is required")
	}

	if r.check != nil {
		if err := r.check(params, input, verify); err != nil {
			return withVariant(err, variant)
		}
	}
	return nil
}

// checkHashLength validates params.HashLength at compute or open time.
func (v *Validator) checkHashLength(variant gateway.Variant, r rule, params *gateway.ParameterSet) error {
	if params.HashLength == nil {
		return nil
	}
	length := *params.HashLength

	switch r.output {
	case outputNone:
		if r.maxOutput == 0 {
			return gateway.NewInvalidParameter(variant, "hash_length", fmt.Sprintf("%s has no selectable output length", variant))
		}
		if length > r.maxOutput {
			return gateway.NewOutputLengthExceeded(variant, length, r.maxOutput)
		}
		return nil
	case outputSizedAtOpen:
		if length == 0 {
			return nil
		}
		if length > r.maxOutput {
			return gateway.NewOutputLengthExceeded(variant, length, r.maxOutput)
		}
		return nil
	default:
		_, err := v.ResolveFinalizeLength(variant, params, nil)
		return err
	}
}

// outputLength returns the native output size, which for HMAC follows the inner hash
// and for BLAKE2b the size chosen at open.
func (v *Validator) outputLength(variant gateway.Variant, r rule, params *gateway.ParameterSet) int {
	switch variant {
	case gateway.HMAC:
		if params != nil {
			return fixedSizes[params.Hash]
		}
	case gateway.BLAKE2b:
		if params != nil && params.HashLength != nil && *params.HashLength > 0 {
			return *params.HashLength
		}
	}
	return r.outputLength
}

func checkKey(variant gateway.Variant, r rule, params *gateway.ParameterSet) error {
	switch {
	case r.anyKey:
		if len(params.Key) == 0 {
			return gateway.NewInvalidParameter(variant, "key", "must not be empty")
		}
	case r.keySizes != nil:
		if !slices.Contains(r.keySizes, len(params.Key)) {
			return gateway.NewInvalidParameter(variant, "key", sizesReason(r.keySizes, len(params.Key)))
		}
	default:
		if len(params.Key) > 0 {
			return gateway.NewInvalidParameter(variant, "key", fmt.Sprintf("%s takes no key", variant))
		}
	}
	return nil
}

func checkNonce(variant gateway.Variant, r rule, params *gateway.ParameterSet) error {
	switch {
	case r.nonceOptional:
	case r.nonceSizes != nil:
		if !slices.Contains(r.nonceSizes, len(params.Nonce)) {
			return gateway.NewInvalidParameter(variant, "nonce", sizesReason(r.nonceSizes, len(params.Nonce)))
		}
	default:
		if len(params.Nonce) > 0 {
			return gateway.NewInvalidParameter(variant, "nonce", fmt.Sprintf("%s takes no nonce", variant))
		}
	}
	return nil
}

func minCiphertext(tagSize int) func(*gateway.ParameterSet, []byte, bool) error {
	return func(params *gateway.ParameterSet, input []byte, _ bool) error {
		if params.EffectiveOperation() == gateway.OperationDecrypt && len(input) < tagSize {
			return fieldError("input", "ciphertext shorter than the %d-byte tag", tagSize)
		}
		return nil
	}
}

func checkSalt(params *gateway.ParameterSet) error {
	if params.Salt != nil && len(params.Salt) < minSaltLength {
		return fieldError("salt", "must be at least %d bytes, got %d", minSaltLength, len(params.Salt))
	}
	return nil
}

func checkEncodedHash(params *gateway.ParameterSet, verify bool) error {
	if verify && params.EncodedHash == "" {
		return fieldError("encoded_hash", "an encoded hash is required for verification")
	}
	return nil
}

func checkArgon2(params *gateway.ParameterSet, _ []byte, verify bool) error {
	if err := checkSalt(params); err != nil {
		return err
	}
	if params.MemoryCost != 0 && params.MemoryCost < 8*uint32(max(params.Parallelism, 1)) {
		return fieldError("memory_cost", "must be at least 8 KiB per lane")
	}
	if params.MemoryCost > cryptoalg.MaxArgon2MemoryCost {
		return fieldError("memory_cost", "must be at most %d KiB", cryptoalg.MaxArgon2MemoryCost)
	}
	if params.TimeCost > cryptoalg.MaxArgon2TimeCost {
		return fieldError("time_cost", "must be at most %d", cryptoalg.MaxArgon2TimeCost)
	}
	return checkEncodedHash(params, verify)
}

func checkPBKDF2(params *gateway.ParameterSet, _ []byte, verify bool) error {
	if err := checkSalt(params); err != nil {
		return err
	}
	if params.Iterations != 0 && params.Iterations < minPBKDF2Iter {
		return fieldError("iterations", "must be at least %d", minPBKDF2Iter)
	}
	if params.Iterations > cryptoalg.MaxPBKDF2Iterations {
		return fieldError("iterations", "must be at most %d", cryptoalg.MaxPBKDF2Iterations)
	}
	return checkEncodedHash(params, verify)
}

func checkScrypt(params *gateway.ParameterSet, _ []byte, verify bool) error {
	if err := checkSalt(params); err != nil {
		return err
	}
	if params.Cost != 0 && (params.Cost < minScryptLogN || params.Cost > cryptoalg.MaxScryptLogN) {
		return fieldError("cost", "scrypt log2(N) must be between %d and %d", minScryptLogN, cryptoalg.MaxScryptLogN)
	}
	return checkEncodedHash(params, verify)
}

func checkBcrypt(params *gateway.ParameterSet, input []byte, verify bool) error {
	if len(input) > bcryptMaxPassword {
		return fieldError("input", "bcrypt passwords are limited to %d bytes", bcryptMaxPassword)
	}
	if params.Salt != nil {
		return fieldError("salt", "bcrypt generates its own salt")
	}
	if params.Cost != 0 && params.Cost < minBcryptCost {
		return fieldError("cost", "must be between %d and 31", minBcryptCost)
	}
	return checkEncodedHash(params, verify)
}

func checkECDSA(params *gateway.ParameterSet, input []byte, verify bool) error {
	if len(input) != ecdsaDigestSize {
		return fieldError("input", "expected a %d-byte digest, got %d bytes", ecdsaDigestSize, len(input))
	}
	if verify && len(params.Key) != ecdsaPublicKeySize {
		return fieldError("key", "expected a %d-byte uncompressed public key, got %d", ecdsaPublicKeySize, len(params.Key))
	}
	if !verify && len(params.Key) != ecdsaDigestSize {
		return fieldError("key", "expected a %d-byte private scalar, got %d", ecdsaDigestSize, len(params.Key))
	}
	return nil
}

func isRSA(variant gateway.Variant) bool {
	return variant == gateway.RSAOAEP || variant == gateway.RSAPSS || variant == gateway.RSAPKCS1v15
}

// fieldError builds an InvalidParameter whose variant is filled in by withVariant.
func fieldError(field, format string, args ...any) error {
	return gateway.NewInvalidParameter(gateway.VariantUnknown, field, fmt.Sprintf(format, args...))
}

func withVariant(err error, variant gateway.Variant) error {
	if gwErr, ok := err.(*gateway.Error); ok && gwErr.Variant == gateway.VariantUnknown {
		gwErr.Variant = variant
	}
	return err
}

func sizesReason(sizes []int, got int) string {
	if len(sizes) == 1 {
		return fmt.Sprintf("expected %d bytes, got %d", sizes[0], got)
	}
	return fmt.Sprintf("expected one of %v bytes, got %d", sizes, got)
}

func lengthReason(lo, hi, got int) string {
	if lo == hi {
		return fmt.Sprintf("expected %d bytes, got %d", lo, got)
	}
	return fmt.Sprintf("expected %d to %d bytes, got %d", lo, hi, got)
}
