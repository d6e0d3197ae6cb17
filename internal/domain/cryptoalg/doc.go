// Package cryptoalg defines the per-family processor contracts that wrap external cryptographic
// libraries: hashing, MACs, ciphers, password hashing, RSA, signatures and key agreement, plus the
// streaming accumulator used by sessions.
package cryptoalg
