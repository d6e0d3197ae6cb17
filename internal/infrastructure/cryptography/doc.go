// Package cryptography adapts external cryptographic libraries to the processor contracts of
// the cryptoalg package. Every processor switches exhaustively over the variants of its family.
package cryptography
