package cryptography

import (
	"runtime"
)

// SecureZero overwrites b with zeros.
func SecureZero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}

// SecureZeroMultiple zeros multiple byte slices.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}
