package qdsa

import (
	"crypto/subtle"
	"unsafe"
)

// memclear overwrites n bytes at ptr with zeros.
func memclear(ptr unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}

// zero overwrites b with zeros.
func zero(b []byte) {
	if len(b) == 0 {
		return
	}
	memclear(unsafe.Pointer(&b[0]), uintptr(len(b)))
}

// Zero overwrites b with zeros in a constant-time friendly way. It is meant
// for callers wiping key material held in byte slices.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	z := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, z)
}
