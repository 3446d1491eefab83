package qdsa

import (
	"crypto/sha512"
	"hash"

	sha256simd "github.com/minio/sha256-simd"
)

// SHA256 represents a SHA-256 hash context
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes)
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	var sum [32]byte
	copy(out32, h.hasher.Sum(sum[:0]))
	zero(sum[:])
}

// Clear resets the hash context so no input remains buffered
func (h *SHA256) Clear() {
	h.hasher.Reset()
}

// SHA512 represents a SHA-512 hash context
type SHA512 struct {
	hasher hash.Hash
}

// NewSHA512 creates a new SHA-512 hash context
func NewSHA512() *SHA512 {
	return &SHA512{hasher: sha512.New()}
}

// Write writes data to the hash
func (h *SHA512) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out64 (must be 64 bytes)
func (h *SHA512) Finalize(out64 []byte) {
	if len(out64) != 64 {
		panic("output buffer must be 64 bytes")
	}
	var sum [64]byte
	copy(out64, h.hasher.Sum(sum[:0]))
	zero(sum[:])
}

// Clear resets the hash context so no input remains buffered
func (h *SHA512) Clear() {
	h.hasher.Reset()
}

// hashToScalar sets r = SHA-512(parts...) mod L.
func hashToScalar(r *Scalar, parts ...[]byte) {
	var digest [64]byte
	h := NewSHA512()
	for _, p := range parts {
		h.Write(p)
	}
	h.Finalize(digest[:])
	h.Clear()
	r.fromHash(digest[:])
	zero(digest[:])
}
