package qdsa

import (
	"math/bits"
	"unsafe"
)

// FieldElement represents an element of GF(p) with p = 2^127 - 1.
//
// Elements are kept partially reduced: the stored value is below 2p after
// every operation, so both 0 and p represent zero. normalize produces the
// canonical representative in [0, p).
type FieldElement struct {
	n uint128
}

// fieldMaskHi clears bit 127 (bit 63 of the top limb).
const fieldMaskHi = 1<<63 - 1

var (
	// FieldElementZero represents the field element 0
	FieldElementZero = FieldElement{}

	// FieldElementOne represents the field element 1
	FieldElementOne = FieldElement{n: uint128{1, 0}}

	fieldPrime = uint128{^uint64(0), fieldMaskHi}
)

// fieldFromInt64 returns v mod p. Only used for curve constants.
func fieldFromInt64(v int64) FieldElement {
	var r FieldElement
	if v >= 0 {
		r.n = uint128{uint64(v), 0}
		return r
	}
	var a FieldElement
	a.n = uint128{uint64(-v), 0}
	r.negate(&a)
	r.normalize()
	return r
}

// fieldFromUint128 builds an element from its high and low 64-bit halves.
func fieldFromUint128(hi, lo uint64) FieldElement {
	return FieldElement{n: uint128{lo, hi}}
}

// setInt sets r to a small unsigned value
func (r *FieldElement) setInt(v uint64) {
	r.n = uint128{v, 0}
}

// setB16 sets r from 16 little-endian bytes. Bit 127 is not part of the
// value; it is returned separately so callers can use it as a flag.
func (r *FieldElement) setB16(b []byte) (top uint64) {
	if len(b) != 16 {
		panic("field element byte array must be 16 bytes")
	}
	r.n.setBytes(b)
	top = r.n[1] >> 63
	r.n[1] &= fieldMaskHi
	return top
}

// getB16 writes the canonical value of a as 16 little-endian bytes with
// the low bit of top stored in bit 127.
func (a *FieldElement) getB16(b []byte, top uint64) {
	if len(b) != 16 {
		panic("field element byte array must be 16 bytes")
	}
	t := *a
	t.normalize()
	t.n[1] |= (top & 1) << 63
	t.n.putBytes(b)
}

// fold adds bits 127 and up of (hi, lo, carry) back into the low 127 bits.
func fold(lo, hi, carry uint64) (uint64, uint64) {
	top := hi>>63 | carry<<1
	hi &= fieldMaskHi
	var c uint64
	lo, c = bits.Add64(lo, top, 0)
	hi += c
	return lo, hi
}

// add sets r = a + b
func (r *FieldElement) add(a, b *FieldElement) {
	var c uint64
	var lo, hi uint64
	lo, c = bits.Add64(a.n[0], b.n[0], 0)
	hi, c = bits.Add64(a.n[1], b.n[1], c)
	r.n[0], r.n[1] = fold(lo, hi, c)
}

// sub sets r = a - b
func (r *FieldElement) sub(a, b *FieldElement) {
	var lo, hi, borrow uint64
	lo, borrow = bits.Sub64(a.n[0], b.n[0], 0)
	hi, borrow = bits.Sub64(a.n[1], b.n[1], borrow)
	// A wrapped result is 2^128 too large, and 2^128 = 2 (mod p). The second
	// subtraction cannot underflow because a wrapped value is at least 3.
	lo, borrow = bits.Sub64(lo, borrow<<1, 0)
	hi -= borrow
	r.n[0], r.n[1] = lo, hi
}

// negate sets r = -a
func (r *FieldElement) negate(a *FieldElement) {
	r.sub(&FieldElementZero, a)
}

// mul sets r = a * b
func (r *FieldElement) mul(a, b *FieldElement) {
	var t uint256
	mulLimbs(t[:], a.n[:], b.n[:])
	r.reduce(&t)
}

// sqr sets r = a^2
func (r *FieldElement) sqr(a *FieldElement) {
	r.mul(a, a)
}

// reduce folds a 256-bit product back below 2p. The first fold leaves up to
// 130 bits, so a second fold is required.
func (r *FieldElement) reduce(t *uint256) {
	h0 := t[1]>>63 | t[2]<<1
	h1 := t[2]>>63 | t[3]<<1
	h2 := t[3] >> 63

	var c uint64
	var lo, hi uint64
	lo, c = bits.Add64(t[0], h0, 0)
	hi, c = bits.Add64(t[1]&fieldMaskHi, h1, c)
	top := h2 + c

	r.n[0], r.n[1] = fold(lo, hi, top)
}

// normalize reduces r to the canonical range [0, p).
func (r *FieldElement) normalize() {
	// Fold bit 127: the value is now at most p.
	lo, hi := fold(r.n[0], r.n[1], 0)

	// Map p to 0: add one, fold, subtract one.
	var c uint64
	lo, c = bits.Add64(lo, 1, 0)
	hi += c
	lo, hi = fold(lo, hi, 0)
	lo, c = bits.Sub64(lo, 1, 0)
	hi -= c

	r.n[0], r.n[1] = lo, hi
}

// isZero returns true if a = 0 mod p, including the non-canonical pattern p.
func (a *FieldElement) isZero() bool {
	return a.isZeroMask() == 1
}

// isZeroMask returns 1 if a = 0 mod p and 0 otherwise, without branching.
func (a *FieldElement) isZeroMask() uint64 {
	t := *a
	t.normalize()
	return ctIsZero(t.n[0] | t.n[1])
}

// isOdd returns the parity of the canonical representative of a.
func (a *FieldElement) isOdd() uint64 {
	t := *a
	t.normalize()
	return t.n[0] & 1
}

// equal returns true if a = b mod p
func (a *FieldElement) equal(b *FieldElement) bool {
	var d FieldElement
	d.sub(a, b)
	return d.isZero()
}

// isCanonical reports whether the stored value is below p.
func (a *FieldElement) isCanonical() bool {
	return a.n[1] < fieldPrime[1] || (a.n[1] == fieldPrime[1] && a.n[0] < fieldPrime[0])
}

// sqrn sets r = a^(2^n)
func (r *FieldElement) sqrn(a *FieldElement, n int) {
	*r = *a
	for i := 0; i < n; i++ {
		r.sqr(r)
	}
}

// inv sets r = a^(p-2) = 1/a. Zero maps to zero.
//
// The chain builds a^(2^k - 1) for k = 1, 2, 4, ..., 64, then combines
// downwards to 2^125 - 1 and finishes with 2^127 - 3 = 4(2^125 - 1) + 1.
func (r *FieldElement) inv(a *FieldElement) {
	var x1, x2, x4, x8, x16, x32, x64, t FieldElement

	x1 = *a
	t.sqrn(&x1, 1)
	x2.mul(&t, &x1)
	t.sqrn(&x2, 2)
	x4.mul(&t, &x2)
	t.sqrn(&x4, 4)
	x8.mul(&t, &x4)
	t.sqrn(&x8, 8)
	x16.mul(&t, &x8)
	t.sqrn(&x16, 16)
	x32.mul(&t, &x16)
	t.sqrn(&x32, 32)
	x64.mul(&t, &x32)

	t.sqrn(&x64, 32) // 2^96 - 1
	t.mul(&t, &x32)
	t.sqrn(&t, 16) // 2^112 - 1
	t.mul(&t, &x16)
	t.sqrn(&t, 8) // 2^120 - 1
	t.mul(&t, &x8)
	t.sqrn(&t, 4) // 2^124 - 1
	t.mul(&t, &x4)
	t.sqrn(&t, 1) // 2^125 - 1
	t.mul(&t, &x1)

	t.sqrn(&t, 2)
	r.mul(&t, &x1)
}

// sqrt sets r = a^((p+1)/4) = a^(2^125). If a is a square, r is one of
// its square roots.
func (r *FieldElement) sqrt(a *FieldElement) {
	r.sqrn(a, 125)
}

// trySqrt sets r to a candidate square root of a and reports whether
// r^2 = a. The comparison is not constant time; it is only used on public
// data.
func (r *FieldElement) trySqrt(a *FieldElement) bool {
	var s FieldElement
	r.sqrt(a)
	s.sqr(r)
	return s.equal(a)
}

// cmov sets r = a if flag is 1, leaving r unchanged if flag is 0.
func (r *FieldElement) cmov(a *FieldElement, flag uint64) {
	mask := ctMask(flag)
	r.n[0] ^= mask & (r.n[0] ^ a.n[0])
	r.n[1] ^= mask & (r.n[1] ^ a.n[1])
}

// cswap exchanges a and b if flag is 1.
func cswap(a, b *FieldElement, flag uint64) {
	mask := ctMask(flag)
	t0 := mask & (a.n[0] ^ b.n[0])
	t1 := mask & (a.n[1] ^ b.n[1])
	a.n[0] ^= t0
	a.n[1] ^= t1
	b.n[0] ^= t0
	b.n[1] ^= t1
}

// clear clears a field element to prevent leaking sensitive information
func (r *FieldElement) clear() {
	memclear(unsafe.Pointer(&r.n[0]), unsafe.Sizeof(r.n))
}
