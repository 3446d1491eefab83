package qdsa

import (
	"encoding/binary"
	"math/bits"
)

// Fixed-width unsigned integers stored as little-endian arrays of 64-bit
// limbs. Limb order is logical and independent of host byte order; byte
// arrays are only ever bridged through setBytes/putBytes.
type (
	uint128 [2]uint64
	uint256 [4]uint64
	uint512 [8]uint64
)

// ctMask returns all ones if the low bit of b is set, zero otherwise.
func ctMask(b uint64) uint64 {
	return -(b & 1)
}

// ctLess returns 1 if a < b and 0 otherwise without branching.
func ctLess(a, b uint64) uint64 {
	_, borrow := bits.Sub64(a, b, 0)
	return borrow
}

// ctIsZero returns 1 if a == 0 and 0 otherwise without branching.
func ctIsZero(a uint64) uint64 {
	return 1 ^ ((a | -a) >> 63)
}

// addLimbs sets r = a + b over len(r) limbs and returns the carry out.
// a and b must be at least len(r) limbs; r may alias either.
func addLimbs(r, a, b []uint64) (carry uint64) {
	for i := range r {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// subLimbs sets r = a - b over len(r) limbs and returns the borrow out.
func subLimbs(r, a, b []uint64) (borrow uint64) {
	for i := range r {
		r[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// mulLimbs sets r = a * b using schoolbook multiplication. r must hold
// len(a)+len(b) limbs and must not alias a or b.
func mulLimbs(r, a, b []uint64) {
	for i := range r {
		r[i] = 0
	}
	for i := range a {
		var carry uint64
		for j := range b {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+len(b)] = carry
	}
}

// shrLimbs sets r = a >> s. The shift count is public. r and a must have
// equal length; r may alias a.
func shrLimbs(r, a []uint64, s uint) {
	n := len(a)
	limbs := int(s / 64)
	off := s % 64
	for i := 0; i < n; i++ {
		var v uint64
		if i+limbs < n {
			v = a[i+limbs] >> off
			if off != 0 && i+limbs+1 < n {
				v |= a[i+limbs+1] << (64 - off)
			}
		}
		r[i] = v
	}
}

// shlLimbs sets r = a << s, discarding bits shifted past the top limb.
func shlLimbs(r, a []uint64, s uint) {
	n := len(a)
	limbs := int(s / 64)
	off := s % 64
	for i := n - 1; i >= 0; i-- {
		var v uint64
		if i-limbs >= 0 {
			v = a[i-limbs] << off
			if off != 0 && i-limbs-1 >= 0 {
				v |= a[i-limbs-1] >> (64 - off)
			}
		}
		r[i] = v
	}
}

func andLimbs(r, a, b []uint64) {
	for i := range r {
		r[i] = a[i] & b[i]
	}
}

func orLimbs(r, a, b []uint64) {
	for i := range r {
		r[i] = a[i] | b[i]
	}
}

func xorLimbs(r, a, b []uint64) {
	for i := range r {
		r[i] = a[i] ^ b[i]
	}
}

// selectLimbs sets r = a where mask is all ones and r = b where it is zero.
func selectLimbs(r, a, b []uint64, mask uint64) {
	for i := range r {
		r[i] = b[i] ^ (mask & (a[i] ^ b[i]))
	}
}

// limbsFromBytes reads a little-endian byte string into r, zero-extending
// short input. Input longer than 8*len(r) bytes is truncated.
func limbsFromBytes(r []uint64, b []byte) {
	var buf [8]byte
	for i := range r {
		r[i] = 0
		lo := 8 * i
		if lo >= len(b) {
			continue
		}
		hi := lo + 8
		if hi <= len(b) {
			r[i] = binary.LittleEndian.Uint64(b[lo:hi])
			continue
		}
		buf = [8]byte{}
		copy(buf[:], b[lo:])
		r[i] = binary.LittleEndian.Uint64(buf[:])
	}
}

// limbsToBytes writes a as little-endian bytes into b, which must be
// exactly 8*len(a) bytes.
func limbsToBytes(b []byte, a []uint64) {
	if len(b) != 8*len(a) {
		panic("output buffer has wrong length")
	}
	for i := range a {
		binary.LittleEndian.PutUint64(b[8*i:], a[i])
	}
}

func (x *uint128) setBytes(b []byte) { limbsFromBytes(x[:], b) }
func (x *uint128) putBytes(b []byte) { limbsToBytes(b, x[:]) }

func (x *uint256) setBytes(b []byte) { limbsFromBytes(x[:], b) }
func (x *uint256) putBytes(b []byte) { limbsToBytes(b, x[:]) }

func (x *uint512) setBytes(b []byte) { limbsFromBytes(x[:], b) }
func (x *uint512) putBytes(b []byte) { limbsToBytes(b, x[:]) }

// bit returns bit i of x. The index is public.
func (x *uint256) bit(i uint) uint64 {
	return (x[i/64] >> (i % 64)) & 1
}
