package qdsa

import (
	"unsafe"
)

// Scalar represents an integer modulo the group order
// L = 2^250 - 0x334D69820C75294D2C27FC9F9A154FF47730B4B840C05BD.
// The value is always fully reduced.
type Scalar struct {
	d uint256
}

// scalarFoldRounds is the number of times reduce512 folds bits 250 and up
// back in. Each round shrinks the excess by about 64 bits; after six rounds
// a 512-bit input is below L + 2^192 and one subtraction finishes. The
// result is the unique representative in [0, L), so encodings match any
// other full reduction.
const scalarFoldRounds = 6

// scalarLowMask keeps bits 192..249 of the top 250-bit limb.
const scalarLowMask = 1<<58 - 1

var (
	// ScalarZero represents the scalar 0
	ScalarZero = Scalar{}

	// ScalarOne represents the scalar 1
	ScalarOne = Scalar{d: uint256{1, 0, 0, 0}}

	// scalarL is the group order.
	scalarL = uint256{0xb88cf4b47bf3fa43, 0x2d3d8036065eab00, 0xfccb2967df38ad6b, 0x03ffffffffffffff}

	// scalarDelta is 2^250 - L.
	scalarDelta = [3]uint64{0x47730b4b840c05bd, 0xd2c27fc9f9a154ff, 0x0334d69820c75294}
)

// setB32 sets r from a 32-byte little-endian array, reducing modulo L.
func (r *Scalar) setB32(bin []byte) {
	if len(bin) != 32 {
		panic("scalar byte array must be 32 bytes")
	}
	var x uint512
	x.setBytes(bin)
	r.reduce512(&x)
}

// setB32Canonical sets r from a 32-byte little-endian array and reports
// whether the encoded value was already below L. The input is public.
func (r *Scalar) setB32Canonical(bin []byte) bool {
	if len(bin) != 32 {
		panic("scalar byte array must be 32 bytes")
	}
	var x, t uint256
	x.setBytes(bin)
	borrow := subLimbs(t[:], x[:], scalarL[:])
	r.setB32(bin)
	return borrow == 1
}

// setInt sets a scalar to an unsigned integer value
func (r *Scalar) setInt(v uint64) {
	r.d = uint256{v, 0, 0, 0}
}

// getB32 writes r as a 32-byte little-endian array.
func (r *Scalar) getB32(bin []byte) {
	if len(bin) != 32 {
		panic("output buffer must be 32 bytes")
	}
	r.d.putBytes(bin)
}

// fromHash sets r to a hash digest (at most 64 bytes, little-endian)
// reduced modulo L.
func (r *Scalar) fromHash(h []byte) {
	if len(h) > 64 {
		panic("hash input must be at most 64 bytes")
	}
	var x uint512
	x.setBytes(h)
	r.reduce512(&x)
	x.clear()
}

// reduce512 sets r = x mod L in constant time.
//
// With x = hi*2^250 + lo, we have x = lo + hi*delta (mod L), where
// delta = 2^250 - L has 186 bits.
func (r *Scalar) reduce512(x *uint512) {
	t := *x
	var hi, prod uint512
	for i := 0; i < scalarFoldRounds; i++ {
		shrLimbs(hi[:], t[:], 250)
		t[3] &= scalarLowMask
		t[4], t[5], t[6], t[7] = 0, 0, 0, 0
		mulLimbs(prod[:], hi[:5], scalarDelta[:])
		addLimbs(t[:], t[:], prod[:])
	}

	// t < 2^251 now, so one conditional subtraction of L suffices.
	var u uint256
	borrow := subLimbs(u[:], t[:4], scalarL[:])
	selectLimbs(r.d[:], t[:4], u[:], ctMask(borrow))

	t.clear()
	hi.clear()
	prod.clear()
}

// add sets r = a + b mod L
func (r *Scalar) add(a, b *Scalar) {
	var t, u uint256
	addLimbs(t[:], a.d[:], b.d[:]) // no carry: a + b < 2^251
	borrow := subLimbs(u[:], t[:], scalarL[:])
	selectLimbs(r.d[:], t[:], u[:], ctMask(borrow))
}

// sub sets r = a - b mod L
func (r *Scalar) sub(a, b *Scalar) {
	var t, u uint256
	borrow := subLimbs(t[:], a.d[:], b.d[:])
	addLimbs(u[:], t[:], scalarL[:])
	selectLimbs(r.d[:], u[:], t[:], ctMask(borrow))
}

// mul sets r = a * b mod L
func (r *Scalar) mul(a, b *Scalar) {
	var x uint512
	mulLimbs(x[:], a.d[:], b.d[:])
	r.reduce512(&x)
	x.clear()
}

// negate sets r = L - a, mapping zero to zero.
func (r *Scalar) negate(a *Scalar) {
	r.sub(&ScalarZero, a)
}

// combine sets r = (k - h*d) mod L, the response of a signature with nonce
// k, challenge h and secret d.
func (r *Scalar) combine(k, h, d *Scalar) {
	var hd Scalar
	hd.mul(h, d)
	r.sub(k, &hd)
	hd.clear()
}

// isZero returns true if the scalar is zero
func (r *Scalar) isZero() bool {
	return (r.d[0] | r.d[1] | r.d[2] | r.d[3]) == 0
}

// isOdd returns 1 if the scalar is odd and 0 otherwise
func (r *Scalar) isOdd() uint64 {
	return r.d[0] & 1
}

// equal returns true if two scalars are equal
func (r *Scalar) equal(a *Scalar) bool {
	return ((r.d[0] ^ a.d[0]) | (r.d[1] ^ a.d[1]) | (r.d[2] ^ a.d[2]) | (r.d[3] ^ a.d[3])) == 0
}

// cmov conditionally moves a scalar. If flag is 1, r = a; otherwise r is unchanged.
func (r *Scalar) cmov(a *Scalar, flag uint64) {
	selectLimbs(r.d[:], a.d[:], r.d[:], ctMask(flag))
}

// clear clears a scalar to prevent leaking sensitive information
func (r *Scalar) clear() {
	memclear(unsafe.Pointer(&r.d[0]), unsafe.Sizeof(r.d))
}

func (x *uint512) clear() {
	memclear(unsafe.Pointer(&x[0]), unsafe.Sizeof(*x))
}
