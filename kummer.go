package qdsa

import (
	"unsafe"
)

// KummerPoint is a point (X : Y : Z : T) on the Kummer surface of the
// genus-2 curve, in squared-theta coordinates. Points are projective and
// carry no sign: P and -P share one representation.
type KummerPoint struct {
	c [4]FieldElement
}

// wrappedPoint holds (x/y, x/z, x/t) of a ladder input point, so the
// differential addition in every ladder step avoids inversions.
type wrappedPoint struct {
	w [3]FieldElement
}

// Curve constants. The fundamental theta constants Mu = (a : b : c : d)
// fix the curve; everything else is derived from them and is not tunable.
var (
	// Mu is the identity point (a : b : c : d).
	Mu = [4]int64{-11, 22, 19, 3}

	// MuHat is H(Mu).
	MuHat = [4]int64{33, -11, -17, -49}

	// Epsilon is proportional to the coordinatewise inverse of Mu.
	Epsilon = [4]int64{-114, 57, 66, 418}

	// EpsilonHat is proportional to the coordinatewise inverse of MuHat.
	EpsilonHat = [4]int64{-833, 2499, 1617, 561}

	// Kappa gives the coefficients of the linear row forms used by
	// point compression. The first three rows vanish at the identity.
	Kappa = [4]int64{-961, 128, 569, 1097}

	// CurveQ holds the coefficients of the biquadratic forms K2, K3, K4
	// that cut out the surface in row coordinates.
	CurveQ = [7]int64{55875625, -113395750, -87651850, 150283081, 235985750, 127125625, 528683838}

	// CurveC is the cross-term constant of the verification relations.
	CurveC int64 = 12534984
)

// Ladder constants. Inside the ladder the first coordinate is negated so
// every doubling constant is positive.
var (
	ladderMu         [4]FieldElement
	ladderEpsilon    [4]FieldElement
	ladderEpsilonHat [4]FieldElement
)

// Basepoint is a generator of the prime-order subgroup of order L.
var Basepoint = KummerPoint{c: [4]FieldElement{
	fieldFromUint128(0x0c932c49835bf1f9, 0x832e53b48040624d),
	fieldFromUint128(0x66d9a76cf9481c0c, 0xf9a35dc862424830),
	fieldFromUint128(0x6a479c3b34612f7f, 0x91c744171c9fa014),
	fieldFromUint128(0x7c920b31c4e6ec8d, 0x67dc1adf437d6ddc),
}}

// basepointWrapped is the wrapped form of the twisted Basepoint.
var basepointWrapped wrappedPoint

func init() {
	for i := 0; i < 4; i++ {
		ladderMu[i] = fieldFromInt64(abs64(Mu[i]))
		ladderEpsilon[i] = fieldFromInt64(abs64(Epsilon[i]))
		ladderEpsilonHat[i] = fieldFromInt64(abs64(EpsilonHat[i]))
	}
	var t KummerPoint
	t.twist(&Basepoint)
	basepointWrapped.wrap(&t)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// fieldVector converts small integer constants to field elements.
func fieldVector(v [4]int64) (r [4]FieldElement) {
	for i := range v {
		r[i] = fieldFromInt64(v[i])
	}
	return r
}

// setIdentity sets r to the identity Mu.
func (r *KummerPoint) setIdentity() {
	r.c = fieldVector(Mu)
}

// isIdentity reports whether r is projectively equal to the identity.
func (r *KummerPoint) isIdentity() bool {
	var id KummerPoint
	id.setIdentity()
	return r.equal(&id)
}

// equal reports projective equality: a_i*b_j = a_j*b_i for all i, j. A
// point with all coordinates zero equals nothing.
func (a *KummerPoint) equal(b *KummerPoint) bool {
	if a.isNull() || b.isNull() {
		return false
	}
	var l, r FieldElement
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			l.mul(&a.c[i], &b.c[j])
			r.mul(&a.c[j], &b.c[i])
			if !l.equal(&r) {
				return false
			}
		}
	}
	return true
}

// isNull reports whether all four coordinates are zero.
func (a *KummerPoint) isNull() bool {
	return a.c[0].isZero() && a.c[1].isZero() && a.c[2].isZero() && a.c[3].isZero()
}

// twist negates the first coordinate, moving between the surface and the
// ladder's internal representation. It is its own inverse.
func (r *KummerPoint) twist(a *KummerPoint) {
	*r = *a
	r.c[0].negate(&a.c[0])
}

// hadamard sets r = H(a) with rows (+,+,+,+), (+,+,-,-), (+,-,+,-), (+,-,-,+).
func (r *KummerPoint) hadamard(a *KummerPoint) {
	var s01, d01, s23, d23 FieldElement
	s01.add(&a.c[0], &a.c[1])
	d01.sub(&a.c[0], &a.c[1])
	s23.add(&a.c[2], &a.c[3])
	d23.sub(&a.c[2], &a.c[3])
	r.c[0].add(&s01, &s23)
	r.c[1].sub(&s01, &s23)
	r.c[2].add(&d01, &d23)
	r.c[3].sub(&d01, &d23)
}

// negHadamard negates the first input coordinate, applies H, and negates
// the last output coordinate.
func (r *KummerPoint) negHadamard(a *KummerPoint) {
	var s01, t01, s23, d23 FieldElement
	s01.add(&a.c[0], &a.c[1])
	t01.sub(&a.c[1], &a.c[0])
	s23.add(&a.c[2], &a.c[3])
	d23.sub(&a.c[2], &a.c[3])
	r.c[0].add(&t01, &s23)
	r.c[1].sub(&t01, &s23)
	r.c[2].sub(&d23, &s01)
	r.c[3].add(&s01, &d23)
}

// mul4 sets r = a * b coordinatewise.
func (r *KummerPoint) mul4(a *KummerPoint, b *[4]FieldElement) {
	for i := 0; i < 4; i++ {
		r.c[i].mul(&a.c[i], &b[i])
	}
}

// sqr4 sets r = a^2 coordinatewise.
func (r *KummerPoint) sqr4(a *KummerPoint) {
	for i := 0; i < 4; i++ {
		r.c[i].sqr(&a.c[i])
	}
}

// dblAdd sets p = 2p and q = p + q given the wrapped difference q - p.
// Both points are in the twisted representation.
func dblAdd(p, q *KummerPoint, wd *wrappedPoint) {
	var v, w KummerPoint

	v.negHadamard(p)
	w.negHadamard(q)
	w.mul4(&w, &v.c)
	v.sqr4(&v)

	v.mul4(&v, &ladderEpsilonHat)
	w.mul4(&w, &ladderEpsilonHat)

	p.negHadamard(&v)
	q.negHadamard(&w)
	p.sqr4(p)
	q.sqr4(q)

	p.mul4(p, &ladderEpsilon)
	q.c[1].mul(&q.c[1], &wd.w[0])
	q.c[2].mul(&q.c[2], &wd.w[1])
	q.c[3].mul(&q.c[3], &wd.w[2])
}

// wrap sets r = (x/y, x/z, x/t) using a single inversion.
func (r *wrappedPoint) wrap(a *KummerPoint) {
	var yz, yzt, inv, t FieldElement
	yz.mul(&a.c[1], &a.c[2])
	yzt.mul(&yz, &a.c[3])
	inv.inv(&yzt)
	inv.mul(&inv, &a.c[0]) // x/(yzt)

	t.mul(&a.c[2], &a.c[3])
	r.w[0].mul(&inv, &t)
	t.mul(&a.c[1], &a.c[3])
	r.w[1].mul(&inv, &t)
	r.w[2].mul(&inv, &yz)
}

// unwrap sets r to a point projectively equal to the point a was wrapped
// from: (w0w1w2 : w1w2 : w0w2 : w0w1).
func (a *wrappedPoint) unwrap(r *KummerPoint) {
	r.c[1].mul(&a.w[1], &a.w[2])
	r.c[2].mul(&a.w[0], &a.w[2])
	r.c[3].mul(&a.w[0], &a.w[1])
	r.c[0].mul(&r.c[1], &a.w[0])
}

// cswapPoints exchanges a and b if flag is 1.
func cswapPoints(a, b *KummerPoint, flag uint64) {
	for i := 0; i < 4; i++ {
		cswap(&a.c[i], &b.c[i], flag)
	}
}

// clear clears a point to prevent leaking sensitive information
func (r *KummerPoint) clear() {
	memclear(unsafe.Pointer(&r.c[0]), unsafe.Sizeof(r.c))
}
