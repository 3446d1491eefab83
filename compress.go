package qdsa

// CompressedPoint is the 32-byte wire form of a Kummer point: two
// normalized row coordinates l1 and l2, 16 little-endian bytes each, with
// the flag Tau in the top bit of l1 and Sigma in the top bit of l2.
type CompressedPoint [32]byte

var (
	kappaField = fieldVector(Kappa)
	muField    = fieldVector(Mu)

	formQ     [7]FieldElement
	formQHalf [7]FieldElement
)

func init() {
	for i, q := range CurveQ {
		formQ[i] = fieldFromInt64(q)
		// q1, q2, q4 and q6 are even; only those halves are used by K3.
		formQHalf[i] = fieldFromInt64(q / 2)
	}
}

// rowForms applies the symmetric linear map with coefficient vector k:
// r_i = sum_j k[(3-i) xor j] * a_j. With Kappa it produces the rows
// L1..L4; with Mu it is proportional to the inverse map.
func rowForms(r *[4]FieldElement, a *[4]FieldElement, k *[4]FieldElement) {
	var out [4]FieldElement
	var t FieldElement
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t.mul(&k[(3-i)^j], &a[j])
			out[i].add(&out[i], &t)
		}
	}
	*r = out
}

// addMul sets r = r + a*b
func (r *FieldElement) addMul(a, b *FieldElement) {
	var t FieldElement
	t.mul(a, b)
	r.add(r, &t)
}

// biquadraticForms evaluates K2, K3 and K4 at (l1, l2, l3). On the surface
// the fourth row coordinate satisfies K2*l4^2 - 2*K3*l4 + K4 = 0.
func biquadraticForms(k2, k3, k4 *FieldElement, l1, l2, l3 *FieldElement) {
	var l11, l22, l33, l12, l13, l23, t FieldElement
	l11.sqr(l1)
	l22.sqr(l2)
	l33.sqr(l3)
	l12.mul(l1, l2)
	l13.mul(l1, l3)
	l23.mul(l2, l3)

	q := &formQ
	h := &formQHalf

	*k2 = FieldElementZero
	k2.addMul(&q[5], &l33)
	k2.addMul(&q[4], &l23)
	k2.addMul(&q[3], &l22)
	k2.addMul(&q[2], &l13)
	k2.addMul(&q[1], &l12)
	k2.addMul(&q[0], &l11)

	var s FieldElement
	t.mul(l2, &l33)
	s.addMul(&h[2], &t)
	t.mul(&l22, l3)
	s.addMul(&h[1], &t)
	t.mul(l1, &l33)
	s.addMul(&h[4], &t)
	t.mul(&l12, l3)
	s.addMul(&h[6], &t)
	t.mul(l1, &l22)
	s.addMul(&h[4], &t)
	t.mul(&l11, l3)
	s.addMul(&h[1], &t)
	t.mul(&l11, l2)
	s.addMul(&h[2], &t)
	k3.negate(&s)

	*k4 = FieldElementZero
	t.sqr(&l23)
	k4.addMul(&q[0], &t)
	t.mul(&l12, &l33)
	k4.addMul(&q[1], &t)
	t.mul(&l12, &l23)
	k4.addMul(&q[2], &t)
	t.sqr(&l13)
	k4.addMul(&q[3], &t)
	t.mul(&l11, &l23)
	k4.addMul(&q[4], &t)
	t.sqr(&l12)
	k4.addMul(&q[5], &t)
}

// compress sets r to the wire form of p. The identity compresses to 32
// zero bytes.
func (r *CompressedPoint) compress(p *KummerPoint) {
	var l [4]FieldElement
	rowForms(&l, &p.c, &kappaField)

	// Normalize by the first nonzero of L3, L2, L1, falling back to L4.
	den := l[3]
	den.cmov(&l[0], 1^l[0].isZeroMask())
	den.cmov(&l[1], 1^l[1].isZeroMask())
	den.cmov(&l[2], 1^l[2].isZeroMask())
	tau := 1 ^ l[2].isZeroMask()

	var inv, l1, l2, l3, l4 FieldElement
	inv.inv(&den)
	l1.mul(&l[0], &inv)
	l2.mul(&l[1], &inv)
	l4.mul(&l[3], &inv)
	l3.setInt(tau)

	var k2, k3, k4, t FieldElement
	biquadraticForms(&k2, &k3, &k4, &l1, &l2, &l3)
	t.mul(&k2, &l4)
	t.sub(&t, &k3)
	sigma := t.isOdd()

	l1.getB16(r[0:16], tau)
	l2.getB16(r[16:32], sigma)
}

// decompress sets p to the point encoded by c. It returns false, leaving p
// unspecified, if c is not the canonical encoding of a point on the
// surface. The input is untrusted; no encoding makes it panic.
func (c *CompressedPoint) decompress(p *KummerPoint) bool {
	var l1, l2, l3 FieldElement
	tau := l1.setB16(c[0:16])
	sigma := l2.setB16(c[16:32])
	if !l1.isCanonical() || !l2.isCanonical() {
		return false
	}

	// Without Tau the normalizing row was L2 (so l2 = 1), L1 (l2 = 0,
	// l1 = 1) or L4 (l1 = l2 = 0).
	if tau == 0 {
		l2one := l2.n[1] == 0 && l2.n[0] == 1
		l2zero := l2.n[1] == 0 && l2.n[0] == 0
		l1small := l1.n[1] == 0 && l1.n[0] <= 1
		if !l2one && !(l2zero && l1small) {
			return false
		}
	}
	l3.setInt(tau)

	var k2, k3, k4 FieldElement
	biquadraticForms(&k2, &k3, &k4, &l1, &l2, &l3)

	var rows [4]FieldElement
	switch {
	case k2.isZero() && k3.isZero():
		// Only the identity has both forms vanishing.
		if tau != 0 || sigma != 0 || !l1.isZero() || !l2.isZero() {
			return false
		}
		p.setIdentity()
		return true

	case k2.isZero():
		// l4 = K4 / 2K3
		var nk3 FieldElement
		nk3.negate(&k3)
		if nk3.isOdd() != sigma {
			return false
		}
		var k32 FieldElement
		k32.add(&k3, &k3)
		rows[0].mul(&k32, &l1)
		rows[1].mul(&k32, &l2)
		rows[2].mul(&k32, &l3)
		rows[3] = k4

	default:
		// l4 = (K3 +- sqrt(K3^2 - K2*K4)) / K2
		var delta, t, root FieldElement
		delta.sqr(&k3)
		t.mul(&k2, &k4)
		delta.sub(&delta, &t)
		if !root.trySqrt(&delta) {
			return false
		}
		var neg FieldElement
		neg.negate(&root)
		root.cmov(&neg, root.isOdd()^sigma)
		if root.isOdd() != sigma {
			return false
		}
		rows[0].mul(&k2, &l1)
		rows[1].mul(&k2, &l2)
		rows[2].mul(&k2, &l3)
		rows[3].add(&k3, &root)
	}

	rowForms(&p.c, &rows, &muField)
	return true
}
