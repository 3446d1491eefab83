package qdsa

// Verification on the Kummer surface cannot compare R with sP + hQ
// directly, because the surface only knows sP and hQ up to sign. Instead
// the pair (sP+hQ, sP-hQ) is characterized by the biquadratic forms B_ij:
// R is one of the two points exactly when
//
//	B_jj*R_i^2 - 2*C*B_ij*R_i*R_j + B_ii*R_j^2 = 0
//
// for every pair i < j, with all coordinates in the Hadamard basis.

// checkPair describes one off-diagonal form B_ij. With x = P_i*P_j,
// u = P_k*P_l, y = Q_i*Q_j and v = Q_k*Q_l, where {k, l} is the complement
// of {i, j}:
//
//	B_ij = a*(x*(y - v) - u*y) + b*u*v
type checkPair struct {
	i, j, k, l int
	a, b       int64
}

var checkPairs = [6]checkPair{
	{0, 1, 2, 3, -309938475, 135063225},
	{0, 2, 1, 3, -336987651, 350742249},
	{0, 3, 1, 2, -205480275, 1776800025},
	{1, 2, 0, 3, 205480275, -23763025},
	{1, 3, 0, 2, 336987651, -323772449},
	{2, 3, 0, 1, 309938475, -711236225},
}

// checkMuHatScale multiplies MuHat in the diagonal terms.
const checkMuHatScale = 306475

var (
	epsilonField    = fieldVector(Epsilon)
	epsilonHatField = fieldVector(EpsilonHat)
	checkDiagScale  [4]FieldElement
	checkPairA      [6]FieldElement
	checkPairB      [6]FieldElement
	checkC2         FieldElement
)

func init() {
	for i := 0; i < 4; i++ {
		checkDiagScale[i] = fieldFromInt64(checkMuHatScale * MuHat[i])
	}
	for n, cp := range checkPairs {
		checkPairA[n] = fieldFromInt64(cp.a)
		checkPairB[n] = fieldFromInt64(cp.b)
	}
	checkC2 = fieldFromInt64(2 * CurveC)
}

// doubleHadamard sets r = H(EpsilonHat * H(a)^2), the image of a under the
// first half of the doubling map.
func (r *KummerPoint) doubleHadamard(a *KummerPoint) {
	var t KummerPoint
	t.hadamard(a)
	t.sqr4(&t)
	t.mul4(&t, &epsilonHatField)
	r.hadamard(&t)
}

// check reports whether r is sP + hQ or sP - hQ. The inputs are public.
func check(sP, hQ, r *KummerPoint) bool {
	if sP.isNull() || hQ.isNull() || r.isNull() {
		return false
	}

	// Diagonal terms B_ii = 306475*MuHat * H(Epsilon * T(P) * T(Q)).
	var tp, tq, bd KummerPoint
	tp.doubleHadamard(sP)
	tq.doubleHadamard(hQ)
	bd.mul4(&tp, &tq.c)
	bd.mul4(&bd, &epsilonField)
	bd.hadamard(&bd)
	bd.mul4(&bd, &checkDiagScale)

	var ph, qh, rh KummerPoint
	ph.hadamard(sP)
	qh.hadamard(hQ)
	rh.hadamard(r)

	var x, u, y, v, bij, t, lhs, rr FieldElement
	for n := range checkPairs {
		cp := &checkPairs[n]

		x.mul(&ph.c[cp.i], &ph.c[cp.j])
		u.mul(&ph.c[cp.k], &ph.c[cp.l])
		y.mul(&qh.c[cp.i], &qh.c[cp.j])
		v.mul(&qh.c[cp.k], &qh.c[cp.l])

		t.sub(&y, &v)
		t.mul(&t, &x)
		rr.mul(&u, &y)
		t.sub(&t, &rr)
		bij.mul(&t, &checkPairA[n])
		t.mul(&u, &v)
		bij.addMul(&t, &checkPairB[n])

		// B_jj*R_i^2 - 2C*B_ij*R_i*R_j + B_ii*R_j^2
		t.sqr(&rh.c[cp.i])
		lhs.mul(&t, &bd.c[cp.j])
		t.sqr(&rh.c[cp.j])
		lhs.addMul(&t, &bd.c[cp.i])
		rr.mul(&rh.c[cp.i], &rh.c[cp.j])
		rr.mul(&rr, &bij)
		rr.mul(&rr, &checkC2)
		lhs.sub(&lhs, &rr)

		if !lhs.isZero() {
			return false
		}
	}
	return true
}
