package qdsa

// scalarBits is the number of ladder steps. Reduced scalars are below
// L < 2^250, so bit 250 is always zero and the top step only doubles the
// identity.
const scalarBits = 251

// ladder sets r = [k]q. The base is given both in twisted form (tq) and
// wrapped form (wd); the result is returned on the surface.
//
// The loop runs a fixed number of steps and swaps the working pair only
// through masks, so timing and memory access do not depend on k.
func ladder(r *KummerPoint, tq *KummerPoint, wd *wrappedPoint, k *Scalar) {
	var r0, r1 KummerPoint
	r0.c = ladderMu
	r1 = *tq

	var prev uint64
	for i := scalarBits - 1; i >= 0; i-- {
		b := k.d.bit(uint(i))
		cswapPoints(&r0, &r1, b^prev)
		dblAdd(&r0, &r1, wd)
		prev = b
	}
	cswapPoints(&r0, &r1, prev)

	r.twist(&r0)
	r0.clear()
	r1.clear()
}

// ecmult sets r = [k]q for an arbitrary point q on the surface.
func ecmult(r *KummerPoint, q *KummerPoint, k *Scalar) {
	var tq KummerPoint
	var wd wrappedPoint
	tq.twist(q)
	wd.wrap(&tq)
	ladder(r, &tq, &wd, k)
}

// ecmultGen sets r = [k]Basepoint using the precomputed wrapped base.
func ecmultGen(r *KummerPoint, k *Scalar) {
	var tq KummerPoint
	tq.twist(&Basepoint)
	ladder(r, &tq, &basepointWrapped, k)
}
