package qdsa

import (
	"encoding/hex"
	"testing"
)

// testStream returns n deterministic pseudo-random bytes derived from label.
func testStream(label string, n int) []byte {
	out := make([]byte, 0, n)
	var block [32]byte
	for ctr := byte(0); len(out) < n; ctr++ {
		h := NewSHA256()
		h.Write([]byte(label))
		h.Write([]byte{ctr})
		h.Finalize(block[:])
		out = append(out, block[:]...)
	}
	return out[:n]
}

func TestCompressBasepoint(t *testing.T) {
	if got := compressHex(&Basepoint); got != testBasepointHex {
		t.Errorf("compress(B) = %s, want %s", got, testBasepointHex)
	}

	var c CompressedPoint
	copy(c[:], mustHex(t, testBasepointHex))
	var p KummerPoint
	if !c.decompress(&p) {
		t.Fatal("basepoint encoding should decompress")
	}
	if !p.equal(&Basepoint) {
		t.Error("decompressed basepoint mismatch")
	}
}

func TestCompressIdentity(t *testing.T) {
	var id KummerPoint
	id.setIdentity()
	var c CompressedPoint
	c.compress(&id)
	if c != (CompressedPoint{}) {
		t.Errorf("compress(identity) = %x, want zeros", c)
	}

	var p KummerPoint
	if !c.decompress(&p) {
		t.Fatal("zero encoding should decompress")
	}
	if !p.isIdentity() {
		t.Error("zero encoding should decompress to the identity")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	seeds := testStream("compress-round-trip", 64*32)
	for i := 0; i < 32; i++ {
		var k Scalar
		k.fromHash(seeds[64*i : 64*(i+1)])
		var p, q KummerPoint
		ecmultGen(&p, &k)

		var c CompressedPoint
		c.compress(&p)
		if !c.decompress(&q) {
			t.Fatalf("round %d: decompress failed for %x", i, c)
		}
		if !q.equal(&p) {
			t.Fatalf("round %d: decompress(compress(P)) != P", i)
		}

		var c2 CompressedPoint
		c2.compress(&q)
		if c2 != c {
			t.Fatalf("round %d: encoding not canonical", i)
		}
	}
}

func TestDecompressRejects(t *testing.T) {
	testCases := []struct {
		name string
		enc  string
	}{
		{
			// l1 = p
			name: "l1_is_p",
			enc:  "ffffffffffffffffffffffffffffff7f09000000000000000000000000000080",
		},
		{
			// l2 = p
			name: "l2_is_p",
			enc:  "01000000000000000000000000000080ffffffffffffffffffffffffffffff7f",
		},
		{
			// tau clear but l2 neither 0 nor 1
			name: "noncanonical_l2",
			enc:  "0100000000000000000000000000000009000000000000000000000000000000",
		},
		{
			// tau clear, l2 = 0 and l1 > 1
			name: "noncanonical_l1",
			enc:  "0500000000000000000000000000000000000000000000000000000000000000",
		},
		{
			// identity pattern with sigma set
			name: "identity_sigma",
			enc:  "0000000000000000000000000000000000000000000000000000000000000080",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var c CompressedPoint
			b, err := hex.DecodeString(tc.enc)
			if err != nil {
				t.Fatal(err)
			}
			copy(c[:], b)
			var p KummerPoint
			if c.decompress(&p) {
				t.Errorf("decompress(%s) should fail", tc.enc)
			}
		})
	}
}

func TestDecompressGarbage(t *testing.T) {
	const n = 256
	data := testStream("decompress-garbage", 32*n)
	valid := 0
	for i := 0; i < n; i++ {
		var c CompressedPoint
		copy(c[:], data[32*i:32*(i+1)])
		var p KummerPoint
		if !c.decompress(&p) {
			continue
		}
		valid++
		// Whatever decompresses must be on the surface and re-encode identically.
		var back CompressedPoint
		back.compress(&p)
		if back != c {
			t.Fatalf("decompressed point re-encodes to %x, want %x", back, c)
		}
	}
	if valid == n {
		t.Error("random encodings should not all be valid")
	}
}

// k2ZeroEncoding builds an encoding with Tau set whose row coordinates
// make K2 vanish, by solving K2(l1, l2, 1) = 0 for l2. It reports false
// when the quadratic has no root for this l1.
func k2ZeroEncoding(l1v uint64, sigma uint64) (c CompressedPoint, ok bool) {
	var l1, l3 FieldElement
	l1.setInt(l1v)
	l3.setInt(1)

	// K2 = q3*l2^2 + (q4 + q1*l1)*l2 + (q5 + q2*l1 + q0*l1^2)
	q := &formQ
	var a, b, cc, t FieldElement
	a = q[3]
	b.mul(&q[1], &l1)
	b.add(&b, &q[4])
	cc.mul(&q[2], &l1)
	cc.add(&cc, &q[5])
	t.sqr(&l1)
	t.mul(&t, &q[0])
	cc.add(&cc, &t)

	var disc, four, root FieldElement
	disc.sqr(&b)
	four.setInt(4)
	t.mul(&a, &cc)
	t.mul(&t, &four)
	disc.sub(&disc, &t)
	if !root.trySqrt(&disc) {
		return c, false
	}

	var l2, inv FieldElement
	l2.sub(&root, &b)
	inv.add(&a, &a)
	inv.inv(&inv)
	l2.mul(&l2, &inv)

	var k2, k3, k4 FieldElement
	biquadraticForms(&k2, &k3, &k4, &l1, &l2, &l3)
	if !k2.isZero() || k3.isZero() {
		return c, false
	}

	l1.getB16(c[0:16], 1)
	l2.getB16(c[16:32], sigma)
	return c, true
}

func TestDecompressK2Zero(t *testing.T) {
	built := 0
	for l1 := uint64(1); l1 <= 16; l1++ {
		var accepted []CompressedPoint
		for sigma := uint64(0); sigma <= 1; sigma++ {
			c, ok := k2ZeroEncoding(l1, sigma)
			if !ok {
				continue
			}
			var p KummerPoint
			if c.decompress(&p) {
				accepted = append(accepted, c)
				var back CompressedPoint
				back.compress(&p)
				if back != c {
					t.Errorf("l1=%d sigma=%d: re-encodes to %x, want %x", l1, sigma, back, c)
				}
			}
		}
		if _, ok := k2ZeroEncoding(l1, 0); !ok {
			continue
		}
		built++
		if len(accepted) != 1 {
			t.Errorf("l1=%d: %d sigma values accepted, want exactly 1", l1, len(accepted))
		}
	}
	if built == 0 {
		t.Fatal("no encoding with K2 = 0 was found")
	}
}

func TestBiquadraticFormsOnSurface(t *testing.T) {
	// K2*l4^2 - 2*K3*l4 + K4 = 0 for the row coordinates of a point.
	var p KummerPoint
	ecmultGen(&p, scalarFromInt(5))

	var l [4]FieldElement
	rowForms(&l, &p.c, &kappaField)
	var inv FieldElement
	inv.inv(&l[2])
	for i := range l {
		l[i].mul(&l[i], &inv)
	}

	var k2, k3, k4, t1, t2 FieldElement
	biquadraticForms(&k2, &k3, &k4, &l[0], &l[1], &l[2])
	t1.sqr(&l[3])
	t1.mul(&t1, &k2)
	t2.mul(&k3, &l[3])
	t2.add(&t2, &t2)
	t1.sub(&t1, &t2)
	t1.add(&t1, &k4)
	if !t1.isZero() {
		t.Error("row coordinates should satisfy the surface equation")
	}
}

func BenchmarkCompress(b *testing.B) {
	var p KummerPoint
	ecmultGen(&p, scalarFromInt(5))
	var c CompressedPoint
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.compress(&p)
	}
}

func BenchmarkDecompress(b *testing.B) {
	var p KummerPoint
	ecmultGen(&p, scalarFromInt(5))
	var c CompressedPoint
	c.compress(&p)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.decompress(&p)
	}
}
