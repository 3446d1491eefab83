package qdsa

import (
	"bytes"
	"testing"
)

func TestLimbsAddSub(t *testing.T) {
	a := uint256{^uint64(0), ^uint64(0), 0, 1}
	b := uint256{1, 0, 0, 0}

	var r uint256
	if c := addLimbs(r[:], a[:], b[:]); c != 0 {
		t.Errorf("carry = %d, want 0", c)
	}
	if r != (uint256{0, 0, 1, 1}) {
		t.Errorf("a + b = %x", r)
	}

	var back uint256
	if bw := subLimbs(back[:], r[:], b[:]); bw != 0 {
		t.Errorf("borrow = %d, want 0", bw)
	}
	if back != a {
		t.Errorf("(a + b) - b = %x, want %x", back, a)
	}

	max := uint256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	if c := addLimbs(r[:], max[:], b[:]); c != 1 || r != (uint256{}) {
		t.Errorf("max + 1 = %x carry %d, want 0 carry 1", r, c)
	}
	if bw := subLimbs(r[:], b[:], max[:]); bw != 1 || r != (uint256{2, 0, 0, 0}) {
		t.Errorf("1 - max = %x borrow %d, want 2 borrow 1", r, bw)
	}
}

func TestLimbsMul(t *testing.T) {
	// (2^128 - 1)^2 = 2^256 - 2^129 + 1
	a := uint128{^uint64(0), ^uint64(0)}
	var r uint256
	mulLimbs(r[:], a[:], a[:])
	want := uint256{1, 0, ^uint64(0) - 1, ^uint64(0)}
	if r != want {
		t.Errorf("(2^128-1)^2 = %x, want %x", r, want)
	}

	b := uint128{3, 0}
	c := uint128{0, 5}
	mulLimbs(r[:], b[:], c[:])
	if r != (uint256{0, 15, 0, 0}) {
		t.Errorf("3 * 5*2^64 = %x", r)
	}
}

func TestLimbsShift(t *testing.T) {
	testCases := []struct {
		name  string
		shift uint
		right uint256
		left  uint256
	}{
		{"zero", 0, uint256{0x8000000000000001, 2, 3, 4}, uint256{0x8000000000000001, 2, 3, 4}},
		{"one", 1, uint256{0x4000000000000000, 0x8000000000000001, 1, 2}, uint256{2, 5, 6, 8}},
		{"limb", 64, uint256{2, 3, 4, 0}, uint256{0, 0x8000000000000001, 2, 3}},
		{"mixed", 68, uint256{0x3000000000000000, 0x4000000000000000, 0, 0}, uint256{0, 0x10, 0x28, 0x30}},
	}
	x := uint256{0x8000000000000001, 2, 3, 4}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var r uint256
			shrLimbs(r[:], x[:], tc.shift)
			if r != tc.right {
				t.Errorf("x >> %d = %x, want %x", tc.shift, r, tc.right)
			}
			shlLimbs(r[:], x[:], tc.shift)
			if r != tc.left {
				t.Errorf("x << %d = %x, want %x", tc.shift, r, tc.left)
			}
		})
	}
}

func TestLimbsBitwise(t *testing.T) {
	a := uint128{0xff00ff00ff00ff00, 0x0f0f0f0f0f0f0f0f}
	b := uint128{0x0ff00ff00ff00ff0, 0xffffffff00000000}
	var r uint128

	andLimbs(r[:], a[:], b[:])
	if r != (uint128{0x0f000f000f000f00, 0x0f0f0f0f00000000}) {
		t.Errorf("and = %x", r)
	}
	orLimbs(r[:], a[:], b[:])
	if r != (uint128{0xfff0fff0fff0fff0, 0xffffffff0f0f0f0f}) {
		t.Errorf("or = %x", r)
	}
	xorLimbs(r[:], a[:], b[:])
	if r != (uint128{0xf0f0f0f0f0f0f0f0, 0xf0f0f0f00f0f0f0f}) {
		t.Errorf("xor = %x", r)
	}

	selectLimbs(r[:], a[:], b[:], ctMask(1))
	if r != a {
		t.Error("select with full mask should pick a")
	}
	selectLimbs(r[:], a[:], b[:], ctMask(0))
	if r != b {
		t.Error("select with zero mask should pick b")
	}
}

func TestConstantTimeHelpers(t *testing.T) {
	testCases := []struct {
		a, b uint64
		less uint64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 0},
		{^uint64(0), 0, 0},
		{0, ^uint64(0), 1},
		{1 << 63, 1<<63 + 1, 1},
	}
	for _, tc := range testCases {
		if got := ctLess(tc.a, tc.b); got != tc.less {
			t.Errorf("ctLess(%x, %x) = %d, want %d", tc.a, tc.b, got, tc.less)
		}
	}

	if ctIsZero(0) != 1 || ctIsZero(1) != 0 || ctIsZero(1<<63) != 0 {
		t.Error("ctIsZero mismatch")
	}
	if ctMask(0) != 0 || ctMask(1) != ^uint64(0) {
		t.Error("ctMask mismatch")
	}
}

func TestLimbsBytes(t *testing.T) {
	in := make([]byte, 32)
	for i := range in {
		in[i] = byte(i + 1)
	}
	var x uint256
	x.setBytes(in)
	if x[0] != 0x0807060504030201 || x[3] != 0x201f1e1d1c1b1a19 {
		t.Errorf("setBytes = %x", x)
	}
	out := make([]byte, 32)
	x.putBytes(out)
	if !bytes.Equal(in, out) {
		t.Errorf("putBytes = %x, want %x", out, in)
	}

	// Short input is zero-extended
	var y uint512
	y.setBytes(in[:13])
	if y[0] != 0x0807060504030201 || y[1] != 0x0d0c0b0a09 || y[2] != 0 {
		t.Errorf("short setBytes = %x", y)
	}

	if x.bit(0) != 1 || x.bit(1) != 0 || x.bit(8) != 0 || x.bit(9) != 1 {
		t.Error("bit mismatch")
	}
}
