package qdsa

import (
	"errors"
)

// Signature is the compressed nonce point R followed by the 32-byte
// little-endian scalar s.
type Signature [64]byte

// ErrInvalidSignature is returned when a signature has the wrong size.
var ErrInvalidSignature = errors.New("invalid signature")

// SignatureParse copies a 64-byte signature. Its content is only checked by
// Verify.
func SignatureParse(b []byte) (sig Signature, err error) {
	if len(b) != len(sig) {
		return sig, ErrInvalidSignature
	}
	copy(sig[:], b)
	return sig, nil
}

// R returns the encoded nonce point of the signature.
func (sig *Signature) R() (r CompressedPoint) {
	copy(r[:], sig[:32])
	return r
}

// Sign produces a deterministic signature on msg. pk must be the public
// key of sk.
//
// The nonce is r = SHA-512(SHA-512(sk)[32:64] || msg) mod L, so no
// randomness is needed at signing time. The challenge h is taken with even
// parity, which fixes the sign ambiguity of the Kummer surface.
func Sign(pk *PublicKey, sk *PrivateKey, msg []byte) (sig Signature) {
	var prefix [64]byte
	h := NewSHA512()
	h.Write(sk[:])
	h.Finalize(prefix[:])
	h.Clear()

	var r Scalar
	hashToScalar(&r, prefix[32:], msg)
	zero(prefix[:])

	var rp KummerPoint
	ecmultGen(&rp, &r)
	var rc CompressedPoint
	rc.compress(&rp)
	rp.clear()

	var c, neg Scalar
	hashToScalar(&c, rc[:], pk[:], msg)
	neg.negate(&c)
	c.cmov(&neg, c.isOdd())

	d := sk.scalar()
	var s Scalar
	s.combine(&r, &c, &d)
	d.clear()
	r.clear()

	copy(sig[:32], rc[:])
	s.getB32(sig[32:])
	return sig
}

// Verify reports whether sig is a valid signature on msg under pk.
//
// The challenge is recomputed from the R bytes exactly as transmitted.
// Any encoding that fails to decompress makes the signature invalid, and so
// does an s that is not below L, so every signature has one byte form.
func Verify(pk *PublicKey, sig *Signature, msg []byte) bool {
	var q KummerPoint
	if !pk.point(&q) {
		return false
	}
	rc := sig.R()
	var rp KummerPoint
	if !rc.decompress(&rp) {
		return false
	}

	var s, h Scalar
	if !s.setB32Canonical(sig[32:]) {
		return false
	}
	hashToScalar(&h, rc[:], pk[:], msg)

	var sP, hQ KummerPoint
	ecmultGen(&sP, &s)
	ecmult(&hQ, &q, &h)

	return check(&sP, &hQ, &rp)
}
