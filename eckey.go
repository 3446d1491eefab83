package qdsa

import (
	"crypto/rand"
	"errors"
	"unsafe"
)

// PrivateKey is a clamped 32-byte secret. Its scalar is the little-endian
// value reduced modulo L.
type PrivateKey [32]byte

// PublicKey is the compressed form of [sk]Basepoint.
type PublicKey [32]byte

// SharedKey is the compressed form of the Diffie-Hellman point [sk]PK.
type SharedKey [32]byte

var (
	// ErrInvalidPublicKey is returned for encodings that do not decompress
	// to a usable point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidSecretKey is returned for secret keys whose scalar is zero.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrInvalidLength is returned when a byte slice has the wrong size.
	ErrInvalidLength = errors.New("invalid length")
)

// clamp applies the fixed secret-key convention: clear the low three bits
// of byte 0, clear bit 7 and set bit 6 of byte 31.
func clamp(sk *PrivateKey) {
	sk[0] &= 0xf8
	sk[31] &= 0x7f
	sk[31] |= 0x40
}

// scalar returns the secret scalar of sk.
func (sk *PrivateKey) scalar() (s Scalar) {
	s.setB32(sk[:])
	return s
}

// Clear wipes the secret key.
func (sk *PrivateKey) Clear() {
	memclear(unsafe.Pointer(&sk[0]), uintptr(len(sk)))
}

// GetPublicKey derives the public key of sk.
func GetPublicKey(sk *PrivateKey) (pk PublicKey) {
	s := sk.scalar()
	var p KummerPoint
	ecmultGen(&p, &s)
	(*CompressedPoint)(&pk).compress(&p)
	s.clear()
	p.clear()
	return pk
}

// CreateKeypair derives a key pair from seed: sk = clamp(SHA-256(seed)).
// Any seed length is accepted; callers supply at least 32 bytes of entropy.
func CreateKeypair(seed []byte) (pk PublicKey, sk PrivateKey) {
	h := NewSHA256()
	h.Write(seed)
	h.Finalize(sk[:])
	h.Clear()
	clamp(&sk)
	pk = GetPublicKey(&sk)
	return pk, sk
}

// SecretKeyVerify reports whether sk is usable, that is its scalar is not
// zero. Keys produced by CreateKeypair always are, except with negligible
// probability.
func SecretKeyVerify(sk *PrivateKey) bool {
	s := sk.scalar()
	defer s.clear()
	return !s.isZero()
}

// PrivateKeyParse copies a 32-byte secret key. The bytes are used as given;
// clamping only applies to keys derived by CreateKeypair.
func PrivateKeyParse(b []byte) (sk PrivateKey, err error) {
	if len(b) != len(sk) {
		return sk, ErrInvalidLength
	}
	copy(sk[:], b)
	if !SecretKeyVerify(&sk) {
		sk.Clear()
		return sk, ErrInvalidSecretKey
	}
	return sk, nil
}

// PublicKeyParse checks that b is the canonical encoding of a point usable
// as a public key and returns it.
func PublicKeyParse(b []byte) (pk PublicKey, err error) {
	if len(b) != len(pk) {
		return pk, ErrInvalidLength
	}
	copy(pk[:], b)
	var p KummerPoint
	if !pk.point(&p) {
		return PublicKey{}, ErrInvalidPublicKey
	}
	return pk, nil
}

// point decompresses pk into p and reports whether it can serve as a
// ladder base. The identity is rejected, since [h]identity is the identity
// for every h, and so are points with a zero Y, Z or T coordinate, which
// cannot be wrapped.
func (pk *PublicKey) point(p *KummerPoint) bool {
	if !(*CompressedPoint)(pk).decompress(p) {
		return false
	}
	if p.isIdentity() {
		return false
	}
	return !p.c[1].isZero() && !p.c[2].isZero() && !p.c[3].isZero()
}

// KeyPair holds a secret key together with its public key
type KeyPair struct {
	sk PrivateKey
	pk PublicKey
}

// KeyPairCreate derives a key pair from seed as CreateKeypair does.
func KeyPairCreate(seed []byte) *KeyPair {
	kp := &KeyPair{}
	kp.pk, kp.sk = CreateKeypair(seed)
	return kp
}

// KeyPairFromSecret builds a key pair from an existing secret key.
func KeyPairFromSecret(sk []byte) (*KeyPair, error) {
	s, err := PrivateKeyParse(sk)
	if err != nil {
		return nil, err
	}
	kp := &KeyPair{sk: s}
	kp.pk = GetPublicKey(&kp.sk)
	s.Clear()
	return kp, nil
}

// KeyPairGenerate creates a key pair from a fresh 64-byte random seed.
func KeyPairGenerate() (*KeyPair, error) {
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	kp := KeyPairCreate(seed[:])
	zero(seed[:])
	return kp, nil
}

// Seckey returns a copy of the secret key bytes
func (kp *KeyPair) Seckey() []byte {
	out := make([]byte, len(kp.sk))
	copy(out, kp.sk[:])
	return out
}

// Pubkey returns the public key
func (kp *KeyPair) Pubkey() PublicKey {
	return kp.pk
}

// Sign signs msg with the key pair.
func (kp *KeyPair) Sign(msg []byte) Signature {
	return Sign(&kp.pk, &kp.sk, msg)
}

// Clear wipes the secret key of the key pair
func (kp *KeyPair) Clear() {
	kp.sk.Clear()
	kp.pk = PublicKey{}
}
