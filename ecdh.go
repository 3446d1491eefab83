package qdsa

import (
	"bytes"
	"errors"
	"io"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"
)

// GenerateSecret computes the Diffie-Hellman point [sk]PK in compressed
// form. Both parties obtain the same value:
// GenerateSecret(pkA, skB) == GenerateSecret(pkB, skA).
func GenerateSecret(pk *PublicKey, sk *PrivateKey) (shared SharedKey, err error) {
	var q KummerPoint
	if !pk.point(&q) {
		return shared, ErrInvalidPublicKey
	}

	s := sk.scalar()
	var res KummerPoint
	ecmult(&res, &q, &s)
	(*CompressedPoint)(&shared).compress(&res)

	s.clear()
	res.clear()
	return shared, nil
}

// DeriveSharedKey fills out with HKDF-SHA-256 key material derived from the
// shared point of pk and sk. Both public keys, sorted, form the salt so the
// two parties derive the same key; info separates applications.
func DeriveSharedKey(out []byte, pk *PublicKey, sk *PrivateKey, info []byte) error {
	if len(out) == 0 {
		return errors.New("output length must be greater than 0")
	}
	shared, err := GenerateSecret(pk, sk)
	if err != nil {
		return err
	}
	own := GetPublicKey(sk)

	salt := make([]byte, 0, 64)
	if bytes.Compare(own[:], pk[:]) <= 0 {
		salt = append(append(salt, own[:]...), pk[:]...)
	} else {
		salt = append(append(salt, pk[:]...), own[:]...)
	}

	kdf := hkdf.New(sha256simd.New, shared[:], salt, info)
	_, err = io.ReadFull(kdf, out)
	zero(shared[:])
	return err
}
