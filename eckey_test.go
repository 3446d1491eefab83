package qdsa

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestCreateKeypairClamping(t *testing.T) {
	seeds := testStream("clamp", 32*16)
	for i := 0; i < 16; i++ {
		_, sk := CreateKeypair(seeds[32*i : 32*(i+1)])
		if sk[0]&0x07 != 0 {
			t.Errorf("key %d: low bits of byte 0 not cleared", i)
		}
		if sk[31]&0x80 != 0 || sk[31]&0x40 == 0 {
			t.Errorf("key %d: top bits of byte 31 not clamped", i)
		}
	}
}

func TestGetPublicKey(t *testing.T) {
	pk, sk := fixtureKeypair(t)
	if got := GetPublicKey(&sk); got != pk {
		t.Errorf("GetPublicKey = %x, want %x", got, pk)
	}
}

func TestPublicKeyParse(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		err  error
	}{
		{"fixture", mustHex(t, fixturePubkey), nil},
		{"basepoint", mustHex(t, testBasepointHex), nil},
		{"short", make([]byte, 31), ErrInvalidLength},
		{"identity", make([]byte, 32), ErrInvalidPublicKey},
		{"not_canonical", bytes.Repeat([]byte{0xff}, 32), ErrInvalidPublicKey},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pk, err := PublicKeyParse(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if err == nil && !bytes.Equal(pk[:], tc.in) {
				t.Errorf("parsed key = %x, want %x", pk, tc.in)
			}
		})
	}
}

func TestPrivateKeyParse(t *testing.T) {
	if _, err := PrivateKeyParse(make([]byte, 32)); !errors.Is(err, ErrInvalidSecretKey) {
		t.Errorf("zero key: err = %v, want ErrInvalidSecretKey", err)
	}
	// L itself reduces to zero
	order := mustHex(t, "43faf37bb4f48cb800ab5e0636803d2d6bad38df6729cbfcffffffffffffff03")
	if _, err := PrivateKeyParse(order); !errors.Is(err, ErrInvalidSecretKey) {
		t.Errorf("order: err = %v, want ErrInvalidSecretKey", err)
	}
	if _, err := PrivateKeyParse(make([]byte, 33)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("long key: err = %v, want ErrInvalidLength", err)
	}
	sk, err := PrivateKeyParse(mustHex(t, fixtureSeckey))
	if err != nil {
		t.Fatalf("fixture key rejected: %v", err)
	}
	if hex.EncodeToString(sk[:]) != fixtureSeckey {
		t.Error("fixture key mismatch")
	}
}

func TestKeyPair(t *testing.T) {
	kp := KeyPairCreate(make([]byte, 64))
	pk := kp.Pubkey()
	if hex.EncodeToString(pk[:]) != fixturePubkey {
		t.Errorf("public key = %x, want %s", pk, fixturePubkey)
	}

	kp2, err := KeyPairFromSecret(kp.Seckey())
	if err != nil {
		t.Fatalf("KeyPairFromSecret failed: %v", err)
	}
	if kp2.Pubkey() != pk {
		t.Error("key pair from secret should have the same public key")
	}

	sig := kp.Sign([]byte("test"))
	if hex.EncodeToString(sig[:]) != fixtureSig {
		t.Error("key pair signature should match the fixture")
	}

	kp.Clear()
	if !bytes.Equal(kp.Seckey(), make([]byte, 32)) {
		t.Error("Clear should wipe the secret key")
	}
}

func TestKeyPairGenerate(t *testing.T) {
	kp1, err := KeyPairGenerate()
	if err != nil {
		t.Fatalf("KeyPairGenerate failed: %v", err)
	}
	kp2, err := KeyPairGenerate()
	if err != nil {
		t.Fatalf("KeyPairGenerate failed: %v", err)
	}
	if kp1.Pubkey() == kp2.Pubkey() {
		t.Error("generated key pairs should differ")
	}
	pk := kp1.Pubkey()
	if _, err := PublicKeyParse(pk[:]); err != nil {
		t.Errorf("generated public key rejected: %v", err)
	}
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	if !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Errorf("Zero left %x", b)
	}
	Zero(nil)
}
