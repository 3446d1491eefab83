package signer

import (
	"errors"

	"qdsa.mleku.dev"
)

// QDSASigner implements the I interface over qDSA key pairs
type QDSASigner struct {
	keypair   *qdsa.KeyPair
	pub       *qdsa.PublicKey
	hasSecret bool // Whether we have the secret key (if false, can only verify)
}

// NewQDSASigner creates a new QDSASigner instance
func NewQDSASigner() *QDSASigner {
	return &QDSASigner{}
}

// Generate creates a fresh new key pair from system entropy
func (s *QDSASigner) Generate() error {
	kp, err := qdsa.KeyPairGenerate()
	if err != nil {
		return err
	}
	pub := kp.Pubkey()
	s.keypair = kp
	s.pub = &pub
	s.hasSecret = true
	return nil
}

// InitSec initialises the secret (signing) key from the raw bytes, and also derives the public key
func (s *QDSASigner) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	kp, err := qdsa.KeyPairFromSecret(sec)
	if err != nil {
		return err
	}
	pub := kp.Pubkey()
	s.keypair = kp
	s.pub = &pub
	s.hasSecret = true
	return nil
}

// InitPub initializes the public (verification) key from raw bytes, a 32 byte compressed Kummer point
func (s *QDSASigner) InitPub(pub []byte) error {
	if len(pub) != 32 {
		return errors.New("public key must be 32 bytes")
	}
	pk, err := qdsa.PublicKeyParse(pub)
	if err != nil {
		return err
	}
	s.pub = &pk
	s.keypair = nil
	s.hasSecret = false
	return nil
}

// Sec returns the secret key bytes
func (s *QDSASigner) Sec() []byte {
	if !s.hasSecret || s.keypair == nil {
		return nil
	}
	return s.keypair.Seckey()
}

// Pub returns the public key bytes
func (s *QDSASigner) Pub() []byte {
	if s.pub == nil {
		return nil
	}
	out := make([]byte, len(s.pub))
	copy(out, s.pub[:])
	return out
}

// Sign creates a signature over msg using the stored secret key. qDSA hashes
// the message itself, so msg may have any length.
func (s *QDSASigner) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.New("no secret key available for signing")
	}
	sig64 := s.keypair.Sign(msg)
	return sig64[:], nil
}

// Verify checks a message and signature match the stored public key
func (s *QDSASigner) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pub == nil {
		return false, errors.New("no public key available for verification")
	}
	parsed, err := qdsa.SignatureParse(sig)
	if err != nil {
		return false, err
	}
	return qdsa.Verify(s.pub, &parsed, msg), nil
}

// Zero wipes the secret key to prevent memory leaks
func (s *QDSASigner) Zero() {
	if s.keypair != nil {
		s.keypair.Clear()
		s.keypair = nil
	}
	s.hasSecret = false
	s.pub = nil
}

// ecdhInfo separates ECDH output from other uses of the shared point
var ecdhInfo = []byte("qdsa signer ecdh")

// ECDH returns a 32 byte shared secret derived from the Diffie-Hellman point of the signer secret and the provided pubkey
func (s *QDSASigner) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.New("no secret key available for ECDH")
	}
	pk, err := qdsa.PublicKeyParse(pub)
	if err != nil {
		return nil, err
	}
	sk, err := qdsa.PrivateKeyParse(s.keypair.Seckey())
	if err != nil {
		return nil, err
	}
	defer sk.Clear()
	secret = make([]byte, 32)
	if err = qdsa.DeriveSharedKey(secret, &pk, &sk, ecdhInfo); err != nil {
		return nil, err
	}
	return secret, nil
}

// QDSAGen implements the Gen interface for qDSA key generation
type QDSAGen struct {
	keypair *qdsa.KeyPair
}

// NewQDSAGen creates a new QDSAGen instance
func NewQDSAGen() *QDSAGen {
	return &QDSAGen{}
}

// Generate gathers entropy and returns the 32 byte compressed public key
func (g *QDSAGen) Generate() (pubBytes []byte, err error) {
	kp, err := qdsa.KeyPairGenerate()
	if err != nil {
		return nil, err
	}
	g.keypair = kp
	pub := kp.Pubkey()
	return pub[:], nil
}

// Negate is a no-op: Kummer points carry no sign, so P and -P share an
// encoding and there is nothing to flip.
func (g *QDSAGen) Negate() {}

// KeyPairBytes returns the raw bytes of the secret and public key
func (g *QDSAGen) KeyPairBytes() (secBytes, cmprPubBytes []byte) {
	if g.keypair == nil {
		return nil, nil
	}
	pub := g.keypair.Pubkey()
	return g.keypair.Seckey(), pub[:]
}
