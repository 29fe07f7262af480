//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ot implements a 1-of-2 oblivious transfer (Chou–Orlandi,
// "The Simplest Protocol for Oblivious Transfer", https://eprint.iacr.org/2015/267)
// over secp256k1, and a correlated-OT (COT) reduction on top of it. Both
// are specified purely in terms of message values: there is no
// transport here, callers pass wire messages between the two roles
// however they see fit.
package ot

import (
	"crypto/sha256"

	"github.com/markkurossi/secp-mta/curve"
)

// SenderSecret is the state a base-OT sender keeps between SenderInit
// and SenderKeys.
type SenderSecret struct {
	a *curve.Scalar
	A *curve.Point
}

// Zeroize drops the sender's ephemeral scalar and public point so they
// are not retained past session teardown.
func (s *SenderSecret) Zeroize() {
	s.a = nil
	s.A = nil
}

// SenderInit starts a base-OT sender session. m0 and m1 are not used:
// the plaintexts are bound only when passed to Encrypt. They are
// accepted here for symmetry with layered callers (COT,
// mta) that commit to real plaintexts after the key-agreement round.
func SenderInit(m0, m1 []byte) (msgA []byte, secret *SenderSecret, err error) {
	a, err := curve.RandomScalarNonzero()
	if err != nil {
		return nil, nil, err
	}
	A := curve.MulBase(a)
	return curve.Compress(A), &SenderSecret{a: a, A: A}, nil
}

// ReceiverChoice runs the receiver side of base OT for choice bit c. It
// returns the receiver's wire message and the single key k_c the
// receiver will use to decrypt its chosen ciphertext.
func ReceiverChoice(msgA []byte, c int) (msgB []byte, kc []byte, err error) {
	if c != 0 && c != 1 {
		return nil, nil, ErrInvalidArgument
	}
	A, err := curve.Decompress(msgA)
	if err != nil {
		return nil, nil, err
	}
	if A.IsIdentity() {
		return nil, nil, curve.ErrInvalidPoint
	}
	b, err := curve.RandomScalarNonzero()
	if err != nil {
		return nil, nil, err
	}
	B := curve.MulBase(b)
	if c == 1 {
		B = curve.Add(B, A)
	}
	bA := curve.Mul(b, A)
	return curve.Compress(B), deriveKey(bA), nil
}

// SenderKeys computes the sender's two candidate keys k0, k1 from the
// receiver's wire message. Exactly one of them equals the key the
// receiver derived in ReceiverChoice.
func SenderKeys(secret *SenderSecret, msgB []byte) (k0, k1 []byte, err error) {
	B, err := curve.Decompress(msgB)
	if err != nil {
		return nil, nil, err
	}
	K0 := curve.Mul(secret.a, B)
	BminusA := curve.Add(B, curve.Neg(secret.A))
	K1 := curve.Mul(secret.a, BminusA)
	return deriveKey(K0), deriveKey(K1), nil
}

// Encrypt masks m0 under k0 and m1 under k1 with the repeating-SHA-256
// stream cipher in xorStream. It is only safe for fixed-length
// (32-byte) plaintexts.
func Encrypt(m0, m1, k0, k1 []byte) (c0, c1 []byte, err error) {
	if len(m0) != len(m1) {
		return nil, nil, ErrInvalidArgument
	}
	return xorStream(m0, k0), xorStream(m1, k1), nil
}

// Receive decrypts the ciphertext selected by choice bit c under key
// kc.
func Receive(c int, kc, c0, c1 []byte) ([]byte, error) {
	if c != 0 && c != 1 {
		return nil, ErrInvalidArgument
	}
	chosen := c0
	if c == 1 {
		chosen = c1
	}
	return xorStream(chosen, kc), nil
}

// deriveKey hashes an uncompressed-style point encoding
// (0x04 || Xbytes || Ybytes) with SHA-256 to produce a symmetric key.
func deriveKey(p *curve.Point) []byte {
	h := sha256.New()
	h.Write([]byte{0x04})
	h.Write(p.XBytesBE())
	h.Write(p.YBytesBE())
	return h.Sum(nil)
}

// xorStream applies the single-block SHA-256 keystream over m, one
// repeating 32-byte block. Messages longer than 32 bytes reuse the
// block and are not confidential; here every plaintext is exactly 32
// bytes, so the repeating block never actually repeats.
func xorStream(m, k []byte) []byte {
	stream := sha256.Sum256(k)
	out := make([]byte, len(m))
	for i := range m {
		out[i] = m[i] ^ stream[i%len(stream)]
	}
	return out
}
