//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package mta implements the two-party Multiplicative-to-Additive (MtA)
// share conversion over the secp256k1 scalar field: given a held by a
// sender and b held by a receiver, it produces c (sender) and d
// (receiver) with a*b ≡ c+d (mod n). It is built from NumBits parallel
// correlated-OT instances, one per bit of the receiver's share.
package mta

import (
	"github.com/markkurossi/secp-mta/curve"
	"github.com/markkurossi/secp-mta/ot"
)

// NumBits is the fixed number of per-bit OT instances the protocol
// runs: one per bit of the secp256k1 scalar field.
const NumBits = 256

type senderBitPhase int

const (
	senderBitPending senderBitPhase = iota
	senderBitMessageSent
	senderBitKeysDerived
	senderBitEncrypted
)

type senderBit struct {
	phase  senderBitPhase
	u      *curve.Scalar
	m0, m1 []byte
	secret *ot.SenderSecret
	k0, k1 []byte
}

// SenderSession holds one party's state across a single MtA session
// where it plays the multiplicative share a.
type SenderSession struct {
	share *curve.Scalar
	bits  [NumBits]senderBit
}

// NewSender starts a sender session for input scalar a.
func NewSender(a *curve.Scalar) *SenderSession {
	return &SenderSession{share: a}
}

// BitMessage runs sender_bit_message(i): it draws the per-bit mask U_i,
// derives the bit-weighted plaintexts, and returns the base-OT sender
// wire message for bit i.
func (s *SenderSession) BitMessage(i int) ([]byte, error) {
	if i < 0 || i >= NumBits {
		return nil, ErrInvalidArgument
	}
	b := &s.bits[i]
	if b.phase != senderBitPending {
		return nil, ErrPhase
	}

	u, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	weighted := s.share.Mul(curve.Pow2(i))
	m0 := u.ToBytesBE()
	m1 := u.Add(weighted).ToBytesBE()

	msgA, secret, err := ot.SenderInit(m0, m1)
	if err != nil {
		return nil, err
	}

	b.u = u
	b.m0, b.m1 = m0, m1
	b.secret = secret
	b.phase = senderBitMessageSent
	return msgA, nil
}

// BitKeys runs sender_bit_keys(i, msgB): it derives the sender's two
// candidate OT keys from the receiver's reply for bit i.
func (s *SenderSession) BitKeys(i int, msgB []byte) error {
	if i < 0 || i >= NumBits {
		return ErrInvalidArgument
	}
	b := &s.bits[i]
	if b.phase != senderBitMessageSent {
		return ErrPhase
	}
	k0, k1, err := ot.SenderKeys(b.secret, msgB)
	if err != nil {
		return err
	}
	b.k0, b.k1 = k0, k1
	b.phase = senderBitKeysDerived
	return nil
}

// BitEncrypt runs sender_bit_encrypt(i): it encrypts the bit's two
// plaintexts under the derived keys.
func (s *SenderSession) BitEncrypt(i int) (c0, c1 []byte, err error) {
	if i < 0 || i >= NumBits {
		return nil, nil, ErrInvalidArgument
	}
	b := &s.bits[i]
	if b.phase != senderBitKeysDerived {
		return nil, nil, ErrPhase
	}
	c0, c1, err = ot.Encrypt(b.m0, b.m1, b.k0, b.k1)
	if err != nil {
		return nil, nil, err
	}
	b.secret.Zeroize()
	b.phase = senderBitEncrypted
	return c0, c1, nil
}

// Finalize runs sender_finalize: it requires every bit to have reached
// senderBitEncrypted, sums the masks U_i, and returns c = -ΣU_i mod n.
// The masks are zeroized once consumed.
func (s *SenderSession) Finalize() (*curve.Scalar, error) {
	for i := range s.bits {
		if s.bits[i].phase != senderBitEncrypted {
			return nil, ErrIncomplete
		}
	}
	sum := curve.ScalarFromInt64(0)
	for i := range s.bits {
		b := &s.bits[i]
		sum = sum.Add(b.u)
		b.u = nil
	}
	return sum.Neg(), nil
}

type receiverBitPhase int

const (
	receiverBitPending receiverBitPhase = iota
	receiverBitResponded
	receiverBitComplete
)

type receiverBit struct {
	phase  receiverBitPhase
	choice int
	kc     []byte
}

// ReceiverSession holds one party's state across a single MtA session
// where it plays the multiplicative share b.
type ReceiverSession struct {
	share *curve.Scalar
	bits  [NumBits]receiverBit
	acc   *curve.Scalar
}

// NewReceiver starts a receiver session for input scalar b.
func NewReceiver(b *curve.Scalar) *ReceiverSession {
	return &ReceiverSession{share: b, acc: curve.ScalarFromInt64(0)}
}

// BitResponse runs receiver_bit_response(i, msgA): the choice bit is
// bit i of the receiver's own share, and the reply is the base-OT
// receiver wire message.
func (r *ReceiverSession) BitResponse(i int, msgA []byte) ([]byte, error) {
	if i < 0 || i >= NumBits {
		return nil, ErrInvalidArgument
	}
	b := &r.bits[i]
	if b.phase != receiverBitPending {
		return nil, ErrPhase
	}
	choice := int(r.share.Bit(i))
	msgB, kc, err := ot.ReceiverChoice(msgA, choice)
	if err != nil {
		return nil, err
	}
	b.choice = choice
	b.kc = kc
	b.phase = receiverBitResponded
	return msgB, nil
}

// BitComplete runs receiver_bit_complete(i, c0, c1): it decrypts the
// chosen ciphertext and folds it into the running additive accumulator.
func (r *ReceiverSession) BitComplete(i int, c0, c1 []byte) error {
	if i < 0 || i >= NumBits {
		return ErrInvalidArgument
	}
	b := &r.bits[i]
	if b.phase != receiverBitResponded {
		return ErrPhase
	}
	m, err := ot.Receive(b.choice, b.kc, c0, c1)
	if err != nil {
		return err
	}
	r.acc = r.acc.Add(curve.ScalarFromBytesBE(m))
	b.kc = nil
	b.phase = receiverBitComplete
	return nil
}

// Finalize runs receiver_finalize: it requires every bit to have
// reached receiverBitComplete and returns the accumulator d.
func (r *ReceiverSession) Finalize() (*curve.Scalar, error) {
	for i := range r.bits {
		if r.bits[i].phase != receiverBitComplete {
			return nil, ErrIncomplete
		}
	}
	return r.acc, nil
}

// Verify reports whether a*b ≡ c+d (mod n), for testing and
// demonstration.
func Verify(a, b, c, d *curve.Scalar) bool {
	return a.Mul(b).Equal(c.Add(d))
}
