//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ot

// CorrelatedSenderInit starts a COT sender session. Unlike base OT's
// SenderInit, it takes no plaintexts: the correlation Δ (and the base
// message m0) are only needed once the receiver's reply arrives, at
// CorrelatedTransfer, so there is nothing for an init-time delta
// parameter to do.
func CorrelatedSenderInit() (msgA []byte, secret *SenderSecret, err error) {
	return SenderInit(nil, nil)
}

// CorrelatedReceiverChoice is identical to ReceiverChoice: the
// correlation is a sender-side-only commitment, so the receiver's half
// of COT is exactly base OT's.
func CorrelatedReceiverChoice(msgA []byte, c int) (msgB []byte, kc []byte, err error) {
	return ReceiverChoice(msgA, c)
}

// CorrelatedTransfer derives m1 = m0 XOR delta, computes the sender's
// two OT keys from the receiver's message, and returns the encrypted
// pair (c0, c1).
func CorrelatedTransfer(delta []byte, secret *SenderSecret, msgB []byte, m0 []byte) (
	c0, c1 []byte, err error) {
	if len(delta) != len(m0) {
		return nil, nil, ErrInvalidArgument
	}
	m1 := make([]byte, len(m0))
	for i := range m0 {
		m1[i] = m0[i] ^ delta[i]
	}
	k0, k1, err := SenderKeys(secret, msgB)
	if err != nil {
		return nil, nil, err
	}
	return Encrypt(m0, m1, k0, k1)
}

// CorrelatedReceive is identical to Receive: the receiver recovers
// m0 when c=0 and m0^delta when c=1, without ever seeing delta itself.
func CorrelatedReceive(c int, kc, c0, c1 []byte) ([]byte, error) {
	return Receive(c, kc, c0, c1)
}
