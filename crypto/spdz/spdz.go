//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package spdz implements SPDZ-style additive secret sharing and
// Beaver-triple secure multiplication over the secp256k1 scalar
// field. Triples are produced by running two multiplicative-to-
// additive conversions (package mta) per triple, one for each
// cross term of (a0+a1)*(b0+b1).
package spdz

import (
	"context"
	"errors"
	"fmt"

	"github.com/markkurossi/secp-mta/curve"
	"github.com/markkurossi/secp-mta/mta"
)

// Role identifies which of the two SPDZ parties a Share or Triple
// belongs to.
type Role int

// SPDZ protocol roles.
const (
	Party0 Role = iota
	Party1
)

// ---------- Share & Triple ----------

// Share is one party's additive share of a secret value in the
// secp256k1 scalar field.
type Share struct {
	V *curve.Scalar
}

// NewShare wraps v as a Share.
func NewShare(v *curve.Scalar) *Share {
	return &Share{V: v}
}

// AddShare returns the share of a+b given shares of a and b held by
// the same party.
func AddShare(a, b *Share) *Share {
	return NewShare(a.V.Add(b.V))
}

// SubShare returns the share of a-b given shares of a and b held by
// the same party.
func SubShare(a, b *Share) *Share {
	return NewShare(a.V.Sub(b.V))
}

// Open combines a party-0 share and a party-1 share of the same
// secret into its plaintext value. In a networked deployment this
// round-trips the two shares over the wire; here the two parties'
// state lives in the same process, matching cmd/mta-demo's
// in-process pairing of SenderSession and ReceiverSession.
func Open(s0, s1 *Share) *curve.Scalar {
	return s0.V.Add(s1.V)
}

// Triple is one party's local half of a Beaver triple: additive
// shares A, B, C such that (A0+A1)*(B0+B1) = C0+C1.
type Triple struct {
	A *Share
	B *Share
	C *Share
}

// ---------- Beaver triple generation ----------

// GenerateBeaverTriple produces one Beaver triple, returning party
// 0's and party 1's local halves. It draws random local shares a0,
// b0 (party 0) and a1, b1 (party 1), then runs two MtA conversions —
// a0*b1 and a1*b0 — to cover both cross terms of (a0+a1)*(b0+b1):
//
//	C0 = a0*b0 + c1 + c2
//	C1 = a1*b1 + d1 + d2
//
// where (c1, d1) additively share a0*b1 and (c2, d2) additively
// share a1*b0.
func GenerateBeaverTriple(ctx context.Context, opts mta.Options) (t0, t1 *Triple, err error) {
	a0, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	b0, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	a1, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	b1, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}

	c1, d1, err := mta.Run(ctx, a0, b1, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("spdz: cross term a0*b1: %w", err)
	}
	c2, d2, err := mta.Run(ctx, a1, b0, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("spdz: cross term a1*b0: %w", err)
	}

	cShare0 := a0.Mul(b0).Add(c1).Add(c2)
	cShare1 := a1.Mul(b1).Add(d1).Add(d2)

	t0 = &Triple{A: NewShare(a0), B: NewShare(b0), C: NewShare(cShare0)}
	t1 = &Triple{A: NewShare(a1), B: NewShare(b1), C: NewShare(cShare1)}
	return t0, t1, nil
}

// GenerateBeaverTriples produces n independent triples, running the
// per-triple MtA pairs concurrently under opts.Parallelism — the
// same bounded-worker-pool idiom mta.Run uses for per-bit work,
// applied one layer up.
func GenerateBeaverTriples(ctx context.Context, n int, opts mta.Options) (t0s, t1s []*Triple, err error) {
	if n <= 0 {
		return nil, nil, errors.New("spdz: n must be positive")
	}
	t0s = make([]*Triple, n)
	t1s = make([]*Triple, n)

	sem := make(chan struct{}, workerLimit(opts.Parallelism))
	errCh := make(chan error, n)
	done := make(chan struct{})
	remaining := n

	for i := 0; i < n; i++ {
		i := i
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			t0, t1, err := GenerateBeaverTriple(ctx, opts)
			if err == nil {
				t0s[i] = t0
				t1s[i] = t1
			}
			errCh <- err
		}()
	}
	go func() {
		for j := 0; j < n; j++ {
			if e := <-errCh; e != nil && err == nil {
				err = e
			}
			remaining--
			if remaining == 0 {
				close(done)
			}
		}
	}()
	<-done
	if err != nil {
		return nil, nil, err
	}
	return t0s, t1s, nil
}

func workerLimit(parallelism int) int {
	if parallelism <= 0 {
		return 1
	}
	return parallelism
}

// ---------- Beaver multiplication ----------

// MulShare computes additive shares of a*b given each party's shares
// of a and b and a matching Beaver triple half for each party. Only
// party 1's half accumulates the dv*ev cross term, avoiding double
// counting it between the two parties.
func MulShare(a0, b0 *Share, t0 *Triple, a1, b1 *Share, t1 *Triple) (c0, c1 *Share) {
	d0 := SubShare(a0, t0.A)
	d1 := SubShare(a1, t1.A)
	e0 := SubShare(b0, t0.B)
	e1 := SubShare(b1, t1.B)

	dv := Open(d0, d1)
	ev := Open(e0, e1)

	term0 := t0.C.V.Add(dv.Mul(t0.B.V)).Add(ev.Mul(t0.A.V))
	term1 := t1.C.V.Add(dv.Mul(t1.B.V)).Add(ev.Mul(t1.A.V)).Add(dv.Mul(ev))

	return NewShare(term0), NewShare(term1)
}
