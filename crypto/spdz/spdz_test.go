//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package spdz

import (
	"context"
	"testing"

	"github.com/markkurossi/secp-mta/curve"
	"github.com/markkurossi/secp-mta/mta"
)

func TestGenerateBeaverTripleCorrectness(t *testing.T) {
	t0, t1, err := GenerateBeaverTriple(context.Background(), mta.Options{})
	if err != nil {
		t.Fatalf("GenerateBeaverTriple: %v", err)
	}
	a := Open(t0.A, t1.A)
	b := Open(t0.B, t1.B)
	c := Open(t0.C, t1.C)
	if !a.Mul(b).Equal(c) {
		t.Fatalf("a*b != c for generated triple")
	}
}

func TestGenerateBeaverTriplesBatch(t *testing.T) {
	const n = 5
	t0s, t1s, err := GenerateBeaverTriples(context.Background(), n, mta.Options{Parallelism: 4})
	if err != nil {
		t.Fatalf("GenerateBeaverTriples: %v", err)
	}
	if len(t0s) != n || len(t1s) != n {
		t.Fatalf("got %d/%d triples, want %d", len(t0s), len(t1s), n)
	}
	for i := 0; i < n; i++ {
		a := Open(t0s[i].A, t1s[i].A)
		b := Open(t0s[i].B, t1s[i].B)
		c := Open(t0s[i].C, t1s[i].C)
		if !a.Mul(b).Equal(c) {
			t.Fatalf("triple %d: a*b != c", i)
		}
	}
}

func TestGenerateBeaverTriplesRejectsNonPositiveN(t *testing.T) {
	if _, _, err := GenerateBeaverTriples(context.Background(), 0, mta.Options{}); err == nil {
		t.Fatal("n=0 should fail")
	}
}

func TestMulShareSecureMultiplication(t *testing.T) {
	x, err := curve.RandomScalarNonzero()
	if err != nil {
		t.Fatalf("RandomScalarNonzero: %v", err)
	}
	y, err := curve.RandomScalarNonzero()
	if err != nil {
		t.Fatalf("RandomScalarNonzero: %v", err)
	}

	// Split x and y into additive shares across the two parties.
	x0, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	x1 := x.Sub(x0)
	y0, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	y1 := y.Sub(y0)

	t0, t1, err := GenerateBeaverTriple(context.Background(), mta.Options{})
	if err != nil {
		t.Fatalf("GenerateBeaverTriple: %v", err)
	}

	c0, c1 := MulShare(NewShare(x0), NewShare(y0), t0, NewShare(x1), NewShare(y1), t1)
	got := Open(c0, c1)
	want := x.Mul(y)
	if !got.Equal(want) {
		t.Fatalf("MulShare: got %x, want %x", got.ToBytesBE(), want.ToBytesBE())
	}
}

func TestAddSubShareRoundTrip(t *testing.T) {
	a := curve.ScalarFromInt64(11)
	b := curve.ScalarFromInt64(31)
	sum := AddShare(NewShare(a), NewShare(b))
	if !sum.V.Equal(curve.ScalarFromInt64(42)) {
		t.Fatal("AddShare: 11+31 != 42")
	}
	diff := SubShare(sum, NewShare(b))
	if !diff.V.Equal(a) {
		t.Fatal("SubShare did not invert AddShare")
	}
}
