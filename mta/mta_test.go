//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mta

import (
	"context"
	"encoding/hex"
	"errors"
	"math/rand"
	"testing"

	"github.com/markkurossi/secp-mta/curve"
)

func runPair(t *testing.T, a, b *curve.Scalar) (*curve.Scalar, *curve.Scalar) {
	t.Helper()
	c, d, err := Run(context.Background(), a, b, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return c, d
}

// Scenario A.
func TestScenarioA(t *testing.T) {
	a := curve.ScalarFromInt64(3)
	b := curve.ScalarFromInt64(5)
	c, d := runPair(t, a, b)
	if !Verify(a, b, c, d) {
		t.Fatal("mta_verify(3, 5, c, d) != true")
	}
	if !c.Add(d).Equal(curve.ScalarFromInt64(15)) {
		t.Fatal("(c+d) mod n != 15")
	}
}

// Scenario B: b = n-1.
func TestScenarioB(t *testing.T) {
	a := curve.ScalarFromInt64(1)
	b := curve.ScalarFromInt64(0).Sub(curve.ScalarFromInt64(1)) // 0 - 1 mod n = n-1
	c, d := runPair(t, a, b)
	if !Verify(a, b, c, d) {
		t.Fatal("mta_verify(1, n-1, c, d) != true")
	}
	if !c.Add(d).Equal(b) {
		t.Fatal("(c+d) mod n != n-1")
	}
}

// Scenario C: a = n-1, b = 2.
func TestScenarioC(t *testing.T) {
	a := curve.ScalarFromInt64(0).Sub(curve.ScalarFromInt64(1)) // n-1
	b := curve.ScalarFromInt64(2)
	c, d := runPair(t, a, b)
	if !Verify(a, b, c, d) {
		t.Fatal("mta_verify(n-1, 2, c, d) != true")
	}
	want := curve.ScalarFromInt64(0).Sub(curve.ScalarFromInt64(2)) // n-2
	if !c.Add(d).Equal(want) {
		t.Fatal("(c+d) mod n != n-2")
	}
}

// Scenario D: both full-width values.
func TestScenarioD(t *testing.T) {
	aBytes := make([]byte, 32)
	for i := 0; i < 31; i++ {
		aBytes[i] = 0xff
	}
	aBytes[31] = 0x00
	a := curve.ScalarFromBytesBE(aBytes)

	bBytes, err := hex.DecodeString("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	b := curve.ScalarFromBytesBE(bBytes)

	c, d := runPair(t, a, b)
	if !Verify(a, b, c, d) {
		t.Fatal("mta_verify(a, b, c, d) != true for full-width scenario D")
	}
}

// Property 1: correctness over random trials.
func TestMtACorrectnessRandomTrials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping randomized trials in -short mode")
	}
	const trials = 25
	for i := 0; i < trials; i++ {
		a, err := curve.RandomScalarNonzero()
		if err != nil {
			t.Fatalf("RandomScalarNonzero: %v", err)
		}
		b, err := curve.RandomScalarNonzero()
		if err != nil {
			t.Fatalf("RandomScalarNonzero: %v", err)
		}
		c, d := runPair(t, a, b)
		if !Verify(a, b, c, d) {
			t.Fatalf("trial %d: mta_verify failed for a=%x b=%x", i, a.ToBytesBE(), b.ToBytesBE())
		}
	}
}

// Property 7: processing bits out of order yields the same final (c, d).
func TestBitOrderIndependence(t *testing.T) {
	a := curve.ScalarFromInt64(123456789)
	b := curve.ScalarFromInt64(987654321)

	run := func(order []int) (*curve.Scalar, *curve.Scalar) {
		sender := NewSender(a)
		receiver := NewReceiver(b)
		for _, i := range order {
			msgA, err := sender.BitMessage(i)
			if err != nil {
				t.Fatalf("BitMessage(%d): %v", i, err)
			}
			msgB, err := receiver.BitResponse(i, msgA)
			if err != nil {
				t.Fatalf("BitResponse(%d): %v", i, err)
			}
			if err := sender.BitKeys(i, msgB); err != nil {
				t.Fatalf("BitKeys(%d): %v", i, err)
			}
			c0, c1, err := sender.BitEncrypt(i)
			if err != nil {
				t.Fatalf("BitEncrypt(%d): %v", i, err)
			}
			if err := receiver.BitComplete(i, c0, c1); err != nil {
				t.Fatalf("BitComplete(%d): %v", i, err)
			}
		}
		c, err := sender.Finalize()
		if err != nil {
			t.Fatalf("sender.Finalize: %v", err)
		}
		d, err := receiver.Finalize()
		if err != nil {
			t.Fatalf("receiver.Finalize: %v", err)
		}
		return c, d
	}

	ascending := make([]int, NumBits)
	for i := range ascending {
		ascending[i] = i
	}
	shuffled := append([]int(nil), ascending...)
	rnd := rand.New(rand.NewSource(1))
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	c1, d1 := run(ascending)
	c2, d2 := run(shuffled)

	// Masks are party-local randomness: the sender's own c will differ
	// across runs. What must hold is the additive identity itself.
	if !c1.Add(d1).Equal(a.Mul(b)) {
		t.Fatal("ascending order violates a*b = c+d")
	}
	if !c2.Add(d2).Equal(a.Mul(b)) {
		t.Fatal("shuffled order violates a*b = c+d")
	}
}

// Property 8: rejection of invalid inputs without mutating the context.
func TestRejectsInvalidInputs(t *testing.T) {
	sender := NewSender(curve.ScalarFromInt64(7))
	if _, err := sender.BitMessage(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("BitMessage(-1): got %v, want ErrInvalidArgument", err)
	}
	if _, err := sender.BitMessage(NumBits); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("BitMessage(NumBits): got %v, want ErrInvalidArgument", err)
	}

	msgA, err := sender.BitMessage(0)
	if err != nil {
		t.Fatalf("BitMessage(0): %v", err)
	}
	// No receiver has replied yet in this test, so hand BitKeys a
	// malformed receiver message and expect an error, not a panic or
	// silent success.
	if err := sender.BitKeys(0, []byte{0x02}); err == nil {
		t.Fatal("BitKeys with malformed msgB should fail")
	}
	// Re-running BitMessage for the same bit after it already
	// succeeded must be rejected as out of phase.
	if _, err := sender.BitMessage(0); !errors.Is(err, ErrPhase) {
		t.Fatalf("repeat BitMessage(0): got %v, want ErrPhase", err)
	}

	receiver := NewReceiver(curve.ScalarFromInt64(9))
	if _, err := receiver.BitResponse(0, msgA); err != nil {
		t.Fatalf("BitResponse(0): %v", err)
	}
	if _, err := receiver.BitResponse(0, msgA); !errors.Is(err, ErrPhase) {
		t.Fatalf("repeat BitResponse(0): got %v, want ErrPhase", err)
	}
	if _, err := receiver.BitResponse(1, msgA[:1]); err == nil {
		t.Fatal("BitResponse with truncated msgA should fail")
	}
}

func TestFinalizeRequiresAllBits(t *testing.T) {
	sender := NewSender(curve.ScalarFromInt64(1))
	if _, err := sender.Finalize(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("got %v, want ErrIncomplete", err)
	}
	receiver := NewReceiver(curve.ScalarFromInt64(1))
	if _, err := receiver.Finalize(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("got %v, want ErrIncomplete", err)
	}
}
