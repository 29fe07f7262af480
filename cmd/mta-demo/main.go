//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command mta-demo runs a single two-party MtA conversion in one
// process, printing the resulting additive shares and verifying
// a*b = c+d. It is a demonstration harness, not part of the protocol
// core: a real deployment wires SenderSession/ReceiverSession's
// per-bit messages across whatever transport the two parties share.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/markkurossi/secp-mta/curve"
	"github.com/markkurossi/secp-mta/mta"
)

func main() {
	aHex := flag.String("a", "", "sender's scalar a, hex (default: random)")
	bHex := flag.String("b", "", "receiver's scalar b, hex (default: random)")
	parallel := flag.Int("parallel", 1, "number of bits to process concurrently")
	verbose := flag.Bool("v", false, "log the inputs and run parameters")
	flag.Parse()

	a, err := parseOrRandomScalar(*aHex)
	if err != nil {
		log.Fatalf("parsing -a: %v", err)
	}
	b, err := parseOrRandomScalar(*bHex)
	if err != nil {
		log.Fatalf("parsing -b: %v", err)
	}

	if *verbose {
		log.Printf("a = %x", a.ToBytesBE())
		log.Printf("b = %x", b.ToBytesBE())
		log.Printf("running %d-bit MtA with parallelism %d", mta.NumBits, *parallel)
	}

	c, d, err := mta.Run(context.Background(), a, b, mta.Options{Parallelism: *parallel})
	if err != nil {
		log.Fatalf("mta.Run: %v", err)
	}

	fmt.Printf("c (sender share) = %x\n", c.ToBytesBE())
	fmt.Printf("d (receiver share) = %x\n", d.ToBytesBE())
	if mta.Verify(a, b, c, d) {
		fmt.Println("verified: a*b = c+d (mod n)")
	} else {
		log.Fatal("verification failed: a*b != c+d (mod n)")
	}
}

func parseOrRandomScalar(hexValue string) (*curve.Scalar, error) {
	if hexValue == "" {
		return curve.RandomScalarNonzero()
	}
	v, ok := new(big.Int).SetString(hexValue, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex scalar %q", hexValue)
	}
	return curve.ScalarFromBytesBE(leftPad32(v.Bytes())), nil
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
