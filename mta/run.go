//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mta

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/secp-mta/curve"
)

// Options configures Run.
type Options struct {
	// Parallelism bounds how many of the NumBits per-party bit
	// operations run concurrently. 0 or 1 means sequential (bits
	// processed from i=0 upward); values above 1 fan the independent
	// per-bit work out over a worker pool. Each bit has its own session
	// slot; the one piece of state shared across bits, the receiver's
	// accumulator, is updated under a lock.
	Parallelism int
}

// Run wires a sender and a receiver session together in-process and
// drives all NumBits bits to completion, returning the additive shares
// (c, d). It exists for testing and demonstration: a real deployment
// has no in-process access to both sides, so it would instead pass
// BitMessage/BitResponse/BitKeys/BitEncrypt/BitComplete's wire values
// across whatever channel the two parties share.
func Run(ctx context.Context, a, b *curve.Scalar, opts Options) (c, d *curve.Scalar, err error) {
	sender := NewSender(a)
	receiver := NewReceiver(b)

	workers := opts.Parallelism
	if workers <= 0 {
		workers = 1
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var accMu sync.Mutex

	for i := 0; i < NumBits; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			msgA, err := sender.BitMessage(i)
			if err != nil {
				return err
			}
			msgB, err := receiver.BitResponse(i, msgA)
			if err != nil {
				return err
			}
			if err := sender.BitKeys(i, msgB); err != nil {
				return err
			}
			c0, c1, err := sender.BitEncrypt(i)
			if err != nil {
				return err
			}
			accMu.Lock()
			defer accMu.Unlock()
			return receiver.BitComplete(i, c0, c1)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	c, err = sender.Finalize()
	if err != nil {
		return nil, nil, err
	}
	d, err = receiver.Finalize()
	if err != nil {
		return nil, nil, err
	}
	return c, d, nil
}
