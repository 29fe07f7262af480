//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ot

import "errors"

// Errors surfaced by the base OT and COT layers. Point and scalar
// failures from the curve facade are returned unwrapped so callers can
// still match them with errors.Is against curve.ErrInvalidPoint /
// curve.ErrInvalidScalar.
var (
	// ErrInvalidArgument is returned for malformed caller input: a
	// choice bit outside {0,1}, or ciphertext/plaintext lengths that
	// don't match.
	ErrInvalidArgument = errors.New("ot: invalid argument")
)
