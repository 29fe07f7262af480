//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package curve is a narrow facade over the secp256k1 scalar field and
// group, exposing exactly the operations the OT and MtA layers need:
// scalar sampling and arithmetic mod the group order, and point
// arithmetic plus compressed (33-byte) encoding. It does not attempt to
// be a general-purpose curve library.
package curve

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Errors surfaced by the curve facade.
var (
	// ErrInvalidPoint is returned when a point encoding fails to
	// decompress, is off-curve, or is the group identity where a
	// non-identity point is required.
	ErrInvalidPoint = errors.New("curve: invalid point")
	// ErrInvalidScalar names the invalid-scalar error kind. No function
	// in this package returns it: ScalarFromBytesBE reduces every input
	// mod N.
	ErrInvalidScalar = errors.New("curve: invalid scalar")
	// ErrEntropyFailure is returned when the configured random source
	// fails to produce bytes.
	ErrEntropyFailure = errors.New("curve: entropy failure")
)

var (
	koblitz = secp256k1.S256()
	params  = koblitz.Params()
	// N is the order of the secp256k1 subgroup: the modulus for every
	// Scalar.
	N = params.N
)

// maxRejection bounds the rejection-sampling loop in RandomScalarNonzero
// and RandomScalar so a persistently broken random source surfaces as
// ErrEntropyFailure instead of hanging forever.
const maxRejection = 256

// unbiasedBound is floor(2^256/N)*N: draws at or above this value are
// rejected by RandomScalar so the reduction mod N is exactly uniform
// instead of skewed toward the low end of [0, N) by a single reduction.
var unbiasedBound = func() *big.Int {
	twoTo256 := new(big.Int).Lsh(big.NewInt(1), 256)
	q := new(big.Int).Div(twoTo256, N)
	return new(big.Int).Mul(q, N)
}()

// Scalar is an element of Z_n, always held reduced mod N.
type Scalar struct {
	v *big.Int
}

// ScalarFromBytesBE decodes a 32-byte big-endian value and reduces it
// mod N.
func ScalarFromBytesBE(b []byte) *Scalar {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, N)
	return &Scalar{v: v}
}

// ScalarFromInt64 builds a Scalar from a small signed integer, for
// tests and literal scenarios.
func ScalarFromInt64(x int64) *Scalar {
	v := big.NewInt(x)
	v.Mod(v, N)
	if v.Sign() < 0 {
		v.Add(v, N)
	}
	return &Scalar{v: v}
}

// ToBytesBE encodes the scalar as 32-byte big-endian.
func (s *Scalar) ToBytesBE() []byte {
	out := make([]byte, 32)
	b := s.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// Add returns s + t mod N.
func (s *Scalar) Add(t *Scalar) *Scalar {
	z := new(big.Int).Add(s.v, t.v)
	z.Mod(z, N)
	return &Scalar{v: z}
}

// Sub returns s - t mod N.
func (s *Scalar) Sub(t *Scalar) *Scalar {
	z := new(big.Int).Sub(s.v, t.v)
	z.Mod(z, N)
	return &Scalar{v: z}
}

// Mul returns s * t mod N.
func (s *Scalar) Mul(t *Scalar) *Scalar {
	z := new(big.Int).Mul(s.v, t.v)
	z.Mod(z, N)
	return &Scalar{v: z}
}

// Neg returns -s mod N.
func (s *Scalar) Neg() *Scalar {
	z := new(big.Int).Neg(s.v)
	z.Mod(z, N)
	return &Scalar{v: z}
}

// IsZero reports whether the scalar is the additive identity.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Bit returns bit i of the scalar's value, 0 <= i < 256.
func (s *Scalar) Bit(i int) uint {
	return uint(s.v.Bit(i))
}

// Equal reports whether two scalars hold the same value.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.v.Cmp(t.v) == 0
}

// Pow2 returns the scalar 2^i mod N.
func Pow2(i int) *Scalar {
	z := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(i)), N)
	return &Scalar{v: z}
}

func randomScalarFrom(r io.Reader, rejectBiased bool) (*Scalar, error) {
	buf := make([]byte, 32)
	for attempt := 0; attempt < maxRejection; attempt++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrEntropyFailure
		}
		v := new(big.Int).SetBytes(buf)
		if rejectBiased && v.Cmp(unbiasedBound) >= 0 {
			continue
		}
		v.Mod(v, N)
		return &Scalar{v: v}, nil
	}
	return nil, ErrEntropyFailure
}

// RandomScalar draws a uniform scalar in [0, N). It rejects draws in the
// biased tail above floor(2^256/N)*N so the result is exactly uniform.
func RandomScalar() (*Scalar, error) {
	return randomScalarFrom(rand.Reader, true)
}

// RandomScalarUnsafe draws a scalar via a single reduction of a 32-byte
// uniform draw. This carries the small modular bias a one-shot reduction
// of a 256-bit draw introduces against the non-power-of-two N; prefer
// RandomScalar unless a caller specifically needs the cheaper draw.
func RandomScalarUnsafe() (*Scalar, error) {
	return randomScalarFrom(rand.Reader, false)
}

// RandomScalarNonzero draws a scalar in [1, N-1] by rejection sampling
// on RandomScalarUnsafe draws, matching scalar_random_nonzero; it
// carries the same small single-reduction bias as RandomScalarUnsafe.
func RandomScalarNonzero() (*Scalar, error) {
	for attempt := 0; attempt < maxRejection; attempt++ {
		s, err := RandomScalarUnsafe()
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, ErrEntropyFailure
}

// Point is an affine point on secp256k1, or the group identity.
type Point struct {
	x, y     *big.Int
	identity bool
}

// Generator returns the secp256k1 base point G.
func Generator() *Point {
	return &Point{x: new(big.Int).Set(params.Gx), y: new(big.Int).Set(params.Gy)}
}

// Identity returns the group identity ("point at infinity").
func Identity() *Point {
	return &Point{identity: true}
}

// IsIdentity reports whether p is the group identity.
func (p *Point) IsIdentity() bool {
	return p.identity
}

// Add returns p + q.
func Add(p, q *Point) *Point {
	if p.identity {
		return q
	}
	if q.identity {
		return p
	}
	x, y := koblitz.Add(p.x, p.y, q.x, q.y)
	return pointFromCoords(x, y)
}

// Neg returns -p (the reflection of p across the x-axis).
func Neg(p *Point) *Point {
	if p.identity {
		return p
	}
	y := new(big.Int).Sub(params.P, p.y)
	y.Mod(y, params.P)
	return &Point{x: new(big.Int).Set(p.x), y: y}
}

// Double returns p + p.
func Double(p *Point) *Point {
	if p.identity {
		return p
	}
	x, y := koblitz.Double(p.x, p.y)
	return pointFromCoords(x, y)
}

// MulBase returns k*G using the curve library's fixed-base
// multiplication.
func MulBase(k *Scalar) *Point {
	x, y := koblitz.ScalarBaseMult(k.v.Bytes())
	return pointFromCoords(x, y)
}

// Mul returns k*P.
func Mul(k *Scalar, p *Point) *Point {
	if p.identity || k.IsZero() {
		return Identity()
	}
	x, y := koblitz.ScalarMult(p.x, p.y, k.v.Bytes())
	return pointFromCoords(x, y)
}

func pointFromCoords(x, y *big.Int) *Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return Identity()
	}
	return &Point{x: x, y: y}
}

// Compress encodes p as a 33-byte SEC1 compressed point, via the
// underlying library's own PublicKey serializer.
func Compress(p *Point) []byte {
	if p.identity {
		return make([]byte, 33) // all-zero encoding is rejected by Decompress
	}
	var xf, yf secp256k1.FieldVal
	xf.SetByteSlice(fieldBytes(p.x))
	yf.SetByteSlice(fieldBytes(p.y))
	return secp256k1.NewPublicKey(&xf, &yf).SerializeCompressed()
}

// Decompress parses a 33-byte compressed point via the underlying
// library's ParsePubKey, which rejects malformed encodings and
// off-curve points. Inputs of any other length are rejected.
func Decompress(b []byte) (*Point, error) {
	if len(b) != 33 {
		return nil, ErrInvalidPoint
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	var jac secp256k1.JacobianPoint
	pub.AsJacobian(&jac)
	jac.ToAffine()
	jac.X.Normalize()
	jac.Y.Normalize()
	return &Point{
		x: new(big.Int).SetBytes(jac.X.Bytes()[:]),
		y: new(big.Int).SetBytes(jac.Y.Bytes()[:]),
	}, nil
}

// XBytesBE and YBytesBE return the 32-byte big-endian affine
// coordinates, as used by the OT key-derivation hash input
// 0x04 || Xbytes || Ybytes.
func (p *Point) XBytesBE() []byte {
	return fieldBytes(p.x)
}

// YBytesBE returns the 32-byte big-endian y coordinate.
func (p *Point) YBytesBE() []byte {
	return fieldBytes(p.y)
}

func fieldBytes(v *big.Int) []byte {
	out := make([]byte, 32)
	if v == nil {
		return out
	}
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out
}
