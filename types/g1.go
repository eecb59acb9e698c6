package types

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G1Affine is a point on the BN254 G1 curve (or the point at infinity).
type G1Affine struct {
	inner bn254.G1Affine
}

// G1Infinity is the G1 identity element.
var G1Infinity = G1Affine{}

// G1FromFlatBytes decodes the flat 64-byte (x‖y) big-endian encoding used by
// proof commitments.
func G1FromFlatBytes(b []byte) (G1Affine, error) {
	if len(b) != 64 {
		return G1Affine{}, fmt.Errorf("g1: expected 64 bytes, got %d", len(b))
	}
	var p bn254.G1Affine
	if err := p.X.SetBytesCanonical(b[:32]); err != nil {
		return G1Affine{}, fmt.Errorf("g1: invalid x coordinate: %w", err)
	}
	if err := p.Y.SetBytesCanonical(b[32:]); err != nil {
		return G1Affine{}, fmt.Errorf("g1: invalid y coordinate: %w", err)
	}
	if !(p.X.IsZero() && p.Y.IsZero()) && !p.IsOnCurve() {
		return G1Affine{}, fmt.Errorf("g1: point not on curve")
	}
	return G1Affine{inner: p}, nil
}

// G1FromLimbedBytes decodes the legacy VK encoding: each coordinate split
// into four 16-byte big-endian limbs, most-significant limb first. 128
// bytes total (4 limbs * 16 bytes * 2 coordinates).
func G1FromLimbedBytes(b []byte) (G1Affine, error) {
	if len(b) != 128 {
		return G1Affine{}, fmt.Errorf("g1: expected 128 limbed bytes, got %d", len(b))
	}
	x, err := limbsToBytes32(b[:64])
	if err != nil {
		return G1Affine{}, fmt.Errorf("g1: x limbs: %w", err)
	}
	y, err := limbsToBytes32(b[64:])
	if err != nil {
		return G1Affine{}, fmt.Errorf("g1: y limbs: %w", err)
	}
	flat := append(x[:], y[:]...)
	return G1FromFlatBytes(flat)
}

// limbsToBytes32 reconstructs a 32-byte big-endian coordinate from four
// 16-byte big-endian limbs, ordered most-significant limb first: coordinate
// = Σ limb_i · 2^(16·i) in big-endian limb order.
func limbsToBytes32(b []byte) ([32]byte, error) {
	if len(b) != 64 {
		return [32]byte{}, fmt.Errorf("expected 64 bytes (4x16), got %d", len(b))
	}
	acc := new(big.Int)
	shift := new(big.Int)
	for i := 0; i < 4; i++ {
		limb := new(big.Int).SetBytes(b[i*16 : i*16+16])
		shift.Lsh(big.NewInt(1), uint(16*(3-i)))
		limb.Mul(limb, shift)
		acc.Add(acc, limb)
	}
	var out [32]byte
	acc.FillBytes(out[:])
	return out, nil
}

// Bytes encodes the point in the flat 64-byte form.
func (p G1Affine) Bytes() [64]byte {
	var out [64]byte
	xb := p.inner.X.Bytes()
	yb := p.inner.Y.Bytes()
	copy(out[:32], xb[:])
	copy(out[32:], yb[:])
	return out
}

// IsInfinity reports whether p is the point at infinity.
func (p G1Affine) IsInfinity() bool {
	return p.inner.X.IsZero() && p.inner.Y.IsZero()
}

// Inner exposes the underlying gnark-crypto point for the syscall layer.
func (p G1Affine) Inner() bn254.G1Affine { return p.inner }

// Neg returns -p, i.e. (x, -y).
func (p G1Affine) Neg() G1Affine {
	var out bn254.G1Affine
	out.Neg(&p.inner)
	return G1Affine{inner: out}
}

// G1Generator returns the standard BN254 G1 generator (1, 2), the fixed
// base point the KZG scheme pairs the batched evaluation scalar against.
func G1Generator() G1Affine {
	var p bn254.G1Affine
	p.X.SetOne()
	p.Y.SetUint64(2)
	return G1Affine{inner: p}
}

// G1FromInner wraps an already-validated gnark-crypto point.
func G1FromInner(p bn254.G1Affine) G1Affine { return G1Affine{inner: p} }
