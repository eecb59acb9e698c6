package types

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G2Affine is a point on the BN254 G2 curve, encoded on the wire as four
// 32-byte coordinates (x.c0, x.c1, y.c0, y.c1).
type G2Affine struct {
	inner bn254.G2Affine
}

// G2FromBytes decodes the 128-byte (x.c0‖x.c1‖y.c0‖y.c1) encoding used for
// the VK's [1]_2 and [tau]_2 points.
func G2FromBytes(b []byte) (G2Affine, error) {
	if len(b) != 128 {
		return G2Affine{}, fmt.Errorf("g2: expected 128 bytes, got %d", len(b))
	}
	var p bn254.G2Affine
	if err := p.X.A0.SetBytesCanonical(b[0:32]); err != nil {
		return G2Affine{}, fmt.Errorf("g2: x.c0: %w", err)
	}
	if err := p.X.A1.SetBytesCanonical(b[32:64]); err != nil {
		return G2Affine{}, fmt.Errorf("g2: x.c1: %w", err)
	}
	if err := p.Y.A0.SetBytesCanonical(b[64:96]); err != nil {
		return G2Affine{}, fmt.Errorf("g2: y.c0: %w", err)
	}
	if err := p.Y.A1.SetBytesCanonical(b[96:128]); err != nil {
		return G2Affine{}, fmt.Errorf("g2: y.c1: %w", err)
	}
	isZero := p.X.A0.IsZero() && p.X.A1.IsZero() && p.Y.A0.IsZero() && p.Y.A1.IsZero()
	if !isZero && !p.IsOnCurve() {
		return G2Affine{}, fmt.Errorf("g2: point not on curve")
	}
	return G2Affine{inner: p}, nil
}

// IsInfinity reports whether p is the point at infinity.
func (p G2Affine) IsInfinity() bool {
	return p.inner.X.A0.IsZero() && p.inner.X.A1.IsZero() && p.inner.Y.A0.IsZero() && p.inner.Y.A1.IsZero()
}

// Inner exposes the underlying gnark-crypto point for the syscall layer.
func (p G2Affine) Inner() bn254.G2Affine { return p.inner }

// G2FromInner wraps an already-validated gnark-crypto point.
func G2FromInner(p bn254.G2Affine) G2Affine { return G2Affine{inner: p} }
