// Package types holds the wire-level scalar and curve types shared by every
// component of the verifier: the canonical 32-byte big-endian encodings used
// by the transcript and on-chain buffers, and thin wrappers over
// gnark-crypto's BN254 implementation for the in-memory Montgomery-form
// representation.
package types

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Fr is an element of the BN254 scalar field. Internally it is stored the
// same way gnark-crypto stores it: four uint64 limbs in Montgomery form
// (value * R mod r), so repeated multiplications never pay a conversion
// cost. FrFromBytesBE, FrFromUint64 and Bytes are the only places the
// Montgomery factor is added or removed.
type Fr struct {
	inner fr.Element
}

// FrFromBytesBE decodes 32 big-endian bytes into a canonical Fr, converting
// to Montgomery form. Returns an error if the value is not strictly less
// than the field modulus (non-canonical).
func FrFromBytesBE(b []byte) (Fr, error) {
	if len(b) != 32 {
		return Fr{}, fmt.Errorf("fr: expected 32 bytes, got %d", len(b))
	}
	var e fr.Element
	if _, err := e.SetBytesCanonical(b); err != nil {
		return Fr{}, fmt.Errorf("fr: non-canonical encoding: %w", err)
	}
	return Fr{inner: e}, nil
}

// FrFromUint64 builds an Fr from a small integer, useful for constants like
// 0 and 1 used throughout sumcheck bookkeeping.
func FrFromUint64(v uint64) Fr {
	var e fr.Element
	e.SetUint64(v)
	return Fr{inner: e}
}

// Bytes encodes the element back to its 32-byte canonical big-endian form.
func (x Fr) Bytes() [32]byte {
	return x.inner.Bytes()
}

// IsZero reports whether x is the additive identity.
func (x Fr) IsZero() bool {
	return x.inner.IsZero()
}

// Add returns x+y.
func (x Fr) Add(y Fr) Fr {
	var z fr.Element
	z.Add(&x.inner, &y.inner)
	return Fr{inner: z}
}

// Sub returns x-y.
func (x Fr) Sub(y Fr) Fr {
	var z fr.Element
	z.Sub(&x.inner, &y.inner)
	return Fr{inner: z}
}

// Mul returns x*y, performed directly in Montgomery form (no per-call
// conversion).
func (x Fr) Mul(y Fr) Fr {
	var z fr.Element
	z.Mul(&x.inner, &y.inner)
	return Fr{inner: z}
}

// Neg returns -x.
func (x Fr) Neg() Fr {
	var z fr.Element
	z.Neg(&x.inner)
	return Fr{inner: z}
}

// Inverse returns 1/x. Callers verifying ≥2 inversions should prefer
// BatchInverse (primitives package) over repeated calls to this method.
func (x Fr) Inverse() (Fr, error) {
	if x.inner.IsZero() {
		return Fr{}, fmt.Errorf("fr: inverse of zero")
	}
	var z fr.Element
	z.Inverse(&x.inner)
	return Fr{inner: z}, nil
}

// Equal reports whether x and y represent the same field element.
func (x Fr) Equal(y Fr) bool {
	return x.inner.Equal(&y.inner)
}

// Element exposes the underlying gnark-crypto element for callers
// (primitives.BatchInverse) that work on gnark-crypto elements directly.
func (x Fr) Element() fr.Element { return x.inner }

// FrFromElement wraps an already-reduced gnark-crypto element.
func FrFromElement(e fr.Element) Fr { return Fr{inner: e} }
