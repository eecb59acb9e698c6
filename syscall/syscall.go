// Package syscall models the handful of host primitives the BPF VM exposes
// to an on-chain BN254 verifier: G1 addition, G1 scalar multiplication, and
// a multi-pair pairing check go through a cross-VM call boundary on the
// real host and are modeled here as the single choke point every curve
// operation in the rest of the module must pass through. Scalar-field
// add/mul/sub/neg are, on the real host, ordinary compute (see
// SPEC_FULL.md's REDESIGN FLAGS) and are implemented directly against
// gnark-crypto without an extra indirection layer.
//
// Every function here operates on gnark-crypto's BN254 types directly; the
// typed, Montgomery-aware API the rest of the verifier uses lives in
// primitives.
package syscall

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrArithmetic is returned by PairingCheck for mismatched or empty input
// slices, or when gnark-crypto's pairing check reports an error. G1Add and
// G1ScalarMul do not check that their points are on the curve; curve points
// are checked when package types decodes them.
var ErrArithmetic = fmt.Errorf("arithmetic error")

// G1Add computes a+b on the BN254 G1 curve.
func G1Add(a, b bn254.G1Affine) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	out.Add(&a, &b)
	return out, nil
}

// G1ScalarMul computes s*P on the BN254 G1 curve. s is passed as the raw
// field element bytes (big-endian) the way the real syscall takes a 32-byte
// scalar buffer, and is converted here to the big.Int form gnark-crypto
// expects.
func G1ScalarMul(p bn254.G1Affine, scalarBE [32]byte) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	s := new(big.Int).SetBytes(scalarBE[:])
	out.ScalarMultiplication(&p, s)
	return out, nil
}

// PairingCheck returns true iff ∏ e(g1s[i], g2s[i]) = 1 in GT. len(g1s) must
// equal len(g2s); a mismatch is an ArithmeticError, not a false verdict.
func PairingCheck(g1s []bn254.G1Affine, g2s []bn254.G2Affine) (bool, error) {
	if len(g1s) != len(g2s) {
		return false, fmt.Errorf("%w: mismatched pairing slice lengths %d != %d", ErrArithmetic, len(g1s), len(g2s))
	}
	if len(g1s) == 0 {
		return false, fmt.Errorf("%w: empty pairing check", ErrArithmetic)
	}
	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrArithmetic, err)
	}
	return ok, nil
}

// Keccak256 hashes the concatenation of every chunk with the host's
// Keccak256 primitive. It is exposed here (rather than called directly from
// transcript) so the whole module has one place that depends on the actual
// hash implementation.
func Keccak256(chunks ...[]byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(chunks...))
	return out
}
