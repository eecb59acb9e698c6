package kernel

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/primitives"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// VerifyPairing performs the final KZG check (k4): that the batched opening
// claim from VerifyShplemini is consistent with the proof's final opening
// commitment W under the VK's [1]_2 and [tau]_2 points —
//
//	e(C - v*[1]_1 + z*W, [1]_2) == e(W, [tau]_2)
//
// which holds iff C - v*[1]_1 == (tau - z)*W, i.e. W is truly the KZG
// quotient opening the batched polynomial to v at z.
func VerifyPairing(vk *wire.VerificationKey, pf *wire.Proof, claim *OpeningClaim) (bool, error) {
	w, err := pf.KZGW()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	g2One, err := vk.G2One()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	g2Tau, err := vk.G2Tau()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}

	vG1, err := primitives.G1ScalarMul(types.G1Generator(), claim.Evaluation)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	zW, err := primitives.G1ScalarMul(w, claim.Z)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}

	lhs, err := primitives.G1Add(claim.Commitment, zW)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	lhs, err = primitives.G1Add(lhs, vG1.Neg())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}

	ok, err := primitives.PairingCheck([]primitives.PairingPair{
		{G1: lhs, G2: g2One},
		{G1: w.Neg(), G2: g2Tau},
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	return ok, nil
}
