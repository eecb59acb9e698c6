package kernel

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// Verify runs the full, non-phased verification kernel end to end: challenge
// derivation, sumcheck, relation combination, Shplemini batching, and the
// final pairing check. phases.Step calls the same sub-steps incrementally;
// Verify exists for tests and for any caller that doesn't need to spread
// the work across BPF-budgeted phases.
func Verify(vk *wire.VerificationKey, pi *wire.PublicInputs, pf *wire.Proof) (bool, error) {
	if err := pi.Validate(vk); err != nil {
		return false, fmt.Errorf("public inputs: %w", err)
	}

	tr := transcript.New()
	challenges, err := DeriveChallenges(tr, vk, pi, pf)
	if err != nil {
		return false, err
	}

	sc, err := VerifySumcheck(tr, pf, vk.LogN())
	if err != nil {
		return false, err
	}

	relInputs, err := RelationInputsFromProof(pf, challenges)
	if err != nil {
		return false, err
	}
	if err := VerifyRelations(sc, relInputs, challenges.Alpha, challenges.GateChallenges); err != nil {
		return false, err
	}

	claim, err := VerifyShplemini(tr, vk, pf)
	if err != nil {
		return false, err
	}

	return VerifyPairing(vk, pf, claim)
}
