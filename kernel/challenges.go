// Package kernel implements component 4.D: the verification kernel itself —
// challenge generation, sumcheck verification, Shplemini batched opening,
// and the final pairing check. Every function here is pure: it reads a
// wire.VerificationKey, wire.Proof and wire.PublicInputs and returns a
// verdict or an error, with no knowledge of phases, accounts, or the ledger.
package kernel

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// ErrChallengeDerivation is returned when the VK or proof buffer cannot be
// absorbed into the transcript (a malformed commitment, typically).
var ErrChallengeDerivation = fmt.Errorf("challenge derivation error")

// Challenges holds every Fiat-Shamir challenge (k1) derives, in the order
// the rest of the kernel consumes them.
type Challenges struct {
	Eta1, Eta2, Eta3 types.Fr
	Beta, Gamma      types.Fr
	Alpha            [config.NumAlphaChallenges]types.Fr
	GateChallenges   [config.ConstProofSizeLogN]types.Fr
}

// DeriveChallenges replays the prover's transcript: absorb circuit
// parameters, public inputs and witness commitments, squeezing each
// challenge at the point the proof system's Fiat-Shamir schedule calls for
// it. The resulting Transcript must be reused by the caller for the
// sumcheck-round and Shplemini challenges that follow (k2, k3), since those
// continue absorbing into the same running state.
func DeriveChallenges(tr *transcript.Transcript, vk *wire.VerificationKey, pi *wire.PublicInputs, pf *wire.Proof) (*Challenges, error) {
	var c Challenges

	tr.AbsorbBytes("log_n", u32Bytes(vk.LogN()))
	tr.AbsorbBytes("num_public_inputs", u32Bytes(vk.NumPublicInputs()))
	tr.AbsorbBytes("pub_inputs_offset", u32Bytes(vk.PublicInputsOffset()))

	commitments, err := vk.AllCommitments()
	if err != nil {
		return nil, fmt.Errorf("%w: vk commitments: %v", ErrChallengeDerivation, err)
	}
	for i, name := range wire.VkCommitmentNames {
		tr.AbsorbG1(name, commitments[i])
	}
	// [1]_2 and [tau]_2 are fixed SRS points, not circuit-specific data, so
	// they are not absorbed into the transcript — only the VK's
	// circuit-specific commitments are.

	inputs, err := pi.All()
	if err != nil {
		return nil, fmt.Errorf("%w: public inputs: %v", ErrChallengeDerivation, err)
	}
	tr.AbsorbFrSlice("public_inputs", inputs)

	for _, name := range []string{"WL", "WR", "WO"} {
		p, err := pf.WitnessCommitment(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrChallengeDerivation, name, err)
		}
		tr.AbsorbG1("w_"+name, p)
	}

	c.Eta1 = tr.SqueezeFr("eta")
	c.Eta2 = tr.SqueezeFr("eta_two")
	c.Eta3 = tr.SqueezeFr("eta_three")

	for _, name := range []string{"LookupReadCounts", "LookupReadTags"} {
		p, err := pf.LookupCommitment(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrChallengeDerivation, name, err)
		}
		tr.AbsorbG1("lookup_"+name, p)
	}
	w4, err := pf.WitnessCommitment("W4")
	if err != nil {
		return nil, fmt.Errorf("%w: W4: %v", ErrChallengeDerivation, err)
	}
	tr.AbsorbG1("w_W4", w4)

	c.Beta = tr.SqueezeFr("beta")
	c.Gamma = tr.SqueezeFr("gamma")

	lookupInverses, err := pf.LookupCommitment("LookupInverses")
	if err != nil {
		return nil, fmt.Errorf("%w: LookupInverses: %v", ErrChallengeDerivation, err)
	}
	tr.AbsorbG1("lookup_inverses", lookupInverses)

	zPerm, err := pf.PermutationCommitment()
	if err != nil {
		return nil, fmt.Errorf("%w: z_perm: %v", ErrChallengeDerivation, err)
	}
	tr.AbsorbG1("z_perm", zPerm)

	alphas := tr.SqueezeFrN("alpha", config.NumAlphaChallenges)
	copy(c.Alpha[:], alphas)

	gates := tr.SqueezeFrN("gate_challenge", config.ConstProofSizeLogN)
	copy(c.GateChallenges[:], gates)

	return &c, nil
}

func u32Bytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
