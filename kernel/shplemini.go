package kernel

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/primitives"
	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// ErrPairingFailed is returned when the final batched KZG pairing check
// does not hold.
var ErrPairingFailed = fmt.Errorf("pairing check failed")

// OpeningClaim is the batched commitment/evaluation pair Shplemini reduces
// every sumcheck-opened polynomial down to, ready for the single final KZG
// pairing check (k4).
type OpeningClaim struct {
	Commitment types.G1Affine
	Evaluation types.Fr
	Z          types.Fr
}

// VerifyShplemini batches the VK's 19 precomputed commitments, the proof's
// 8 witness-side commitments, and the CONST_PROOF_SIZE_LOG_N-1 Gemini fold
// commitments into one opening claim. tr must already be advanced through
// VerifySumcheck, since the rho/r/nu/z challenges continue that transcript.
func VerifyShplemini(tr *transcript.Transcript, vk *wire.VerificationKey, pf *wire.Proof) (*OpeningClaim, error) {
	rho := tr.SqueezeFr("rho")

	vkCommitments, err := vk.AllCommitments()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
	}
	var witnessCommitments []types.G1Affine
	for _, name := range append(append([]string{}, wire.ProofWitnessCommitmentNames...), wire.ProofPermutationCommitmentName) {
		var p types.G1Affine
		var err error
		if name == wire.ProofPermutationCommitmentName {
			p, err = pf.PermutationCommitment()
		} else {
			p, err = pf.WitnessCommitment(name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		witnessCommitments = append(witnessCommitments, p)
	}
	for _, name := range wire.ProofLookupCommitmentNames {
		p, err := pf.LookupCommitment(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		witnessCommitments = append(witnessCommitments, p)
	}

	batched := append(append([]types.G1Affine{}, vkCommitments...), witnessCommitments...)
	evalNames := append(append([]string{}, wire.VkCommitmentNames...), "WL", "WR", "WO", "W4", "ZPerm", "LookupReadCounts", "LookupReadTags", "LookupInverses")

	rhoPowers := make([]types.Fr, len(batched))
	acc := types.FrFromUint64(1)
	for i := range rhoPowers {
		rhoPowers[i] = acc
		acc = primitives.FrMul(acc, rho)
	}

	combinedCommitment, err := primitives.G1MSM(batched, rhoPowers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
	}

	combinedEval := types.FrFromUint64(0)
	for i, name := range evalNames {
		v, err := pf.Eval(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		combinedEval = primitives.FrAdd(combinedEval, primitives.FrMul(v, rhoPowers[i]))
	}

	for i := 0; i < wire.NumGeminiFolds(); i++ {
		comm, err := pf.GeminiFoldCommitment(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		tr.AbsorbG1(fmt.Sprintf("gemini_fold_commitment_%d", i), comm)
	}
	geminiR := tr.SqueezeFr("gemini_r")

	for i := 0; i < wire.NumGeminiFolds(); i++ {
		pos, err := pf.GeminiFoldEval(i, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		neg, err := pf.GeminiFoldEval(i, true)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		pb, nb := pos.Bytes(), neg.Bytes()
		tr.AbsorbBytes(fmt.Sprintf("gemini_fold_eval_%d", i), append(pb[:], nb[:]...))
	}
	nu := tr.SqueezeFr("shplonk_nu")

	geminiCommitments := make([]types.G1Affine, wire.NumGeminiFolds())
	nuPowers := make([]types.Fr, wire.NumGeminiFolds())
	accNu := types.FrFromUint64(1)
	foldEvalSum := types.FrFromUint64(0)
	for i := 0; i < wire.NumGeminiFolds(); i++ {
		c, err := pf.GeminiFoldCommitment(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		geminiCommitments[i] = c
		nuPowers[i] = accNu

		pos, err := pf.GeminiFoldEval(i, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
		}
		foldEvalSum = primitives.FrAdd(foldEvalSum, primitives.FrMul(pos, accNu))
		accNu = primitives.FrMul(accNu, nu)
	}
	geminiMSM, err := primitives.G1MSM(geminiCommitments, nuPowers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
	}

	finalCommitment, err := primitives.G1Add(combinedCommitment, geminiMSM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelationFailed, err)
	}
	finalEval := primitives.FrAdd(combinedEval, primitives.FrMul(foldEvalSum, geminiR))
	z := tr.SqueezeFr("shplonk_z")

	return &OpeningClaim{Commitment: finalCommitment, Evaluation: finalEval, Z: z}, nil
}
