package kernel

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/primitives"
	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// ErrRelationFailed is returned when sumcheck round consistency or the
// final combined-relation check fails: the proof does not satisfy the
// circuit's constraints.
var ErrRelationFailed = fmt.Errorf("relation check failed")

// SumcheckResult carries the round challenges and final running target out
// of VerifySumcheck, for Shplemini (k3) to open the claimed evaluations at
// the same point.
type SumcheckResult struct {
	Challenges  [config.ConstProofSizeLogN]types.Fr
	FinalTarget types.Fr
}

// SumcheckState is the running state VerifySumcheckRounds carries between
// calls, letting a caller suspend mid-sumcheck (one phase's CU budget
// covers only some rounds) and resume later against the same transcript.
type SumcheckState struct {
	Target     types.Fr
	Challenges [config.ConstProofSizeLogN]types.Fr
}

// VerifySumcheck replays all CONST_PROOF_SIZE_LOG_N sumcheck rounds against
// the transcript tr (already advanced through DeriveChallenges), checking
// round-consistency at every round below the circuit's real log_n. Padding
// rounds past log_n are absorbed and their challenges squeezed, but they are
// not checked and leave the running target unchanged (§4.D padding rule).
// logN is the circuit's real round count.
func VerifySumcheck(tr *transcript.Transcript, pf *wire.Proof, logN uint32) (*SumcheckResult, error) {
	state := &SumcheckState{Target: types.FrFromUint64(0)}
	state, err := VerifySumcheckRounds(tr, pf, logN, 0, config.ConstProofSizeLogN, state)
	if err != nil {
		return nil, err
	}
	return &SumcheckResult{Challenges: state.Challenges, FinalTarget: state.Target}, nil
}

// VerifySumcheckRounds advances the sumcheck protocol through rounds
// [from, to), absorbing each round's coefficients into tr and checking
// consistency exactly as VerifySumcheck does. Calling it repeatedly with
// contiguous ranges that together cover [0, CONST_PROOF_SIZE_LOG_N) against
// the same transcript and state is equivalent to one VerifySumcheck call —
// the basis for phases 2a/2b/2c splitting the rounds across CU budgets.
func VerifySumcheckRounds(tr *transcript.Transcript, pf *wire.Proof, logN uint32, from, to int, state *SumcheckState) (*SumcheckState, error) {
	target := state.Target

	for round := from; round < to; round++ {
		coeffs, err := pf.SumcheckRoundCoeffs(round)
		if err != nil {
			return nil, fmt.Errorf("%w: round %d: %v", ErrRelationFailed, round, err)
		}

		for _, c := range coeffs {
			b := c.Bytes()
			tr.AbsorbBytes(fmt.Sprintf("round_%d", round), b[:])
		}
		u := tr.SqueezeFr(fmt.Sprintf("round_%d_challenge", round))
		state.Challenges[round] = u

		if uint32(round) < logN {
			s0 := evalUnivariate(coeffs, types.FrFromUint64(0))
			s1 := evalUnivariate(coeffs, types.FrFromUint64(1))
			if !primitives.FrAdd(s0, s1).Equal(target) {
				return nil, fmt.Errorf("%w: round %d consistency check failed", ErrRelationFailed, round)
			}
			target = evalUnivariate(coeffs, u)
		}
		// Padding round (round >= logN): the wire encodes this round's
		// coefficients as zero and u_i is squeezed and recorded above,
		// but no consistency check runs here and target is left
		// unchanged — the padded polynomials are identically zero, so
		// there is nothing to check them against (§4.D padding rule).
	}

	state.Target = target
	return state, nil
}

// evalUnivariate evaluates Σ coeffs[i]*x^i via Horner's method.
func evalUnivariate(coeffs [8]types.Fr, x types.Fr) types.Fr {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = primitives.FrAdd(primitives.FrMul(acc, x), coeffs[i])
	}
	return acc
}

// CombineRelations evaluates the 26 canonical subrelations at the proof's
// claimed sumcheck evaluations, weights subrelation i>0 by alpha[i-1]
// (the first subrelation's weight is implicitly 1), and scales the sum by
// the pow/eq polynomial evaluated at the sumcheck challenge point — the
// combining step (k2) checks against VerifySumcheck's FinalTarget.
func CombineRelations(r RelationInputs, alphas [config.NumAlphaChallenges]types.Fr, gateChallenges, sumcheckChallenges [config.ConstProofSizeLogN]types.Fr) types.Fr {
	sum := types.FrFromUint64(0)
	for i, rel := range relations {
		val := rel(r)
		if i > 0 {
			val = primitives.FrMul(val, alphas[i-1])
		}
		sum = primitives.FrAdd(sum, val)
	}
	pow := powContribution(gateChallenges, sumcheckChallenges)
	return primitives.FrMul(sum, pow)
}

// powContribution evaluates the multilinear "eq" polynomial eq(u, gc) =
// ∏_i (u_i*gc_i + (1-u_i)*(1-gc_i)), the standard pow/eq combining factor
// sumcheck-based proof systems use to fold per-row relation checks into a
// single running target.
func powContribution(gateChallenges, sumcheckChallenges [config.ConstProofSizeLogN]types.Fr) types.Fr {
	one := types.FrFromUint64(1)
	acc := one
	for i := range gateChallenges {
		u := sumcheckChallenges[i]
		gc := gateChallenges[i]
		term := primitives.FrAdd(
			primitives.FrMul(u, gc),
			primitives.FrMul(primitives.FrSub(one, u), primitives.FrSub(one, gc)),
		)
		acc = primitives.FrMul(acc, term)
	}
	return acc
}

// VerifyRelations checks that the combined, pow-scaled relation value
// matches the sumcheck's final running target — the bridge between (k2)'s
// round-by-round check and the claimed evaluations the proof opens.
func VerifyRelations(sc *SumcheckResult, r RelationInputs, alphas [config.NumAlphaChallenges]types.Fr, gateChallenges [config.ConstProofSizeLogN]types.Fr) error {
	combined := CombineRelations(r, alphas, gateChallenges, sc.Challenges)
	if !combined.Equal(sc.FinalTarget) {
		return fmt.Errorf("%w: combined relation value does not match sumcheck target", ErrRelationFailed)
	}
	return nil
}
