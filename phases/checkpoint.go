package phases

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/kernel"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// checkpointData is the fixed-shape intermediate state §4.E calls the
// "checkpoint region": every round challenge, the running sumcheck target,
// the derived Fiat-Shamir challenges, the Shplemini opening claim, and the
// transcript's absorbed history so far. Every Fr/G1 value is stored as its
// canonical byte encoding rather than the in-memory Montgomery-form scalar
// or gnark-crypto point struct, since this is exactly the boundary where the
// verifier's state leaves process memory and must be reconstructible
// byte-for-byte.
type checkpointData struct {
	TranscriptDigest []byte

	Eta1, Eta2, Eta3 [32]byte
	Beta, Gamma      [32]byte
	Alpha            [config.NumAlphaChallenges][32]byte
	GateChallenges   [config.ConstProofSizeLogN][32]byte

	SumcheckTarget     [32]byte
	SumcheckChallenges [config.ConstProofSizeLogN][32]byte

	HasOpeningClaim   bool
	OpeningCommitment [64]byte
	OpeningEvaluation [32]byte
	OpeningZ          [32]byte
}

func encodeCheckpoint(cp *checkpointData) ([]byte, error) {
	b, err := cbor.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("phases: encode checkpoint: %w", err)
	}
	return b, nil
}

func decodeCheckpoint(b []byte) (*checkpointData, error) {
	var cp checkpointData
	if err := cbor.Unmarshal(b, &cp); err != nil {
		return nil, fmt.Errorf("phases: decode checkpoint: %w", err)
	}
	return &cp, nil
}

func (cp *checkpointData) setChallenges(ch *kernel.Challenges) {
	cp.Eta1 = ch.Eta1.Bytes()
	cp.Eta2 = ch.Eta2.Bytes()
	cp.Eta3 = ch.Eta3.Bytes()
	cp.Beta = ch.Beta.Bytes()
	cp.Gamma = ch.Gamma.Bytes()
	for i := range ch.Alpha {
		cp.Alpha[i] = ch.Alpha[i].Bytes()
	}
	for i := range ch.GateChallenges {
		cp.GateChallenges[i] = ch.GateChallenges[i].Bytes()
	}
}

func (cp *checkpointData) challenges() (*kernel.Challenges, error) {
	var ch kernel.Challenges
	var err error
	if ch.Eta1, err = types.FrFromBytesBE(cp.Eta1[:]); err != nil {
		return nil, err
	}
	if ch.Eta2, err = types.FrFromBytesBE(cp.Eta2[:]); err != nil {
		return nil, err
	}
	if ch.Eta3, err = types.FrFromBytesBE(cp.Eta3[:]); err != nil {
		return nil, err
	}
	if ch.Beta, err = types.FrFromBytesBE(cp.Beta[:]); err != nil {
		return nil, err
	}
	if ch.Gamma, err = types.FrFromBytesBE(cp.Gamma[:]); err != nil {
		return nil, err
	}
	for i := range cp.Alpha {
		if ch.Alpha[i], err = types.FrFromBytesBE(cp.Alpha[i][:]); err != nil {
			return nil, err
		}
	}
	for i := range cp.GateChallenges {
		if ch.GateChallenges[i], err = types.FrFromBytesBE(cp.GateChallenges[i][:]); err != nil {
			return nil, err
		}
	}
	return &ch, nil
}

func (cp *checkpointData) sumcheckState(upto int) (*kernel.SumcheckState, error) {
	target, err := types.FrFromBytesBE(cp.SumcheckTarget[:])
	if err != nil {
		return nil, err
	}
	state := &kernel.SumcheckState{Target: target}
	for i := 0; i < upto; i++ {
		c, err := types.FrFromBytesBE(cp.SumcheckChallenges[i][:])
		if err != nil {
			return nil, err
		}
		state.Challenges[i] = c
	}
	return state, nil
}

func (cp *checkpointData) setSumcheckState(state *kernel.SumcheckState, from, to int) {
	cp.SumcheckTarget = state.Target.Bytes()
	for i := from; i < to; i++ {
		cp.SumcheckChallenges[i] = state.Challenges[i].Bytes()
	}
}

func (cp *checkpointData) sumcheckResult() *kernel.SumcheckResult {
	var result kernel.SumcheckResult
	for i := range cp.SumcheckChallenges {
		c, _ := types.FrFromBytesBE(cp.SumcheckChallenges[i][:])
		result.Challenges[i] = c
	}
	target, _ := types.FrFromBytesBE(cp.SumcheckTarget[:])
	result.FinalTarget = target
	return &result
}

func (cp *checkpointData) setOpeningClaim(claim *kernel.OpeningClaim) {
	cp.HasOpeningClaim = true
	cp.OpeningCommitment = claim.Commitment.Bytes()
	cp.OpeningEvaluation = claim.Evaluation.Bytes()
	cp.OpeningZ = claim.Z.Bytes()
}

func (cp *checkpointData) openingClaim() (*kernel.OpeningClaim, error) {
	commitment, err := types.G1FromFlatBytes(cp.OpeningCommitment[:])
	if err != nil {
		return nil, err
	}
	evaluation, err := types.FrFromBytesBE(cp.OpeningEvaluation[:])
	if err != nil {
		return nil, err
	}
	z, err := types.FrFromBytesBE(cp.OpeningZ[:])
	if err != nil {
		return nil, err
	}
	return &kernel.OpeningClaim{Commitment: commitment, Evaluation: evaluation, Z: z}, nil
}
