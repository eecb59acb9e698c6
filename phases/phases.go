// Package phases implements component 4.E: the resumable phase state
// machine that drives the kernel across the CU-budget boundaries a real
// Solana transaction imposes. Step advances a state buffer by exactly one
// phase, persisting a checkpoint so the next call (possibly much later,
// possibly from a different process) continues from the same point.
package phases

import (
	"errors"
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/accounts"
	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/kernel"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/log"
	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrInvalidPhase is returned when a StepPhase call's phase_index does not
// match the state buffer's current phase, or the buffer is already
// terminal (§4.E: "state buffer may not be reused").
var ErrInvalidPhase = errors.New("phases: invalid phase transition")

// Step advances the state buffer stateID by exactly one phase. phaseIndex
// must equal the buffer's current phase (§6's replay-protection rule for
// StepPhase). A kernel failure that represents a real verification failure
// (RelationFailed, PairingFailed) still commits: the buffer transitions to
// PhaseDone with verdict=false. A parse/arithmetic error aborts instead,
// leaving the buffer untouched, matching §7's recovery table.
func Step(l ledger.Ledger, stateID types.AccountID, phaseIndex config.Phase) error {
	rec, err := accounts.GetStateRecord(l, stateID)
	if err != nil {
		return err
	}
	if rec.Phase == config.PhaseDone {
		return fmt.Errorf("%w: state buffer %s is terminal", ErrInvalidPhase, stateID)
	}
	if rec.Phase != phaseIndex {
		return fmt.Errorf("%w: expected phase %d, got %d", ErrInvalidPhase, rec.Phase, phaseIndex)
	}

	log.Debugw("stepping phase", "state_account", stateID.String(), "phase", int(rec.Phase))

	switch rec.Phase {
	case config.PhaseInit:
		return runPhase1(l, stateID, rec)
	case config.Phase1:
		return runSumcheckRange(l, stateID, rec, 0, config.SumcheckSplit1, config.Phase2a)
	case config.Phase2a:
		return runSumcheckRange(l, stateID, rec, config.SumcheckSplit1, config.SumcheckSplit2, config.Phase2b)
	case config.Phase2b:
		return runPhase2c(l, stateID, rec)
	case config.Phase2c:
		return runPhase3a(l, stateID, rec)
	case config.Phase3a:
		return runPhaseAdvanceOnly(l, stateID, rec, config.Phase3b)
	case config.Phase3b:
		return runPhaseAdvanceOnly(l, stateID, rec, config.Phase3c)
	case config.Phase3c:
		return runPhase4(l, stateID, rec)
	default:
		return fmt.Errorf("%w: unknown phase %d", ErrInvalidPhase, rec.Phase)
	}
}

func runPhase1(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord) error {
	vk, err := accounts.LoadVK(l, rec.VkAccount)
	if err != nil {
		return err
	}
	pf, err := accounts.LoadProof(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	pi, err := accounts.LoadPublicInputs(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	if err := pi.Validate(vk); err != nil {
		return err
	}

	tr := transcript.New()
	ch, err := kernel.DeriveChallenges(tr, vk, pi, pf)
	if err != nil {
		return err
	}

	var cp checkpointData
	cp.TranscriptDigest = tr.Digest()
	cp.setChallenges(ch)
	cp.SumcheckTarget = types.FrFromUint64(0).Bytes()

	return commitCheckpoint(l, stateID, rec, &cp, config.Phase1)
}

func runSumcheckRange(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord, from, to int, next config.Phase) error {
	vk, err := accounts.LoadVK(l, rec.VkAccount)
	if err != nil {
		return err
	}
	pf, err := accounts.LoadProof(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	cp, err := decodeCheckpoint(rec.Checkpoint)
	if err != nil {
		return err
	}

	tr := transcript.FromDigest(cp.TranscriptDigest)
	state, err := cp.sumcheckState(from)
	if err != nil {
		return err
	}

	state, err = kernel.VerifySumcheckRounds(tr, pf, vk.LogN(), from, to, state)
	if err != nil {
		return finalizeFailed(l, stateID, rec)
	}

	cp.TranscriptDigest = tr.Digest()
	cp.setSumcheckState(state, from, to)

	return commitCheckpoint(l, stateID, rec, cp, next)
}

func runPhase2c(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord) error {
	vk, err := accounts.LoadVK(l, rec.VkAccount)
	if err != nil {
		return err
	}
	pf, err := accounts.LoadProof(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	cp, err := decodeCheckpoint(rec.Checkpoint)
	if err != nil {
		return err
	}

	tr := transcript.FromDigest(cp.TranscriptDigest)
	state, err := cp.sumcheckState(config.SumcheckSplit2)
	if err != nil {
		return err
	}

	state, err = kernel.VerifySumcheckRounds(tr, pf, vk.LogN(), config.SumcheckSplit2, config.ConstProofSizeLogN, state)
	if err != nil {
		return finalizeFailed(l, stateID, rec)
	}
	cp.TranscriptDigest = tr.Digest()
	cp.setSumcheckState(state, config.SumcheckSplit2, config.ConstProofSizeLogN)

	ch, err := cp.challenges()
	if err != nil {
		return err
	}
	relInputs, err := kernel.RelationInputsFromProof(pf, ch)
	if err != nil {
		return err
	}
	if err := kernel.VerifyRelations(cp.sumcheckResult(), relInputs, ch.Alpha, ch.GateChallenges); err != nil {
		return finalizeFailed(l, stateID, rec)
	}

	return commitCheckpoint(l, stateID, rec, cp, config.Phase3a)
}

func runPhase3a(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord) error {
	vk, err := accounts.LoadVK(l, rec.VkAccount)
	if err != nil {
		return err
	}
	pf, err := accounts.LoadProof(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	cp, err := decodeCheckpoint(rec.Checkpoint)
	if err != nil {
		return err
	}

	tr := transcript.FromDigest(cp.TranscriptDigest)
	claim, err := kernel.VerifyShplemini(tr, vk, pf)
	if err != nil {
		return finalizeFailed(l, stateID, rec)
	}
	cp.TranscriptDigest = tr.Digest()
	cp.setOpeningClaim(claim)

	return commitCheckpoint(l, stateID, rec, cp, config.Phase3b)
}

// runPhaseAdvanceOnly implements the 3b/3c bookkeeping steps: the kernel's
// Shplemini computation (k3) is not split internally, so 3a computes the
// full opening claim and 3b/3c simply carry it forward across their own
// transaction/CU boundary (§4.E: "exact split points ... are implementation
// choices").
func runPhaseAdvanceOnly(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord, next config.Phase) error {
	cp, err := decodeCheckpoint(rec.Checkpoint)
	if err != nil {
		return err
	}
	return commitCheckpoint(l, stateID, rec, cp, next)
}

func runPhase4(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord) error {
	vk, err := accounts.LoadVK(l, rec.VkAccount)
	if err != nil {
		return err
	}
	pf, err := accounts.LoadProof(l, rec.ProofAccount)
	if err != nil {
		return err
	}
	cp, err := decodeCheckpoint(rec.Checkpoint)
	if err != nil {
		return err
	}
	claim, err := cp.openingClaim()
	if err != nil {
		return err
	}

	ok, err := kernel.VerifyPairing(vk, pf, claim)
	if err != nil {
		if errors.Is(err, kernel.ErrPairingFailed) {
			return finalizeFailed(l, stateID, rec)
		}
		return err
	}

	rec.Phase = config.PhaseDone
	rec.Verdict = &ok
	rec.Checkpoint = nil
	log.Infow("verification complete", "state_account", stateID.String(), "verdict", ok)
	return accounts.PutStateRecord(l, stateID, rec)
}

func commitCheckpoint(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord, cp *checkpointData, next config.Phase) error {
	raw, err := encodeCheckpoint(cp)
	if err != nil {
		return err
	}
	rec.Checkpoint = raw
	rec.Phase = next
	return accounts.PutStateRecord(l, stateID, rec)
}

func finalizeFailed(l ledger.Ledger, stateID types.AccountID, rec *accounts.StateRecord) error {
	verdict := false
	rec.Phase = config.PhaseDone
	rec.Verdict = &verdict
	rec.Checkpoint = nil
	log.Infow("verification complete", "state_account", stateID.String(), "verdict", false)
	return accounts.PutStateRecord(l, stateID, rec)
}
