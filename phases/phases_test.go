package phases

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/accounts"
	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger/memledger"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// setupVerification builds an all-zero (cryptographically meaningless but
// well-formed) VK and proof pair, uploads both through the accounts
// package, and allocates a state buffer ready for Step. All-zero is a
// valid fixture here: every G1/G2 field decodes as the point at infinity
// and every selector is 0, which satisfies every subrelation trivially
// (kernel's relations_test.go establishes this for the combining step).
func setupVerification(t *testing.T, l *memledger.MemLedger) (vkID, pfID, stateID types.AccountID) {
	c := qt.New(t)

	vkID[0] = 0xAA
	pfID[0] = 0xBB
	stateID[0] = 0xCC

	vkBuf := make([]byte, config.VerificationKeySize)
	binary.BigEndian.PutUint32(vkBuf[0:4], 1) // circuit_size = 2^0
	c.Assert(accounts.InitVkBuffer(l, vkID, config.VerificationKeySize), qt.IsNil)
	c.Assert(accounts.WriteVkChunk(l, vkID, 0, vkBuf), qt.IsNil)
	c.Assert(accounts.FinalizeVk(l, vkID), qt.IsNil)

	c.Assert(accounts.InitProofBuffer(l, pfID, config.ProofSize, 0), qt.IsNil)
	c.Assert(accounts.WriteProofChunk(l, pfID, 0, make([]byte, config.ProofSize)), qt.IsNil)

	c.Assert(accounts.InitStateBuffer(l, stateID, vkID, pfID), qt.IsNil)
	return vkID, pfID, stateID
}

func TestStepDrivesAllPhasesToTerminal(t *testing.T) {
	c := qt.New(t)
	l := memledger.New()
	_, _, stateID := setupVerification(t, l)

	phaseOrder := []config.Phase{
		config.PhaseInit, config.Phase1, config.Phase2a, config.Phase2b,
		config.Phase2c, config.Phase3a, config.Phase3b, config.Phase3c,
	}
	for _, p := range phaseOrder {
		c.Assert(Step(l, stateID, p), qt.IsNil)
	}

	rec, err := accounts.GetStateRecord(l, stateID)
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Phase, qt.Equals, config.PhaseDone)
	c.Assert(rec.Verdict, qt.Not(qt.IsNil))
}

func TestStepRejectsWrongPhaseIndex(t *testing.T) {
	c := qt.New(t)
	l := memledger.New()
	_, _, stateID := setupVerification(t, l)

	err := Step(l, stateID, config.Phase2a)
	c.Assert(err, qt.ErrorMatches, ".*invalid phase transition.*")
}

func TestStepRejectsSteppingPastTerminal(t *testing.T) {
	c := qt.New(t)
	l := memledger.New()
	_, _, stateID := setupVerification(t, l)

	phaseOrder := []config.Phase{
		config.PhaseInit, config.Phase1, config.Phase2a, config.Phase2b,
		config.Phase2c, config.Phase3a, config.Phase3b, config.Phase3c,
	}
	for _, p := range phaseOrder {
		c.Assert(Step(l, stateID, p), qt.IsNil)
	}

	err := Step(l, stateID, config.Phase4)
	c.Assert(err, qt.ErrorMatches, ".*terminal.*")
}

func TestResumptionMatchesContinuousExecution(t *testing.T) {
	c := qt.New(t)

	lContinuous := memledger.New()
	_, _, stateContinuous := setupVerification(t, lContinuous)
	phaseOrder := []config.Phase{
		config.PhaseInit, config.Phase1, config.Phase2a, config.Phase2b,
		config.Phase2c, config.Phase3a, config.Phase3b, config.Phase3c,
	}
	for _, p := range phaseOrder {
		c.Assert(Step(lContinuous, stateContinuous, p), qt.IsNil)
	}
	wantRec, err := accounts.GetStateRecord(lContinuous, stateContinuous)
	c.Assert(err, qt.IsNil)

	lResumed := memledger.New()
	_, _, stateResumed := setupVerification(t, lResumed)
	// Step the first half, simulate a pause, then resume the rest.
	for _, p := range phaseOrder[:4] {
		c.Assert(Step(lResumed, stateResumed, p), qt.IsNil)
	}
	for _, p := range phaseOrder[4:] {
		c.Assert(Step(lResumed, stateResumed, p), qt.IsNil)
	}
	gotRec, err := accounts.GetStateRecord(lResumed, stateResumed)
	c.Assert(err, qt.IsNil)

	c.Assert(*gotRec.Verdict, qt.Equals, *wantRec.Verdict)
}

func TestStepAbortsOnMissingVkBuffer(t *testing.T) {
	c := qt.New(t)
	l := memledger.New()
	var vkID, pfID, stateID types.AccountID
	vkID[0] = 1
	pfID[0] = 2
	stateID[0] = 3

	c.Assert(accounts.InitProofBuffer(l, pfID, config.ProofSize, 0), qt.IsNil)
	c.Assert(accounts.WriteProofChunk(l, pfID, 0, make([]byte, config.ProofSize)), qt.IsNil)
	c.Assert(accounts.InitStateBuffer(l, stateID, vkID, pfID), qt.IsNil)

	err := Step(l, stateID, config.PhaseInit)
	c.Assert(err, qt.Not(qt.IsNil))

	// The buffer must remain untouched (aborted, not terminal) per §7.
	rec, err2 := accounts.GetStateRecord(l, stateID)
	c.Assert(err2, qt.IsNil)
	c.Assert(rec.Phase, qt.Equals, config.PhaseInit)
}
