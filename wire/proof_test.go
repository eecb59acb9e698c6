package wire

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/config"
)

func syntheticProof() []byte {
	return make([]byte, config.ProofSize)
}

func TestParseProofRejectsWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := ParseProof(make([]byte, config.ProofSize-1))
	c.Assert(err, qt.ErrorMatches, ".*expected 16224 bytes.*")
}

func TestProofLayoutTotalsSpecSize(t *testing.T) {
	c := qt.New(t)
	c.Assert(proofLayout.total, qt.Equals, config.ProofSize)
}

func TestParseProofWitnessAndLookupCommitments(t *testing.T) {
	c := qt.New(t)
	p, err := ParseProof(syntheticProof())
	c.Assert(err, qt.IsNil)

	for _, name := range ProofWitnessCommitmentNames {
		pt, err := p.WitnessCommitment(name)
		c.Assert(err, qt.IsNil)
		c.Assert(pt.IsInfinity(), qt.IsTrue)
	}
	for _, name := range ProofLookupCommitmentNames {
		pt, err := p.LookupCommitment(name)
		c.Assert(err, qt.IsNil)
		c.Assert(pt.IsInfinity(), qt.IsTrue)
	}
	perm, err := p.PermutationCommitment()
	c.Assert(err, qt.IsNil)
	c.Assert(perm.IsInfinity(), qt.IsTrue)
}

func TestParseProofSumcheckRoundCoeffsAllRounds(t *testing.T) {
	c := qt.New(t)
	p, err := ParseProof(syntheticProof())
	c.Assert(err, qt.IsNil)

	for round := 0; round < config.ConstProofSizeLogN; round++ {
		coeffs, err := p.SumcheckRoundCoeffs(round)
		c.Assert(err, qt.IsNil)
		for _, x := range coeffs {
			c.Assert(x.IsZero(), qt.IsTrue)
		}
	}
}

func TestParseProofEvaluationsAndShiftedEvaluations(t *testing.T) {
	c := qt.New(t)
	p, err := ParseProof(syntheticProof())
	c.Assert(err, qt.IsNil)

	for _, name := range SumcheckEvalNames {
		_, err := p.Eval(name)
		c.Assert(err, qt.IsNil)
	}
	for _, name := range SumcheckShiftedEvalNames {
		_, err := p.ShiftedEval(name)
		c.Assert(err, qt.IsNil)
	}
}

func TestParseProofZKBlindingFields(t *testing.T) {
	c := qt.New(t)
	p, err := ParseProof(syntheticProof())
	c.Assert(err, qt.IsNil)

	mc, err := p.MaskingCommitment()
	c.Assert(err, qt.IsNil)
	c.Assert(mc.IsInfinity(), qt.IsTrue)

	_, err = p.LibraSum()
	c.Assert(err, qt.IsNil)
	_, err = p.LibraEvaluation()
	c.Assert(err, qt.IsNil)
	_, err = p.MaskingEval()
	c.Assert(err, qt.IsNil)
}

func TestParseProofGeminiFoldsAndFinalW(t *testing.T) {
	c := qt.New(t)
	p, err := ParseProof(syntheticProof())
	c.Assert(err, qt.IsNil)

	c.Assert(NumGeminiFolds(), qt.Equals, config.ConstProofSizeLogN-1)

	for i := 0; i < NumGeminiFolds(); i++ {
		comm, err := p.GeminiFoldCommitment(i)
		c.Assert(err, qt.IsNil)
		c.Assert(comm.IsInfinity(), qt.IsTrue)

		_, err = p.GeminiFoldEval(i, false)
		c.Assert(err, qt.IsNil)
		_, err = p.GeminiFoldEval(i, true)
		c.Assert(err, qt.IsNil)
	}

	w, err := p.KZGW()
	c.Assert(err, qt.IsNil)
	c.Assert(w.IsInfinity(), qt.IsTrue)
}
