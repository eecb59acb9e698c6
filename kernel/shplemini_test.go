package kernel

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

func TestVerifyShpleminiOnAllInfinityProofStaysAtInfinity(t *testing.T) {
	c := qt.New(t)

	vk, err := wire.ParseVK(zeroVkBuf(0, 0))
	c.Assert(err, qt.IsNil)
	pf, err := wire.ParseProof(zeroProofBuf())
	c.Assert(err, qt.IsNil)

	claim, err := VerifyShplemini(transcript.New(), vk, pf)
	c.Assert(err, qt.IsNil)
	c.Assert(claim.Commitment.IsInfinity(), qt.IsTrue)
	c.Assert(claim.Evaluation.IsZero(), qt.IsTrue)
}
