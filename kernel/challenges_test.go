package kernel

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/transcript"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

func zeroVkBuf(logN, numPublicInputs uint32) []byte {
	buf := make([]byte, config.VerificationKeySize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(1)<<logN)
	binary.BigEndian.PutUint32(buf[4:8], logN)
	binary.BigEndian.PutUint32(buf[8:12], numPublicInputs)
	return buf
}

func TestDeriveChallengesIsDeterministic(t *testing.T) {
	c := qt.New(t)

	vk, err := wire.ParseVK(zeroVkBuf(0, 0))
	c.Assert(err, qt.IsNil)
	pi, err := wire.ParsePublicInputs(nil, 0)
	c.Assert(err, qt.IsNil)
	pf, err := wire.ParseProof(zeroProofBuf())
	c.Assert(err, qt.IsNil)

	ch1, err := DeriveChallenges(transcript.New(), vk, pi, pf)
	c.Assert(err, qt.IsNil)
	ch2, err := DeriveChallenges(transcript.New(), vk, pi, pf)
	c.Assert(err, qt.IsNil)

	c.Assert(ch1.Eta1.Equal(ch2.Eta1), qt.IsTrue)
	c.Assert(ch1.Beta.Equal(ch2.Beta), qt.IsTrue)
	c.Assert(ch1.Gamma.Equal(ch2.Gamma), qt.IsTrue)
	for i := range ch1.Alpha {
		c.Assert(ch1.Alpha[i].Equal(ch2.Alpha[i]), qt.IsTrue)
	}
	for i := range ch1.GateChallenges {
		c.Assert(ch1.GateChallenges[i].Equal(ch2.GateChallenges[i]), qt.IsTrue)
	}
}

func TestDeriveChallengesDiffersWithDifferentPublicInputCount(t *testing.T) {
	c := qt.New(t)

	vkA, err := wire.ParseVK(zeroVkBuf(0, 0))
	c.Assert(err, qt.IsNil)
	piA, err := wire.ParsePublicInputs(nil, 0)
	c.Assert(err, qt.IsNil)
	pf, err := wire.ParseProof(zeroProofBuf())
	c.Assert(err, qt.IsNil)

	vkB, err := wire.ParseVK(zeroVkBuf(0, 1))
	c.Assert(err, qt.IsNil)
	piB, err := wire.ParsePublicInputs(make([]byte, 32), 1)
	c.Assert(err, qt.IsNil)

	chA, err := DeriveChallenges(transcript.New(), vkA, piA, pf)
	c.Assert(err, qt.IsNil)
	chB, err := DeriveChallenges(transcript.New(), vkB, piB, pf)
	c.Assert(err, qt.IsNil)

	c.Assert(chA.Beta.Equal(chB.Beta), qt.IsFalse)
}
