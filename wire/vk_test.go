package wire

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/config"
)

// syntheticVK builds a well-formed but cryptographically meaningless VK
// buffer: every commitment and G2 point is the point at infinity, which
// ParseVK/G1FromFlatBytes/G1FromLimbedBytes/G2FromBytes all accept. This
// exercises every accessor's offset math without requiring a real
// Barretenberg-produced VK, which this exercise has no way to obtain.
func syntheticVK(logN, numPublicInputs uint32) []byte {
	buf := make([]byte, config.VerificationKeySize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(1)<<logN)
	binary.BigEndian.PutUint32(buf[4:8], logN)
	binary.BigEndian.PutUint32(buf[8:12], numPublicInputs)
	binary.BigEndian.PutUint32(buf[12:16], 0)
	return buf
}

func TestParseVKRejectsWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := ParseVK(make([]byte, config.VerificationKeySize-1))
	c.Assert(err, qt.ErrorMatches, ".*expected 1760 bytes.*")
}

func TestParseVKRejectsLogNTooLarge(t *testing.T) {
	c := qt.New(t)
	buf := syntheticVK(config.MaxLogN+1, 0)
	_, err := ParseVK(buf)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestParseVKRejectsCircuitSizeMismatch(t *testing.T) {
	c := qt.New(t)
	buf := syntheticVK(4, 2)
	binary.BigEndian.PutUint32(buf[0:4], 999)
	_, err := ParseVK(buf)
	c.Assert(err, qt.ErrorMatches, ".*does not match 2\\^log_n.*")
}

func TestParseVKHeaderFields(t *testing.T) {
	c := qt.New(t)
	buf := syntheticVK(10, 3)
	vk, err := ParseVK(buf)
	c.Assert(err, qt.IsNil)
	c.Assert(vk.LogN(), qt.Equals, uint32(10))
	c.Assert(vk.CircuitSize(), qt.Equals, uint32(1024))
	c.Assert(vk.NumPublicInputs(), qt.Equals, uint32(3))
}

func TestParseVKAllCommitmentsAndG2Points(t *testing.T) {
	c := qt.New(t)
	buf := syntheticVK(0, 0)
	vk, err := ParseVK(buf)
	c.Assert(err, qt.IsNil)

	commitments, err := vk.AllCommitments()
	c.Assert(err, qt.IsNil)
	c.Assert(len(commitments), qt.Equals, len(VkCommitmentNames))
	for _, p := range commitments {
		c.Assert(p.IsInfinity(), qt.IsTrue)
	}

	g2one, err := vk.G2One()
	c.Assert(err, qt.IsNil)
	c.Assert(g2one.IsInfinity(), qt.IsTrue)

	g2tau, err := vk.G2Tau()
	c.Assert(err, qt.IsNil)
	c.Assert(g2tau.IsInfinity(), qt.IsTrue)
}

func TestParseVKUnknownCommitmentName(t *testing.T) {
	c := qt.New(t)
	buf := syntheticVK(0, 0)
	vk, err := ParseVK(buf)
	c.Assert(err, qt.IsNil)
	_, err = vk.Commitment("NOT_A_FIELD")
	c.Assert(err, qt.ErrorMatches, ".*unknown vk commitment.*")
}

func TestVkLayoutTotalsSpecSize(t *testing.T) {
	c := qt.New(t)
	c.Assert(vkLayout.total, qt.Equals, config.VerificationKeySize)
}
