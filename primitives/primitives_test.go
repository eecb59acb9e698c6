package primitives

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/types"
)

func TestBatchInverseMatchesIndividualInverse(t *testing.T) {
	c := qt.New(t)

	xs := []types.Fr{
		types.FrFromUint64(3),
		types.FrFromUint64(7),
		types.FrFromUint64(11),
		types.FrFromUint64(12345),
	}
	inverted, err := BatchInverse(xs)
	c.Assert(err, qt.IsNil)
	c.Assert(len(inverted), qt.Equals, len(xs))

	for i, x := range xs {
		want, err := FrInv(x)
		c.Assert(err, qt.IsNil)
		c.Assert(inverted[i].Equal(want), qt.IsTrue)
	}
}

func TestBatchInverseRejectsZero(t *testing.T) {
	c := qt.New(t)
	xs := []types.Fr{types.FrFromUint64(1), types.FrFromUint64(0)}
	_, err := BatchInverse(xs)
	c.Assert(err, qt.ErrorMatches, ".*zero element.*")
}

func TestBatchInverseEmpty(t *testing.T) {
	c := qt.New(t)
	out, err := BatchInverse(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.IsNil)
}

func TestG1AddWithInfinityIsIdentity(t *testing.T) {
	c := qt.New(t)
	sum, err := G1Add(types.G1Infinity, types.G1Infinity)
	c.Assert(err, qt.IsNil)
	c.Assert(sum.IsInfinity(), qt.IsTrue)
}

func TestG1MSMRejectsLengthMismatch(t *testing.T) {
	c := qt.New(t)
	_, err := G1MSM([]types.G1Affine{types.G1Infinity}, nil)
	c.Assert(err, qt.ErrorMatches, ".*msm length mismatch.*")
}

func TestG1MSMSkipsZeroScalars(t *testing.T) {
	c := qt.New(t)
	out, err := G1MSM(
		[]types.G1Affine{types.G1Infinity, types.G1Infinity},
		[]types.Fr{types.FrFromUint64(0), types.FrFromUint64(0)},
	)
	c.Assert(err, qt.IsNil)
	c.Assert(out.IsInfinity(), qt.IsTrue)
}

func TestFrModulusIsOddAndNonZero(t *testing.T) {
	c := qt.New(t)
	m := FrModulus()
	c.Assert(m.Sign(), qt.Equals, 1)
	c.Assert(m.Bit(0), qt.Equals, uint(1))
}
