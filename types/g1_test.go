package types

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestG1FromFlatBytesRejectsWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := G1FromFlatBytes(make([]byte, 63))
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestG1FromFlatBytesAcceptsInfinity(t *testing.T) {
	c := qt.New(t)
	p, err := G1FromFlatBytes(make([]byte, 64))
	c.Assert(err, qt.IsNil)
	c.Assert(p.IsInfinity(), qt.IsTrue)
}

func TestG1FromLimbedBytesRejectsWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := G1FromLimbedBytes(make([]byte, 127))
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestG1FromLimbedBytesInfinityRoundTrips(t *testing.T) {
	c := qt.New(t)
	p, err := G1FromLimbedBytes(make([]byte, 128))
	c.Assert(err, qt.IsNil)
	c.Assert(p.IsInfinity(), qt.IsTrue)

	flat := p.Bytes()
	c.Assert(flat, qt.DeepEquals, G1Infinity.Bytes())
}

func TestG1LimbReconstructionMatchesFlatValue(t *testing.T) {
	c := qt.New(t)

	// x = 0x00...01 (limb-split: three zero limbs, one limb holding 1)
	limbedX := make([]byte, 64)
	limbedX[63] = 0x01
	// y = 0x00...02 the same way, so (x, y) = (1, 2), the G1 generator.
	limbedY := make([]byte, 64)
	limbedY[63] = 0x02
	limbed := append(append([]byte{}, limbedX...), limbedY...)

	flatBuf := make([]byte, 64)
	flatBuf[31] = 0x01
	flatBuf[63] = 0x02

	got, err := G1FromLimbedBytes(limbed)
	c.Assert(err, qt.IsNil)
	want, err := G1FromFlatBytes(flatBuf)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Bytes(), qt.DeepEquals, want.Bytes())

	// With y = 0 instead, (1, 0) is not on y^2 = x^3 + 3 (x = 1 needs
	// y^2 = 4), so decoding must fail at the on-curve check rather than at
	// limb decoding.
	buf := append(limbedX, make([]byte, 64)...)

	_, err = G1FromLimbedBytes(buf)
	c.Assert(err, qt.ErrorMatches, ".*not on curve.*")
}
