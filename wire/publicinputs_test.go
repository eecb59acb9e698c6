package wire

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

func encodePublicInputs(xs []types.Fr) []byte {
	buf := make([]byte, 0, len(xs)*32)
	for _, x := range xs {
		b := x.Bytes()
		buf = append(buf, b[:]...)
	}
	return buf
}

func TestParsePublicInputsRejectsOversizeCount(t *testing.T) {
	c := qt.New(t)
	_, err := ParsePublicInputs(nil, config.MaxPublicInputs+1)
	c.Assert(err, qt.ErrorMatches, ".*out of range.*")
}

func TestParsePublicInputsRejectsLengthMismatch(t *testing.T) {
	c := qt.New(t)
	_, err := ParsePublicInputs(make([]byte, 31), 1)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestPublicInputsGetAndAll(t *testing.T) {
	c := qt.New(t)
	xs := []types.Fr{types.FrFromUint64(1), types.FrFromUint64(2), types.FrFromUint64(3)}
	buf := encodePublicInputs(xs)

	pi, err := ParsePublicInputs(buf, len(xs))
	c.Assert(err, qt.IsNil)
	c.Assert(pi.Len(), qt.Equals, 3)

	got, err := pi.Get(1)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Equal(xs[1]), qt.IsTrue)

	_, err = pi.Get(3)
	c.Assert(err, qt.ErrorMatches, ".*out of range.*")

	all, err := pi.All()
	c.Assert(err, qt.IsNil)
	c.Assert(len(all), qt.Equals, 3)
}

func TestPublicInputsValidateChecksVkCount(t *testing.T) {
	c := qt.New(t)
	xs := []types.Fr{types.FrFromUint64(1), types.FrFromUint64(2)}
	buf := encodePublicInputs(xs)
	pi, err := ParsePublicInputs(buf, len(xs))
	c.Assert(err, qt.IsNil)

	vkBuf := syntheticVK(0, 3)
	vk, err := ParseVK(vkBuf)
	c.Assert(err, qt.IsNil)

	err = pi.Validate(vk)
	c.Assert(err, qt.ErrorMatches, ".*vk declares 3.*")
}
