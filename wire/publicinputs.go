package wire

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrPublicInputsParse is returned for a malformed public-inputs region.
var ErrPublicInputsParse = fmt.Errorf("public inputs parse error")

// PublicInputs is a zero-copy view over a caller-supplied public-inputs
// buffer: a flat sequence of 32-byte big-endian field elements.
type PublicInputs struct {
	buf   []byte
	count int
}

// ParsePublicInputs wraps buf as a vector of count canonical Fr elements.
// It does not validate each element is canonical; call Validate for that.
func ParsePublicInputs(buf []byte, count int) (*PublicInputs, error) {
	if count < 0 || count > config.MaxPublicInputs {
		return nil, fmt.Errorf("%w: count %d out of range [0, %d]", ErrPublicInputsParse, count, config.MaxPublicInputs)
	}
	want := count * 32
	if len(buf) != want {
		return nil, fmt.Errorf("%w: expected %d bytes for %d inputs, got %d", ErrPublicInputsParse, want, count, len(buf))
	}
	return &PublicInputs{buf: buf, count: count}, nil
}

// Len returns the number of public inputs.
func (pi *PublicInputs) Len() int { return pi.count }

// Bytes returns the raw flat encoding, used for hashing the public-inputs
// digest that seeds a receipt's program-derived address.
func (pi *PublicInputs) Bytes() []byte { return pi.buf }

// Get decodes the i-th public input.
func (pi *PublicInputs) Get(i int) (types.Fr, error) {
	if i < 0 || i >= pi.count {
		return types.Fr{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrPublicInputsParse, i, pi.count)
	}
	off := i * 32
	x, err := types.FrFromBytesBE(pi.buf[off : off+32])
	if err != nil {
		return types.Fr{}, fmt.Errorf("%w: input %d: %v", ErrPublicInputsParse, i, err)
	}
	return x, nil
}

// All decodes every public input in order.
func (pi *PublicInputs) All() ([]types.Fr, error) {
	out := make([]types.Fr, pi.count)
	for i := range out {
		x, err := pi.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// Validate decodes every element, confirming each is a canonical (< r)
// field element, and checks count matches the VK's declared
// NumPublicInputs.
func (pi *PublicInputs) Validate(vk *VerificationKey) error {
	if uint32(pi.count) != vk.NumPublicInputs() {
		return fmt.Errorf("%w: got %d public inputs, vk declares %d", ErrPublicInputsParse, pi.count, vk.NumPublicInputs())
	}
	_, err := pi.All()
	return err
}
