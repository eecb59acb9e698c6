package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrVkParse is returned for any malformed VK buffer.
var ErrVkParse = fmt.Errorf("vk parse error")

// vkHeaderSize covers circuit_size, log_n, num_public_inputs,
// public_inputs_offset (4 bytes each) plus 16 reserved bytes for future
// header fields.
const vkHeaderSize = 32

// VkCommitmentNames is the canonical, fixed order of precomputed commitments
// in the VK, and therefore the order they are absorbed into the transcript
// in (k1). The first four use the legacy limbed encoding; the verifier must
// accept both encodings by schema, not by content (§9).
var VkCommitmentNames = []string{
	"QM", "QC", "QL", "QR", // limbed
	"QO", "Q4", "QARITH", "QDELTARANGE", "QELLIPTIC", "QAUX",
	"QPOSEIDON2EXTERNAL", "QPOSEIDON2INTERNAL", "QLOOKUP",
	"SIGMA1", "SIGMA2", "SIGMA3", "SIGMA4", "TABLE1", "ID1", // flat
}

const numLimbedVkCommitments = 4

func vkCommitmentEncoding(i int) encoding {
	if i < numLimbedVkCommitments {
		return limbed
	}
	return flat
}

var vkLayout = func() layout {
	fields := []field{
		{"circuit_size", 4},
		{"log_n", 4},
		{"num_public_inputs", 4},
		{"public_inputs_offset", 4},
		{"reserved", 16},
	}
	for i, name := range VkCommitmentNames {
		fields = append(fields, field{name, vkCommitmentEncoding(i).size()})
	}
	fields = append(fields, field{"g2_one", 128}, field{"g2_tau", 128})
	return buildLayout(fields)
}()

// VerificationKey is a zero-copy view over a 1,760-byte VK buffer.
type VerificationKey struct {
	buf []byte
}

// ParseVK validates and wraps buf. It does not copy buf; buf must outlive
// the returned VerificationKey.
func ParseVK(buf []byte) (*VerificationKey, error) {
	if len(buf) != config.VerificationKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrVkParse, config.VerificationKeySize, len(buf))
	}
	if vkLayout.total != config.VerificationKeySize {
		// layout bug, not a caller error
		panic(fmt.Sprintf("wire: vk layout totals %d bytes, want %d", vkLayout.total, config.VerificationKeySize))
	}
	vk := &VerificationKey{buf: buf}
	if vk.LogN() > config.MaxLogN {
		return nil, fmt.Errorf("%w: log_n %d exceeds max %d", ErrVkParse, vk.LogN(), config.MaxLogN)
	}
	if vk.CircuitSize() != uint32(1)<<vk.LogN() {
		return nil, fmt.Errorf("%w: circuit_size %d does not match 2^log_n (log_n=%d)", ErrVkParse, vk.CircuitSize(), vk.LogN())
	}
	return vk, nil
}

func (vk *VerificationKey) u32(name string) uint32 {
	off, size, ok := vkLayout.offsetOf(name)
	if !ok || size != 4 {
		panic(fmt.Sprintf("wire: vk field %q missing or wrong size", name))
	}
	return binary.BigEndian.Uint32(vk.buf[off : off+4])
}

// CircuitSize returns 2^log_n.
func (vk *VerificationKey) CircuitSize() uint32 { return vk.u32("circuit_size") }

// LogN returns the circuit's log_n.
func (vk *VerificationKey) LogN() uint32 { return vk.u32("log_n") }

// NumPublicInputs returns the VK's declared public input count.
func (vk *VerificationKey) NumPublicInputs() uint32 { return vk.u32("num_public_inputs") }

// PublicInputsOffset returns the declared public-inputs offset.
func (vk *VerificationKey) PublicInputsOffset() uint32 { return vk.u32("public_inputs_offset") }

// Commitment decodes the named precomputed commitment, reading either the
// flat 64-byte or limbed 128-byte form per its schema position.
func (vk *VerificationKey) Commitment(name string) (types.G1Affine, error) {
	off, size, ok := vkLayout.offsetOf(name)
	if !ok {
		return types.G1Affine{}, fmt.Errorf("%w: unknown vk commitment %q", ErrVkParse, name)
	}
	raw := vk.buf[off : off+size]
	var p types.G1Affine
	var err error
	if size == limbed.size() {
		p, err = types.G1FromLimbedBytes(raw)
	} else {
		p, err = types.G1FromFlatBytes(raw)
	}
	if err != nil {
		return types.G1Affine{}, fmt.Errorf("%w: commitment %q: %v", ErrVkParse, name, err)
	}
	return p, nil
}

// AllCommitments returns every precomputed commitment in canonical order,
// for the (k1) challenge-generation absorb loop and the Shplemini MSM.
func (vk *VerificationKey) AllCommitments() ([]types.G1Affine, error) {
	out := make([]types.G1Affine, len(VkCommitmentNames))
	for i, name := range VkCommitmentNames {
		p, err := vk.Commitment(name)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// G2One returns the VK's [1]_2 point.
func (vk *VerificationKey) G2One() (types.G2Affine, error) {
	return vk.g2("g2_one")
}

// G2Tau returns the VK's [tau]_2 point.
func (vk *VerificationKey) G2Tau() (types.G2Affine, error) {
	return vk.g2("g2_tau")
}

func (vk *VerificationKey) g2(name string) (types.G2Affine, error) {
	off, size, ok := vkLayout.offsetOf(name)
	if !ok {
		panic(fmt.Sprintf("wire: vk field %q missing", name))
	}
	p, err := types.G2FromBytes(vk.buf[off : off+size])
	if err != nil {
		return types.G2Affine{}, fmt.Errorf("%w: %s: %v", ErrVkParse, name, err)
	}
	return p, nil
}

// Bytes returns the raw underlying buffer (read-only use by callers).
func (vk *VerificationKey) Bytes() []byte { return vk.buf }

// VkFieldOffset exposes a named VK field's byte offset and size, for
// callers that need to patch a specific slot directly (tests).
func VkFieldOffset(name string) (int, int, bool) { return vkLayout.offsetOf(name) }
