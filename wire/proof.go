package wire

import (
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrProofParse is returned for any malformed proof buffer.
var ErrProofParse = fmt.Errorf("proof parse error")

// ProofWitnessCommitmentNames are the prover's per-instance wire
// commitments. WL, WR and WO are absorbed first into the transcript; W4 is
// absorbed after the eta challenges and the lookup read counts/tags.
var ProofWitnessCommitmentNames = []string{"WL", "WR", "WO", "W4"}

// ProofLookupCommitmentNames are the lookup-argument commitments, absorbed
// after eta challenges are derived.
var ProofLookupCommitmentNames = []string{"LookupReadCounts", "LookupReadTags", "LookupInverses"}

// ProofPermutationCommitmentName is the grand-product commitment, absorbed
// after beta/gamma.
const ProofPermutationCommitmentName = "ZPerm"

// SumcheckEvalNames lists every "normal" (non-shifted) polynomial evaluation
// a sumcheck proof opens: the VK's 19 precomputed polynomials in
// VkCommitmentNames order, then the prover's 8 witness-side polynomials.
var SumcheckEvalNames = append(append([]string{}, VkCommitmentNames...),
	"WL", "WR", "WO", "W4", "ZPerm",
	"LookupReadCounts", "LookupReadTags", "LookupInverses",
)

// SumcheckShiftedEvalNames lists the "next row" evaluations required by the
// auxiliary and permutation relations.
var SumcheckShiftedEvalNames = []string{"WL", "WR", "WO", "W4", "ZPerm"}

const numGeminiFolds = config.ConstProofSizeLogN - 1 // 27

var proofLayout = func() layout {
	var fields []field
	for _, n := range ProofWitnessCommitmentNames {
		fields = append(fields, field{"wc_" + n, flat.size()})
	}
	for _, n := range ProofLookupCommitmentNames {
		fields = append(fields, field{"lc_" + n, flat.size()})
	}
	fields = append(fields, field{"pc_" + ProofPermutationCommitmentName, flat.size()})

	for i := 0; i < config.ConstProofSizeLogN; i++ {
		for j := 0; j < 8; j++ {
			fields = append(fields, field{sumcheckRoundFieldName(i, j), 32})
		}
	}
	for _, n := range SumcheckEvalNames {
		fields = append(fields, field{"eval_" + n, 32})
	}
	for _, n := range SumcheckShiftedEvalNames {
		fields = append(fields, field{"eval_shifted_" + n, 32})
	}

	fields = append(fields,
		field{"masking_commitment", flat.size()},
		field{"libra_sum", 32},
		field{"libra_evaluation", 32},
		field{"masking_eval", 32},
	)

	for i := 0; i < numGeminiFolds; i++ {
		fields = append(fields, field{geminiFoldCommitmentName(i), flat.size()})
	}
	for i := 0; i < numGeminiFolds; i++ {
		fields = append(fields,
			field{geminiFoldEvalName(i, false), 32},
			field{geminiFoldEvalName(i, true), 32},
		)
	}

	fields = append(fields, field{"kzg_w", flat.size()})

	l := buildLayout(fields)
	reserved := config.ProofSize - l.total
	if reserved < 0 {
		panic(fmt.Sprintf("wire: proof layout already exceeds %d bytes (%d)", config.ProofSize, l.total))
	}
	fields = append(fields, field{"reserved", reserved})
	return buildLayout(fields)
}()

func sumcheckRoundFieldName(round, coeff int) string {
	return fmt.Sprintf("round_%d_coeff_%d", round, coeff)
}

func geminiFoldCommitmentName(i int) string {
	return fmt.Sprintf("gemini_fold_commitment_%d", i)
}

func geminiFoldEvalName(i int, negative bool) string {
	if negative {
		return fmt.Sprintf("gemini_fold_eval_%d_neg", i)
	}
	return fmt.Sprintf("gemini_fold_eval_%d_pos", i)
}

// Proof is a zero-copy view over a 16,224-byte proof buffer.
type Proof struct {
	buf []byte
}

// ParseProof validates and wraps buf. It does not copy buf; buf must
// outlive the returned Proof.
func ParseProof(buf []byte) (*Proof, error) {
	if len(buf) != config.ProofSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrProofParse, config.ProofSize, len(buf))
	}
	if proofLayout.total != config.ProofSize {
		panic(fmt.Sprintf("wire: proof layout totals %d bytes, want %d", proofLayout.total, config.ProofSize))
	}
	return &Proof{buf: buf}, nil
}

func (p *Proof) g1(name string) (types.G1Affine, error) {
	off, size, ok := proofLayout.offsetOf(name)
	if !ok || size != flat.size() {
		panic(fmt.Sprintf("wire: proof field %q missing or wrong size", name))
	}
	pt, err := types.G1FromFlatBytes(p.buf[off : off+size])
	if err != nil {
		return types.G1Affine{}, fmt.Errorf("%w: %s: %v", ErrProofParse, name, err)
	}
	return pt, nil
}

func (p *Proof) fr(name string) (types.Fr, error) {
	off, size, ok := proofLayout.offsetOf(name)
	if !ok || size != 32 {
		panic(fmt.Sprintf("wire: proof field %q missing or wrong size", name))
	}
	x, err := types.FrFromBytesBE(p.buf[off : off+32])
	if err != nil {
		return types.Fr{}, fmt.Errorf("%w: %s: %v", ErrProofParse, name, err)
	}
	return x, nil
}

// WitnessCommitment returns one of WL/WR/WO/W4.
func (p *Proof) WitnessCommitment(name string) (types.G1Affine, error) {
	return p.g1("wc_" + name)
}

// LookupCommitment returns one of the three lookup-argument commitments.
func (p *Proof) LookupCommitment(name string) (types.G1Affine, error) {
	return p.g1("lc_" + name)
}

// PermutationCommitment returns the grand-product commitment ZPerm.
func (p *Proof) PermutationCommitment() (types.G1Affine, error) {
	return p.g1("pc_" + ProofPermutationCommitmentName)
}

// SumcheckRoundCoeffs returns the 8 univariate coefficients the prover sent
// for sumcheck round i (0-indexed, 0 <= i < CONST_PROOF_SIZE_LOG_N).
func (p *Proof) SumcheckRoundCoeffs(round int) ([8]types.Fr, error) {
	var out [8]types.Fr
	for j := 0; j < 8; j++ {
		x, err := p.fr(sumcheckRoundFieldName(round, j))
		if err != nil {
			return out, err
		}
		out[j] = x
	}
	return out, nil
}

// Eval returns the claimed evaluation of the named polynomial at the
// sumcheck challenge point.
func (p *Proof) Eval(name string) (types.Fr, error) {
	return p.fr("eval_" + name)
}

// ShiftedEval returns the claimed "next row" evaluation of the named
// witness polynomial.
func (p *Proof) ShiftedEval(name string) (types.Fr, error) {
	return p.fr("eval_shifted_" + name)
}

// MaskingCommitment returns the ZK masking-polynomial commitment.
func (p *Proof) MaskingCommitment() (types.G1Affine, error) {
	return p.g1("masking_commitment")
}

// LibraSum, LibraEvaluation and MaskingEval return the three ZK blinding
// scalars sent alongside the masking commitment.
func (p *Proof) LibraSum() (types.Fr, error)        { return p.fr("libra_sum") }
func (p *Proof) LibraEvaluation() (types.Fr, error) { return p.fr("libra_evaluation") }
func (p *Proof) MaskingEval() (types.Fr, error)     { return p.fr("masking_eval") }

// NumGeminiFolds is CONST_PROOF_SIZE_LOG_N - 1, the fixed number of Gemini
// fold polynomials Shplemini batches.
func NumGeminiFolds() int { return numGeminiFolds }

// GeminiFoldCommitment returns the commitment to the i-th Gemini fold
// polynomial.
func (p *Proof) GeminiFoldCommitment(i int) (types.G1Affine, error) {
	return p.g1(geminiFoldCommitmentName(i))
}

// GeminiFoldEval returns A_i(r) (negative=false) or A_i(-r) (negative=true)
// for the i-th Gemini fold.
func (p *Proof) GeminiFoldEval(i int, negative bool) (types.Fr, error) {
	return p.fr(geminiFoldEvalName(i, negative))
}

// KZGW returns the final KZG opening commitment W.
func (p *Proof) KZGW() (types.G1Affine, error) {
	return p.g1("kzg_w")
}

// Bytes returns the raw underlying buffer (read-only use by callers).
func (p *Proof) Bytes() []byte { return p.buf }

// ProofFieldOffset exposes a named proof field's byte offset and size,
// for callers that need to patch a specific slot directly (tests, and any
// future chunked on-chain writer that fills the buffer incrementally
// rather than all at once).
func ProofFieldOffset(name string) (int, int, bool) { return proofLayout.offsetOf(name) }

// ProofRoundCoeffFieldName returns the layout field name for sumcheck round
// round's coefficient coeff, for use with ProofFieldOffset.
func ProofRoundCoeffFieldName(round, coeff int) string { return sumcheckRoundFieldName(round, coeff) }
