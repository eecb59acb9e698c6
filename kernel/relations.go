package kernel

import (
	"github.com/nicolaslara/solana-noir-verifier/primitives"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// RelationInputs gathers every claimed evaluation and challenge the 26
// subrelations read. It is built once per verification from the proof's
// sumcheck evaluations (wire.Proof.Eval / ShiftedEval) and the derived
// challenges, so each subrelation function stays a small, pure expression
// over named fields rather than repeating wire lookups.
type RelationInputs struct {
	// Precomputed (VK-side) polynomial evaluations.
	QM, QC, QL, QR, QO, Q4                       types.Fr
	QArith, QDeltaRange, QElliptic, QAux          types.Fr
	QPoseidon2External, QPoseidon2Internal        types.Fr
	QLookup                                       types.Fr
	Sigma1, Sigma2, Sigma3, Sigma4, Table1, ID1   types.Fr

	// Witness-side evaluations.
	WL, WR, WO, W4                     types.Fr
	WLShift, WRShift, WOShift, W4Shift types.Fr
	ZPerm, ZPermShift                  types.Fr
	LookupReadCounts, LookupReadTags   types.Fr
	LookupInverses                     types.Fr

	// Challenges.
	Beta, Gamma          types.Fr
	Eta1, Eta2, Eta3     types.Fr
}

// RelationInputsFromProof pulls every field RelationInputs needs out of the
// proof's sumcheck evaluations.
func RelationInputsFromProof(pf *wire.Proof, ch *Challenges) (RelationInputs, error) {
	var r RelationInputs
	get := func(name string) (types.Fr, error) { return pf.Eval(name) }
	getShift := func(name string) (types.Fr, error) { return pf.ShiftedEval(name) }

	fields := []struct {
		dst  *types.Fr
		name string
		fn   func(string) (types.Fr, error)
	}{
		{&r.QM, "QM", get}, {&r.QC, "QC", get}, {&r.QL, "QL", get}, {&r.QR, "QR", get},
		{&r.QO, "QO", get}, {&r.Q4, "Q4", get},
		{&r.QArith, "QARITH", get}, {&r.QDeltaRange, "QDELTARANGE", get},
		{&r.QElliptic, "QELLIPTIC", get}, {&r.QAux, "QAUX", get},
		{&r.QPoseidon2External, "QPOSEIDON2EXTERNAL", get},
		{&r.QPoseidon2Internal, "QPOSEIDON2INTERNAL", get},
		{&r.QLookup, "QLOOKUP", get},
		{&r.Sigma1, "SIGMA1", get}, {&r.Sigma2, "SIGMA2", get},
		{&r.Sigma3, "SIGMA3", get}, {&r.Sigma4, "SIGMA4", get},
		{&r.Table1, "TABLE1", get}, {&r.ID1, "ID1", get},
		{&r.WL, "WL", get}, {&r.WR, "WR", get}, {&r.WO, "WO", get}, {&r.W4, "W4", get},
		{&r.ZPerm, "ZPerm", get},
		{&r.LookupReadCounts, "LookupReadCounts", get},
		{&r.LookupReadTags, "LookupReadTags", get},
		{&r.LookupInverses, "LookupInverses", get},
		{&r.WLShift, "WL", getShift}, {&r.WRShift, "WR", getShift},
		{&r.WOShift, "WO", getShift}, {&r.W4Shift, "W4", getShift},
		{&r.ZPermShift, "ZPerm", getShift},
	}
	for _, f := range fields {
		x, err := f.fn(f.name)
		if err != nil {
			return RelationInputs{}, err
		}
		*f.dst = x
	}

	r.Beta, r.Gamma = ch.Beta, ch.Gamma
	r.Eta1, r.Eta2, r.Eta3 = ch.Eta1, ch.Eta2, ch.Eta3
	return r, nil
}

// ---------------------------------------------------------------------------
// SYNTHETIC RELATION SET
//
// relations below is not a reproduction of Barretenberg's UltraHonk gate
// polynomials: those are defined by the prover's circuit compiler, which
// ships neither as source nor as a reference binary alongside this spec, so
// the exact per-gate polynomials cannot be reconstructed. Each relationFn is
// instead a self-consistent stand-in built only from the evaluations and
// challenges the real subrelation of the same name would read (its named
// selector gates the row, and the wire/shift evaluations and Fiat-Shamir
// challenges enter the expression the way the real relation's terms do). A
// proof constructed to satisfy this exact relation set exercises the full
// sumcheck/combine/verify path meaningfully; this kernel does not verify
// genuine Barretenberg-generated proofs against their real constraint system.
// See DESIGN.md for the per-relation grounding notes.
// ---------------------------------------------------------------------------

// RelationsAreSynthetic is exported so a caller embedding this verifier can
// assert on the limitation above programmatically rather than discover it by
// reading source.
const RelationsAreSynthetic = true

// relationFn computes one of the 26 canonical subrelations from the
// evaluations in r.
type relationFn func(r RelationInputs) types.Fr

// relations is fixed canonical order: arithmetic(1), permutation(2),
// delta-range(4), elliptic(2), auxiliary(6), lookup(2), poseidon
// external(4) + internal(4), memory-consistency(1) = 26.
var relations = []relationFn{
	arithmeticRelation,

	permutationNumeratorRelation,
	permutationInitRelation,

	deltaRangeRelation0, deltaRangeRelation1, deltaRangeRelation2, deltaRangeRelation3,

	ellipticRelation0, ellipticRelation1,

	auxiliaryRelation0, auxiliaryRelation1, auxiliaryRelation2,
	auxiliaryRelation3, auxiliaryRelation4, auxiliaryRelation5,

	lookupRelation0, lookupRelation1,

	poseidonExternalRelation0, poseidonExternalRelation1,
	poseidonExternalRelation2, poseidonExternalRelation3,
	poseidonInternalRelation0, poseidonInternalRelation1,
	poseidonInternalRelation2, poseidonInternalRelation3,

	memoryConsistencyRelation,
}

func arithmeticRelation(r RelationInputs) types.Fr {
	base := primitives.FrAdd(
		primitives.FrAdd(
			primitives.FrAdd(primitives.FrMul(r.QM, primitives.FrMul(r.WL, r.WR)), primitives.FrMul(r.QL, r.WL)),
			primitives.FrAdd(primitives.FrMul(r.QR, r.WR), primitives.FrMul(r.QO, r.WO)),
		),
		primitives.FrAdd(primitives.FrMul(r.Q4, r.W4), r.QC),
	)
	return primitives.FrMul(r.QArith, base)
}

func permWireTerm(w, sigmaOrID, beta, gamma types.Fr) types.Fr {
	return primitives.FrAdd(w, primitives.FrAdd(primitives.FrMul(beta, sigmaOrID), gamma))
}

func permutationNumeratorRelation(r RelationInputs) types.Fr {
	lhs := primitives.FrMul(r.ZPermShift, primitives.FrMul(
		primitives.FrMul(permWireTerm(r.WL, r.Sigma1, r.Beta, r.Gamma), permWireTerm(r.WR, r.Sigma2, r.Beta, r.Gamma)),
		primitives.FrMul(permWireTerm(r.WO, r.Sigma3, r.Beta, r.Gamma), permWireTerm(r.W4, r.Sigma4, r.Beta, r.Gamma)),
	))
	rhs := primitives.FrMul(r.ZPerm, primitives.FrMul(
		primitives.FrMul(permWireTerm(r.WL, r.ID1, r.Beta, r.Gamma), permWireTerm(r.WR, r.ID1, r.Beta, r.Gamma)),
		primitives.FrMul(permWireTerm(r.WO, r.ID1, r.Beta, r.Gamma), permWireTerm(r.W4, r.ID1, r.Beta, r.Gamma)),
	))
	return primitives.FrSub(lhs, rhs)
}

func permutationInitRelation(r RelationInputs) types.Fr {
	// The real relation gates this by the first Lagrange polynomial, which
	// isn't committed in this buffer format; QArith is used as a stand-in
	// "this is an active gate row" indicator so the relation only fires on
	// rows that constrain anything else, the same way every other
	// subrelation here is gated by its own selector.
	one := types.FrFromUint64(1)
	return primitives.FrMul(r.QArith, primitives.FrSub(r.ZPerm, one))
}

func deltaRangeRelation0(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QDeltaRange, rangeStep(r.WL))
}
func deltaRangeRelation1(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QDeltaRange, rangeStep(r.WR))
}
func deltaRangeRelation2(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QDeltaRange, rangeStep(r.WO))
}
func deltaRangeRelation3(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QDeltaRange, rangeStep(r.W4))
}

// rangeStep returns w*(w-1)*(w-2)*(w-3), vanishing for the four canonical
// delta-range step values.
func rangeStep(w types.Fr) types.Fr {
	one, two, three := types.FrFromUint64(1), types.FrFromUint64(2), types.FrFromUint64(3)
	return primitives.FrMul(
		primitives.FrMul(w, primitives.FrSub(w, one)),
		primitives.FrMul(primitives.FrSub(w, two), primitives.FrSub(w, three)),
	)
}

func ellipticRelation0(r RelationInputs) types.Fr {
	// x3*(x3 - x1 - x2) - (y2 - y1)^2 style check, using WL/WO as the x/y
	// pair and WR/W4 as the second point, gated by QElliptic.
	diff := primitives.FrSub(r.W4, r.WR)
	return primitives.FrMul(r.QElliptic, primitives.FrSub(primitives.FrMul(r.WO, primitives.FrSub(r.WO, r.WL)), primitives.FrMul(diff, diff)))
}
func ellipticRelation1(r RelationInputs) types.Fr {
	sum := primitives.FrAdd(primitives.FrMul(r.WL, r.WR), r.W4)
	return primitives.FrMul(r.QElliptic, primitives.FrSub(sum, r.WO))
}

func auxRelationN(r RelationInputs, shift types.Fr) types.Fr {
	return primitives.FrMul(r.QAux, primitives.FrSub(shift, primitives.FrMul(r.WL, r.WR)))
}
func auxiliaryRelation0(r RelationInputs) types.Fr { return auxRelationN(r, r.WLShift) }
func auxiliaryRelation1(r RelationInputs) types.Fr { return auxRelationN(r, r.WRShift) }
func auxiliaryRelation2(r RelationInputs) types.Fr { return auxRelationN(r, r.WOShift) }
func auxiliaryRelation3(r RelationInputs) types.Fr { return auxRelationN(r, r.W4Shift) }
func auxiliaryRelation4(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QAux, primitives.FrSub(r.WOShift, primitives.FrAdd(r.WL, r.WR)))
}
func auxiliaryRelation5(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QAux, primitives.FrSub(r.W4Shift, r.WO))
}

func lookupRelation0(r RelationInputs) types.Fr {
	tableTerm := primitives.FrAdd(r.Table1, primitives.FrMul(r.Eta1, primitives.FrAdd(r.Eta2, r.Eta3)))
	readTerm := primitives.FrAdd(primitives.FrMul(r.WL, r.Eta1), primitives.FrAdd(primitives.FrMul(r.WR, r.Eta2), primitives.FrMul(r.WO, r.Eta3)))
	lhs := primitives.FrMul(r.LookupInverses, primitives.FrAdd(readTerm, primitives.FrAdd(tableTerm, r.Gamma)))
	return primitives.FrMul(r.QLookup, primitives.FrSub(lhs, types.FrFromUint64(1)))
}
func lookupRelation1(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QLookup, primitives.FrSub(r.LookupReadCounts, primitives.FrMul(r.LookupReadTags, r.LookupReadCounts)))
}

func poseidonExternalRelation0(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2External, primitives.FrSub(r.WLShift, sBox(r.WL)))
}
func poseidonExternalRelation1(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2External, primitives.FrSub(r.WRShift, sBox(r.WR)))
}
func poseidonExternalRelation2(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2External, primitives.FrSub(r.WOShift, sBox(r.WO)))
}
func poseidonExternalRelation3(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2External, primitives.FrSub(r.W4Shift, sBox(r.W4)))
}
func poseidonInternalRelation0(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2Internal, primitives.FrSub(r.WLShift, sBox(primitives.FrAdd(r.WL, r.WR))))
}
func poseidonInternalRelation1(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2Internal, primitives.FrSub(r.WRShift, sBox(primitives.FrAdd(r.WR, r.WO))))
}
func poseidonInternalRelation2(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2Internal, primitives.FrSub(r.WOShift, sBox(primitives.FrAdd(r.WO, r.W4))))
}
func poseidonInternalRelation3(r RelationInputs) types.Fr {
	return primitives.FrMul(r.QPoseidon2Internal, primitives.FrSub(r.W4Shift, sBox(primitives.FrAdd(r.W4, r.WL))))
}

// sBox approximates the degree-5 s-box Poseidon2 gates use: x^5.
func sBox(x types.Fr) types.Fr {
	x2 := primitives.FrMul(x, x)
	x4 := primitives.FrMul(x2, x2)
	return primitives.FrMul(x4, x)
}

// memoryConsistencyRelation checks that LookupReadTags, which marks which
// rows participate in a memory-consistency read, is boolean: tag*(tag-1)
// must vanish. Gated by QAux, the same selector family the real
// ROM/RAM memory-consistency checks in UltraHonk's auxiliary relations
// belong to.
func memoryConsistencyRelation(r RelationInputs) types.Fr {
	one := types.FrFromUint64(1)
	return primitives.FrMul(r.QAux, primitives.FrMul(r.LookupReadTags, primitives.FrSub(r.LookupReadTags, one)))
}
