package kernel

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/types"
)

func TestArithmeticRelationVanishesWhenGateDisabled(t *testing.T) {
	c := qt.New(t)
	r := RelationInputs{
		QM: types.FrFromUint64(5), WL: types.FrFromUint64(3), WR: types.FrFromUint64(7),
		QArith: types.FrFromUint64(0),
	}
	got := arithmeticRelation(r)
	c.Assert(got.IsZero(), qt.IsTrue)
}

func TestArithmeticRelationDetectsViolation(t *testing.T) {
	c := qt.New(t)
	// qm*wl*wr + qc with qarith=1: 1*2*3 + 0 = 6 != 0
	r := RelationInputs{
		QM: types.FrFromUint64(1), WL: types.FrFromUint64(2), WR: types.FrFromUint64(3),
		QArith: types.FrFromUint64(1),
	}
	got := arithmeticRelation(r)
	c.Assert(got.Equal(types.FrFromUint64(6)), qt.IsTrue)
}

func TestArithmeticRelationSatisfiedGate(t *testing.T) {
	c := qt.New(t)
	// qm*wl*wr + qc == 0 when qc == -(wl*wr), with ql=qr=qo=q4=0.
	wl, wr := types.FrFromUint64(2), types.FrFromUint64(3)
	r := RelationInputs{
		QM: types.FrFromUint64(1), WL: wl, WR: wr,
		QC:     wl.Mul(wr).Neg(),
		QArith: types.FrFromUint64(1),
	}
	got := arithmeticRelation(r)
	c.Assert(got.IsZero(), qt.IsTrue)
}

func TestRangeStepVanishesAtCanonicalValues(t *testing.T) {
	c := qt.New(t)
	for _, v := range []uint64{0, 1, 2, 3} {
		got := rangeStep(types.FrFromUint64(v))
		c.Assert(got.IsZero(), qt.IsTrue)
	}
}

func TestRangeStepNonZeroOutsideRange(t *testing.T) {
	c := qt.New(t)
	got := rangeStep(types.FrFromUint64(4))
	c.Assert(got.IsZero(), qt.IsFalse)
}

func TestSBoxIsFifthPower(t *testing.T) {
	c := qt.New(t)
	x := types.FrFromUint64(2)
	got := sBox(x)
	c.Assert(got.Equal(types.FrFromUint64(32)), qt.IsTrue) // 2^5 = 32
}

func TestCombineRelationsAllZeroIsZero(t *testing.T) {
	c := qt.New(t)
	var r RelationInputs
	var alphas [25]types.Fr
	for i := range alphas {
		alphas[i] = types.FrFromUint64(1)
	}
	var gc, u [28]types.Fr
	for i := range gc {
		gc[i] = types.FrFromUint64(1)
		u[i] = types.FrFromUint64(1)
	}
	got := CombineRelations(r, alphas, gc, u)
	c.Assert(got.IsZero(), qt.IsTrue)
}
