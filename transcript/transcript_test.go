package transcript

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nicolaslara/solana-noir-verifier/types"
)

func TestSqueezeFrIsDeterministic(t *testing.T) {
	c := qt.New(t)

	t1 := New()
	t1.AbsorbFr("x", types.FrFromUint64(42))
	a := t1.SqueezeFr("challenge")

	t2 := New()
	t2.AbsorbFr("x", types.FrFromUint64(42))
	b := t2.SqueezeFr("challenge")

	c.Assert(a.Equal(b), qt.IsTrue)
}

func TestSqueezeFrDependsOnPriorAbsorbs(t *testing.T) {
	c := qt.New(t)

	t1 := New()
	t1.AbsorbFr("x", types.FrFromUint64(1))
	a := t1.SqueezeFr("challenge")

	t2 := New()
	t2.AbsorbFr("x", types.FrFromUint64(2))
	b := t2.SqueezeFr("challenge")

	c.Assert(a.Equal(b), qt.IsFalse)
}

func TestSuccessiveSqueezesDiffer(t *testing.T) {
	c := qt.New(t)

	tr := New()
	tr.AbsorbFr("x", types.FrFromUint64(7))
	a := tr.SqueezeFr("c")
	b := tr.SqueezeFr("c")
	c.Assert(a.Equal(b), qt.IsFalse)
}

func TestSqueezeFrNLength(t *testing.T) {
	c := qt.New(t)
	tr := New()
	xs := tr.SqueezeFrN("alpha", 25)
	c.Assert(len(xs), qt.Equals, 25)
}

func TestDigestGrowsWithAbsorb(t *testing.T) {
	c := qt.New(t)
	tr := New()
	before := tr.Digest()
	tr.AbsorbFr("x", types.FrFromUint64(1))
	after := tr.Digest()
	c.Assert(len(after) > len(before), qt.IsTrue)
}
