package types

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestAccountIDString(t *testing.T) {
	c := qt.New(t)
	var a AccountID
	a[0] = 0xde
	a[1] = 0xad
	c.Assert(a.String()[:4], qt.Equals, "dead")
	c.Assert(AccountID{}.IsZero(), qt.IsTrue)
	c.Assert(a.IsZero(), qt.IsFalse)
}

func TestHexBytesJSONRoundTrip(t *testing.T) {
	c := qt.New(t)
	hb := HexBytes{0x01, 0x02, 0x03}
	marshaled, err := json.Marshal(hb)
	c.Assert(err, qt.IsNil)
	c.Assert(string(marshaled), qt.Equals, `"0x010203"`)

	var back HexBytes
	c.Assert(json.Unmarshal(marshaled, &back), qt.IsNil)
	c.Assert(back, qt.DeepEquals, hb)
}

func TestHexBytesUnmarshalWithoutPrefix(t *testing.T) {
	c := qt.New(t)
	var back HexBytes
	c.Assert(json.Unmarshal([]byte(`"010203"`), &back), qt.IsNil)
	c.Assert(back, qt.DeepEquals, HexBytes{0x01, 0x02, 0x03})
}
