// Package wire implements component 4.C: zero-copy parsers over the fixed-
// size VK and proof byte buffers. Every accessor computes its offset from a
// fixed layout table instead of copying the buffer into a Go struct — the
// buffers live in host-allocated memory the kernel cannot resize (§9), and
// Fr/G1 values are only materialized when a caller actually asks for them.
package wire

// encoding identifies how a G1 commitment slot is packed on the wire.
type encoding int

const (
	// flat is the 64-byte (x‖y) big-endian encoding used by proof
	// commitments.
	flat encoding = iota
	// limbed is the legacy 128-byte encoding (four 16-byte limbs per
	// coordinate) used by some VK commitments.
	limbed
)

func (e encoding) size() int {
	if e == limbed {
		return 128
	}
	return 64
}

// field describes one named slot in a fixed layout.
type field struct {
	name string
	size int
}

// layout precomputes byte offsets for an ordered list of fields.
type layout struct {
	fields  []field
	offsets map[string]int
	total   int
}

func buildLayout(fields []field) layout {
	offsets := make(map[string]int, len(fields))
	off := 0
	for _, f := range fields {
		offsets[f.name] = off
		off += f.size
	}
	return layout{fields: fields, offsets: offsets, total: off}
}

// offsetOf returns the byte offset and size of name; ok is false if name is
// unknown.
func (l layout) offsetOf(name string) (int, int, bool) {
	off, ok := l.offsets[name]
	if !ok {
		return 0, 0, false
	}
	for _, f := range l.fields {
		if f.name == name {
			return off, f.size, true
		}
	}
	return 0, 0, false
}
