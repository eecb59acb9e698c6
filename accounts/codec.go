package accounts

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encodeRecord CBOR-encodes a buffer record for storage in the ledger,
// using the deterministic core profile so the same record always produces
// the same bytes (matters for the "determinism" invariant when a record is
// re-read and re-hashed). Mirrors the teacher's artifact-encoding helper.
func encodeRecord(v any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("accounts: encode record: %w", err)
	}
	return em.Marshal(v)
}

// decodeRecord decodes a CBOR-encoded buffer record.
func decodeRecord(data []byte, out any) error {
	if err := cbor.Unmarshal(data, out); err != nil {
		return fmt.Errorf("accounts: decode record: %w", err)
	}
	return nil
}
