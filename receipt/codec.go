package receipt

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

func encodeRecord(v any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("receipt: encode record: %w", err)
	}
	return em.Marshal(v)
}

func decodeRecord(data []byte, out any) error {
	if err := cbor.Unmarshal(data, out); err != nil {
		return fmt.Errorf("receipt: decode record: %w", err)
	}
	return nil
}
