package types

import "encoding/hex"

// AccountID identifies a simulated on-chain account (VK buffer, proof
// buffer, state buffer, or receipt) the way a Solana pubkey would: a fixed
// 32-byte address, opaque to every package except ledger/accounts.
type AccountID [32]byte

// String renders the account ID as a hex string for logging.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero address.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// HexBytes is a byte slice that marshals to JSON as a hex string, used for
// digests and other opaque on-wire byte blobs.
type HexBytes []byte

// Hex returns the hexadecimal string representation.
func (b HexBytes) Hex() string {
	return hex.EncodeToString(b)
}

// MarshalJSON implements json.Marshaler, rendering the bytes as a 0x-prefixed
// hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + hex.EncodeToString(b) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for the 0x-prefixed hex form.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return hex.InvalidByteError(0)
	}
	s = s[1 : len(s)-1]
	s = trimHexPrefix(s)
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
