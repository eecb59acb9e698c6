// Package accounts implements component F: the three on-chain buffer
// lifecycles from spec.md §3/§5/§6 (VK buffer, proof buffer, state buffer),
// persisted through a ledger.Ledger with prefixed keys the way the teacher's
// storage package namespaces its artifacts (p/, b/, vb/, ag/, ...). Every
// exported function here is a pure function of (ledger.Ledger, ids...,
// payload) -> error or (value, error), with no global mutable state other
// than the read-through VK header cache.
package accounts

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"

	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrBufferNotReady is returned when an operation requires a buffer that
// has not finished uploading (VK not finalized, proof/public-inputs
// incomplete).
var ErrBufferNotReady = errors.New("accounts: buffer not ready")

// ErrAlreadyFinalized is returned by a write against a VK buffer that has
// already been finalized; the VK buffer is immutable once ready (§5).
var ErrAlreadyFinalized = errors.New("accounts: buffer already finalized")

// ErrChunkOutOfRange is returned when a chunk write falls outside the
// buffer's declared size.
var ErrChunkOutOfRange = errors.New("accounts: chunk out of range")

// ErrNotFound is returned when an account record does not exist.
var ErrNotFound = errors.New("accounts: record not found")

const (
	vkBufferPrefix    = "vk/"
	proofBufferPrefix = "pf/"
	stateBufferPrefix = "st/"
)

// bitsetBytes serializes the first n bits of bs as a packed byte slice, for
// CBOR-encoding a chunk-coverage bitmap alongside its buffer record.
func bitsetBytes(bs *bitset.BitSet, n int) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if bs.Test(uint(i)) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// bitsetFromBytes reconstructs the bitset bitsetBytes produced.
func bitsetFromBytes(b []byte, n int) *bitset.BitSet {
	bs := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		if i/8 < len(b) && b[i/8]&(1<<uint(i%8)) != 0 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// NewAccountID allocates a fresh pseudo-account address for tooling that
// has no real Solana keypair to derive one from (mirroring the teacher's
// server-side uuid.New() allocation of new census IDs). The UUID's 16 bytes
// occupy the low half of the AccountID; the high half stays zero.
func NewAccountID() types.AccountID {
	var id types.AccountID
	u := uuid.New()
	copy(id[16:], u[:])
	return id
}

func checkChunkRange(bufLen, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > bufLen {
		return fmt.Errorf("%w: offset %d len %d exceeds buffer size %d", ErrChunkOutOfRange, offset, n, bufLen)
	}
	return nil
}
