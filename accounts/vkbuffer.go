package accounts

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// vkRecord is the on-ledger, CBOR-encoded form of a VK buffer account.
type vkRecord struct {
	Size     uint32
	Data     []byte
	Coverage []byte
	Ready    bool
}

func vkKey(id types.AccountID) []byte {
	return append([]byte(vkBufferPrefix), id[:]...)
}

// vkCache holds parsed VK headers keyed by account ID so a hot VK is not
// re-validated on every StepPhase call, per SPEC_FULL.md's domain-stack
// wiring note.
var vkCache *lru.Cache[types.AccountID, *wire.VerificationKey]

func init() {
	c, err := lru.New[types.AccountID, *wire.VerificationKey](256)
	if err != nil {
		panic("accounts: failed to construct vk cache: " + err.Error())
	}
	vkCache = c
}

// InitVkBuffer allocates a VK buffer of the declared size with ready=false,
// per §6's InitVkBuffer instruction. size must equal the fixed VK wire
// size; this verifier does not support arbitrary VK sizes.
func InitVkBuffer(l ledger.Ledger, id types.AccountID, size uint32) error {
	if size != config.VerificationKeySize {
		return fmt.Errorf("%w: vk buffer size %d != %d", ErrChunkOutOfRange, size, config.VerificationKeySize)
	}
	rec := vkRecord{
		Size:     size,
		Data:     make([]byte, size),
		Coverage: bitsetBytes(bitset.New(uint(size)), int(size)),
	}
	vkCache.Remove(id)
	return putVkRecord(l, id, &rec)
}

// WriteVkChunk copies bytes into the VK buffer at offset, tolerating
// out-of-order or overlapping chunk arrival (§5). Fails if the buffer is
// already finalized.
func WriteVkChunk(l ledger.Ledger, id types.AccountID, offset uint32, chunk []byte) error {
	rec, err := getVkRecord(l, id)
	if err != nil {
		return err
	}
	if rec.Ready {
		return fmt.Errorf("%w: vk buffer %s", ErrAlreadyFinalized, id)
	}
	if err := checkChunkRange(len(rec.Data), int(offset), len(chunk)); err != nil {
		return err
	}
	copy(rec.Data[offset:], chunk)

	bs := bitsetFromBytes(rec.Coverage, len(rec.Data))
	for i := 0; i < len(chunk); i++ {
		bs.Set(uint(offset) + uint(i))
	}
	rec.Coverage = bitsetBytes(bs, len(rec.Data))

	return putVkRecord(l, id, rec)
}

// FinalizeVk flips ready=true after verifying every byte of the buffer has
// been written at least once (§5's finalize-completeness requirement).
func FinalizeVk(l ledger.Ledger, id types.AccountID) error {
	rec, err := getVkRecord(l, id)
	if err != nil {
		return err
	}
	if rec.Ready {
		return nil
	}
	bs := bitsetFromBytes(rec.Coverage, len(rec.Data))
	if bs.Count() != uint(len(rec.Data)) {
		return fmt.Errorf("%w: vk buffer %s missing %d of %d bytes", ErrBufferNotReady, id, uint(len(rec.Data))-bs.Count(), len(rec.Data))
	}
	rec.Ready = true
	return putVkRecord(l, id, rec)
}

// LoadVK parses a finalized VK buffer into a wire.VerificationKey, using
// the package-level LRU cache to skip re-parsing a VK this process has
// already validated.
func LoadVK(l ledger.Ledger, id types.AccountID) (*wire.VerificationKey, error) {
	if vk, ok := vkCache.Get(id); ok {
		return vk, nil
	}
	rec, err := getVkRecord(l, id)
	if err != nil {
		return nil, err
	}
	if !rec.Ready {
		return nil, fmt.Errorf("%w: vk buffer %s not finalized", ErrBufferNotReady, id)
	}
	vk, err := wire.ParseVK(rec.Data)
	if err != nil {
		return nil, err
	}
	vkCache.Add(id, vk)
	return vk, nil
}

func getVkRecord(l ledger.Ledger, id types.AccountID) (*vkRecord, error) {
	raw, err := l.Get(vkKey(id))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%w: vk buffer %s", ErrNotFound, id)
		}
		return nil, err
	}
	var rec vkRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func putVkRecord(l ledger.Ledger, id types.AccountID, rec *vkRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return l.Set(vkKey(id), raw)
}
