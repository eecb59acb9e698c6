package accounts

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/types"
	"github.com/nicolaslara/solana-noir-verifier/wire"
)

// proofRecord is the on-ledger form of a proof buffer account. Per §6, the
// account stores the proof bytes immediately followed by the public-inputs
// vector; Data is that combined region and Coverage tracks which of its
// bytes have been written by a WriteProofChunk.
type proofRecord struct {
	ProofSize       uint32
	NumPublicInputs uint32
	Data            []byte
	Coverage        []byte
}

func proofKey(id types.AccountID) []byte {
	return append([]byte(proofBufferPrefix), id[:]...)
}

// InitProofBuffer allocates proof+public-input storage per §6's
// InitProofBuffer instruction.
func InitProofBuffer(l ledger.Ledger, id types.AccountID, proofSize, numPublicInputs uint32) error {
	if proofSize != config.ProofSize {
		return fmt.Errorf("%w: proof size %d != %d", ErrChunkOutOfRange, proofSize, config.ProofSize)
	}
	if numPublicInputs > config.MaxPublicInputs {
		return fmt.Errorf("%w: num_public_inputs %d exceeds max %d", ErrChunkOutOfRange, numPublicInputs, config.MaxPublicInputs)
	}
	total := int(proofSize) + int(numPublicInputs)*32
	rec := proofRecord{
		ProofSize:       proofSize,
		NumPublicInputs: numPublicInputs,
		Data:            make([]byte, total),
		Coverage:        bitsetBytes(bitset.New(uint(total)), total),
	}
	return putProofRecord(l, id, &rec)
}

// WriteProofChunk copies bytes into the combined proof+public-inputs region
// at offset. Chunks may arrive in any order (§5). Each call reads, updates
// and rewrites the whole buffer record, so concurrent calls on the same
// buffer are not synchronized here.
func WriteProofChunk(l ledger.Ledger, id types.AccountID, offset uint32, chunk []byte) error {
	rec, err := getProofRecord(l, id)
	if err != nil {
		return err
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

	return putProofRecord(l, id, rec)
}

// IsProofReady reports whether every byte of the proof+public-inputs region
// has been written. There is no explicit FinalizeProof instruction (§6) —
// readiness is simply full chunk coverage, checked by InitVerification.
func IsProofReady(l ledger.Ledger, id types.AccountID) (bool, error) {
	rec, err := getProofRecord(l, id)
	if err != nil {
		return false, err
	}
	bs := bitsetFromBytes(rec.Coverage, len(rec.Data))
	return bs.Count() == uint(len(rec.Data)), nil
}

// LoadProof parses the proof portion of a ready proof buffer.
func LoadProof(l ledger.Ledger, id types.AccountID) (*wire.Proof, error) {
	rec, err := getProofRecord(l, id)
	if err != nil {
		return nil, err
	}
	if ready, err := IsProofReady(l, id); err != nil {
		return nil, err
	} else if !ready {
		return nil, fmt.Errorf("%w: proof buffer %s incomplete", ErrBufferNotReady, id)
	}
	return wire.ParseProof(rec.Data[:rec.ProofSize])
}

// LoadPublicInputs parses the public-inputs portion of a ready proof buffer.
func LoadPublicInputs(l ledger.Ledger, id types.AccountID) (*wire.PublicInputs, error) {
	rec, err := getProofRecord(l, id)
	if err != nil {
		return nil, err
	}
	if ready, err := IsProofReady(l, id); err != nil {
		return nil, err
	} else if !ready {
		return nil, fmt.Errorf("%w: proof buffer %s incomplete", ErrBufferNotReady, id)
	}
	piBytes := rec.Data[rec.ProofSize:]
	return wire.ParsePublicInputs(piBytes, int(rec.NumPublicInputs))
}

func getProofRecord(l ledger.Ledger, id types.AccountID) (*proofRecord, error) {
	raw, err := l.Get(proofKey(id))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%w: proof buffer %s", ErrNotFound, id)
		}
		return nil, err
	}
	var rec proofRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func putProofRecord(l ledger.Ledger, id types.AccountID, rec *proofRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return l.Set(proofKey(id), raw)
}
