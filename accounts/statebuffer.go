package accounts

import (
	"errors"
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// StateRecord is the on-ledger form of a state buffer account: the header
// (current phase, verdict) plus an opaque checkpoint blob whose shape is
// owned entirely by the phases package (§4.E: "a header ... followed by a
// fixed-size checkpoint region").
type StateRecord struct {
	Phase        config.Phase
	VkAccount    types.AccountID
	ProofAccount types.AccountID
	Verdict      *bool
	Checkpoint   []byte
}

func stateKey(id types.AccountID) []byte {
	return append([]byte(stateBufferPrefix), id[:]...)
}

// InitStateBuffer allocates a state buffer in PhaseInit, per §6's
// InitVerification instruction.
func InitStateBuffer(l ledger.Ledger, id, vkAccount, proofAccount types.AccountID) error {
	rec := StateRecord{
		Phase:        config.PhaseInit,
		VkAccount:    vkAccount,
		ProofAccount: proofAccount,
	}
	return PutStateRecord(l, id, &rec)
}

// GetStateRecord loads a state buffer's header and checkpoint blob.
func GetStateRecord(l ledger.Ledger, id types.AccountID) (*StateRecord, error) {
	raw, err := l.Get(stateKey(id))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%w: state buffer %s", ErrNotFound, id)
		}
		return nil, err
	}
	var rec StateRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutStateRecord persists a state buffer's header and checkpoint blob.
func PutStateRecord(l ledger.Ledger, id types.AccountID, rec *StateRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return l.Set(stateKey(id), raw)
}

// CloseVkBuffer, CloseProofBuffer and CloseStateBuffer implement §6's
// CloseBuffer instruction for each buffer kind, returning rent by deleting
// the backing ledger record. VK buffer cache entries are dropped too so a
// closed-then-reused account ID never serves a stale cached header.
func CloseVkBuffer(l ledger.Ledger, id types.AccountID) error {
	vkCache.Remove(id)
	return l.Delete(vkKey(id))
}

func CloseProofBuffer(l ledger.Ledger, id types.AccountID) error {
	return l.Delete(proofKey(id))
}

func CloseStateBuffer(l ledger.Ledger, id types.AccountID) error {
	return l.Delete(stateKey(id))
}
