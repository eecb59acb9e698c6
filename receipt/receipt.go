// Package receipt implements component H: deriving and recording the
// "receipt" program-derived address downstream programs read to learn a
// verification's outcome, per spec.md §6.
package receipt

import (
	"errors"
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/accounts"
	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/syscall"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrNotTerminal is returned when CreateReceipt is attempted on a state
// buffer that has not reached a verdict (§6: "only valid on a terminal
// state buffer with verdict=true").
var ErrNotTerminal = errors.New("receipt: state buffer is not terminal with verdict=true")

// ErrAlreadyExists is returned by Create when a receipt already exists at
// the derived PDA. §9's open question resolves receipt lifecycle as
// write-once-per-(VK, public inputs): a receipt is never overwritten or
// implicitly refreshed once created (see DESIGN.md).
var ErrAlreadyExists = errors.New("receipt: already exists")

const receiptPrefix = "rc/"

// Record is the persisted receipt account payload (§6: "stores {slot,
// verdict}").
type Record struct {
	Slot    uint64
	Verdict bool
}

// DerivePDA computes keccak256("receipt" ‖ vk_account ‖ keccak256(public_inputs))
// exactly as §6 specifies, seeding a deterministic program-derived address
// for the (VK, public inputs) pair.
func DerivePDA(vkAccount types.AccountID, publicInputsDigest [32]byte) types.AccountID {
	return types.AccountID(syscall.Keccak256([]byte("receipt"), vkAccount[:], publicInputsDigest[:]))
}

func receiptKey(id types.AccountID) []byte {
	return append([]byte(receiptPrefix), id[:]...)
}

// Create implements §6's CreateReceipt instruction: it requires the state
// buffer to be terminal with verdict=true, derives the PDA from the state
// buffer's VK account and the given public-inputs digest, and persists a
// {slot, verdict} record there. A receipt already present at that PDA is
// left untouched and reported as ErrAlreadyExists (write-once-per-(VK, PI)).
func Create(l ledger.Ledger, stateID types.AccountID, publicInputsDigest [32]byte, slot uint64) (types.AccountID, error) {
	rec, err := accounts.GetStateRecord(l, stateID)
	if err != nil {
		return types.AccountID{}, err
	}
	if rec.Phase != config.PhaseDone || rec.Verdict == nil || !*rec.Verdict {
		return types.AccountID{}, fmt.Errorf("%w: state buffer %s", ErrNotTerminal, stateID)
	}

	pda := DerivePDA(rec.VkAccount, publicInputsDigest)

	if has, err := l.Has(receiptKey(pda)); err != nil {
		return types.AccountID{}, err
	} else if has {
		return types.AccountID{}, fmt.Errorf("%w: pda %s", ErrAlreadyExists, pda)
	}

	raw, err := encodeRecord(&Record{Slot: slot, Verdict: *rec.Verdict})
	if err != nil {
		return types.AccountID{}, err
	}
	if err := l.Set(receiptKey(pda), raw); err != nil {
		return types.AccountID{}, err
	}
	return pda, nil
}

// Load reads a receipt record by its PDA.
func Load(l ledger.Ledger, pda types.AccountID) (*Record, error) {
	raw, err := l.Get(receiptKey(pda))
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := decodeRecord(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close deletes a receipt record, returning its rent (§6's CloseBuffer).
func Close(l ledger.Ledger, pda types.AccountID) error {
	return l.Delete(receiptKey(pda))
}
