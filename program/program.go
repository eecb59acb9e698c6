// Package program implements component G: the instruction dispatch table a
// real Solana program entrypoint would expose, per §6 of the specification.
// Each handler is a thin adapter wiring an instruction's payload to the
// accounts, phases, and receipt packages; the heavy lifting already lives
// there.
package program

import (
	"errors"
	"fmt"

	"github.com/nicolaslara/solana-noir-verifier/accounts"
	"github.com/nicolaslara/solana-noir-verifier/config"
	"github.com/nicolaslara/solana-noir-verifier/ledger"
	"github.com/nicolaslara/solana-noir-verifier/log"
	"github.com/nicolaslara/solana-noir-verifier/phases"
	"github.com/nicolaslara/solana-noir-verifier/receipt"
	"github.com/nicolaslara/solana-noir-verifier/syscall"
	"github.com/nicolaslara/solana-noir-verifier/types"
)

// ErrNotReady is returned when InitVerification is attempted before both
// the VK and proof buffers it references are fully uploaded.
var ErrNotReady = errors.New("program: referenced buffer is not ready")

// BufferKind selects which buffer kind CloseBuffer operates on, since a
// single AccountID namespace is shared across vk/proof/state records.
type BufferKind int

const (
	BufferKindVk BufferKind = iota
	BufferKindProof
	BufferKindState
)

// InitVkBuffer handles §6's InitVkBuffer{size} instruction.
func InitVkBuffer(l ledger.Ledger, vkAccount types.AccountID, size uint32) error {
	log.Debugw("init vk buffer", "account", vkAccount.String(), "size", size)
	return accounts.InitVkBuffer(l, vkAccount, size)
}

// WriteVkChunk handles §6's WriteVkChunk{offset, bytes} instruction. The
// owner-signer check named in §6 is a transaction-layer concern outside
// this simulation's scope; callers are expected to have already verified
// the signer before invoking this handler.
func WriteVkChunk(l ledger.Ledger, vkAccount types.AccountID, offset uint32, chunk []byte) error {
	return accounts.WriteVkChunk(l, vkAccount, offset, chunk)
}

// FinalizeVk handles §6's FinalizeVk instruction.
func FinalizeVk(l ledger.Ledger, vkAccount types.AccountID) error {
	return accounts.FinalizeVk(l, vkAccount)
}

// InitProofBuffer handles §6's InitProofBuffer{proof_size, num_public_inputs}
// instruction.
func InitProofBuffer(l ledger.Ledger, proofAccount types.AccountID, proofSize, numPublicInputs uint32) error {
	log.Debugw("init proof buffer", "account", proofAccount.String(), "proof_size", proofSize, "num_public_inputs", numPublicInputs)
	return accounts.InitProofBuffer(l, proofAccount, proofSize, numPublicInputs)
}

// WriteProofChunk handles §6's WriteProofChunk{offset, bytes} instruction.
func WriteProofChunk(l ledger.Ledger, proofAccount types.AccountID, offset uint32, chunk []byte) error {
	return accounts.WriteProofChunk(l, proofAccount, offset, chunk)
}

// InitVerification handles §6's InitVerification{vk_account, proof_account}
// instruction: it requires both referenced buffers to be fully uploaded
// before allocating the state buffer at phase=PhaseInit.
func InitVerification(l ledger.Ledger, stateAccount, vkAccount, proofAccount types.AccountID) error {
	if _, err := accounts.LoadVK(l, vkAccount); err != nil {
		return fmt.Errorf("%w: vk account %s: %v", ErrNotReady, vkAccount, err)
	}
	ready, err := accounts.IsProofReady(l, proofAccount)
	if err != nil {
		return err
	}
	if !ready {
		return fmt.Errorf("%w: proof account %s", ErrNotReady, proofAccount)
	}
	log.Infow("init verification", "state_account", stateAccount.String(), "vk_account", vkAccount.String(), "proof_account", proofAccount.String())
	return accounts.InitStateBuffer(l, stateAccount, vkAccount, proofAccount)
}

// StepPhase handles §6's StepPhase{phase_index} instruction.
func StepPhase(l ledger.Ledger, stateAccount types.AccountID, phaseIndex config.Phase) error {
	return phases.Step(l, stateAccount, phaseIndex)
}

// CreateReceipt handles §6's CreateReceipt{public_inputs_digest} instruction.
// It returns the PDA the receipt was written to.
func CreateReceipt(l ledger.Ledger, stateAccount types.AccountID, publicInputsDigest [32]byte, slot uint64) (types.AccountID, error) {
	pda, err := receipt.Create(l, stateAccount, publicInputsDigest, slot)
	if err != nil {
		return types.AccountID{}, err
	}
	log.Infow("created receipt", "state_account", stateAccount.String(), "receipt_account", pda.String())
	return pda, nil
}

// PublicInputsDigest computes the keccak256 digest §6's CreateReceipt
// instruction expects as its public_inputs_digest argument, derived from
// the proof account's uploaded public-inputs region.
func PublicInputsDigest(l ledger.Ledger, proofAccount types.AccountID) ([32]byte, error) {
	pi, err := accounts.LoadPublicInputs(l, proofAccount)
	if err != nil {
		return [32]byte{}, err
	}
	return syscall.Keccak256(pi.Bytes()), nil
}

// CloseBuffer handles §6's CloseBuffer instruction for the given kind. The
// owner-signer check is left to the transaction layer, as with
// WriteVkChunk/WriteProofChunk above.
func CloseBuffer(l ledger.Ledger, kind BufferKind, account types.AccountID) error {
	switch kind {
	case BufferKindVk:
		return accounts.CloseVkBuffer(l, account)
	case BufferKindProof:
		return accounts.CloseProofBuffer(l, account)
	case BufferKindState:
		return accounts.CloseStateBuffer(l, account)
	default:
		return fmt.Errorf("program: unknown buffer kind %d", kind)
	}
}
