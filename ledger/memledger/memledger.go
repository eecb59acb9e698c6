// Package memledger is an in-memory ledger.Ledger, used by package tests
// and anywhere a pebble-backed store would be overkill.
package memledger

import (
	"sort"
	"strings"
	"sync"

	"github.com/nicolaslara/solana-noir-verifier/ledger"
)

// MemLedger is safe for concurrent use.
type MemLedger struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New returns an empty MemLedger.
func New() *MemLedger {
	return &MemLedger{data: make(map[string][]byte)}
}

func (m *MemLedger) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ledger.ErrNotFound
	}
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemLedger) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *MemLedger) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MemLedger) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *MemLedger) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	p := string(prefix)
	for k := range m.data {
		if strings.HasPrefix(k, p) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	type kv struct {
		k, v []byte
	}
	snapshot := make([]kv, 0, len(keys))
	for _, k := range keys {
		snapshot = append(snapshot, kv{k: []byte(k[len(p):]), v: m.data[k]})
	}
	m.mu.RUnlock()

	for _, e := range snapshot {
		if !fn(e.k, e.v) {
			break
		}
	}
	return nil
}

func (m *MemLedger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
