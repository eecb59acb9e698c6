// Package pebbleledger backs ledger.Ledger with cockroachdb/pebble, for
// runs that need the account store to survive process restarts.
package pebbleledger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/nicolaslara/solana-noir-verifier/ledger"
)

// PebbleLedger implements ledger.Ledger.
type PebbleLedger struct {
	db *pebble.DB
}

var _ ledger.Ledger = (*PebbleLedger)(nil)

// New opens (creating if necessary) a pebble store at path.
func New(path string) (*PebbleLedger, error) {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, err
	}
	opts := &pebble.Options{
		Levels: []pebble.LevelOptions{
			{Compression: pebble.SnappyCompression},
		},
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &PebbleLedger{db: db}, nil
}

func get(reader pebble.Reader, k []byte) ([]byte, error) {
	defer handleClosedDBPanic()
	v, closer, err := reader.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	v2 := bytes.Clone(v)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return v2, nil
}

func (p *PebbleLedger) Get(k []byte) ([]byte, error) {
	return get(p.db, k)
}

func (p *PebbleLedger) Has(k []byte) (bool, error) {
	_, err := get(p.db, k)
	if errors.Is(err, ledger.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleLedger) Set(k, v []byte) error {
	defer handleClosedDBPanic()
	return p.db.Set(k, v, pebble.Sync)
}

func (p *PebbleLedger) Delete(k []byte) error {
	defer handleClosedDBPanic()
	return p.db.Delete(k, pebble.Sync)
}

func (p *PebbleLedger) Iterate(prefix []byte, callback func(k, v []byte) bool) (err error) {
	defer handleClosedDBPanic()
	iterOptions := &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	}
	iter, err := p.db.NewIter(iterOptions)
	if err != nil {
		return err
	}
	defer func() {
		errC := iter.Close()
		if err != nil {
			return
		}
		err = errC
	}()

	for iter.First(); iter.Valid(); iter.Next() {
		localKey := iter.Key()[len(prefix):]
		if cont := callback(localKey, iter.Value()); !cont {
			break
		}
	}
	return iter.Error()
}

func (p *PebbleLedger) Close() error {
	defer handleClosedDBPanic()
	return p.db.Close()
}

func keyUpperBound(b []byte) []byte {
	end := bytes.Clone(b)
	for i := len(end) - 1; i >= 0; i-- {
		end[i] = end[i] + 1
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// handleClosedDBPanic recovers from operations against a closed pebble
// handle so a racing Close doesn't crash the caller's goroutine.
func handleClosedDBPanic() {
	if r := recover(); r != nil {
		stack := []string{}
		for i := range 32 {
			pc, file, line, ok := runtime.Caller(i)
			if !ok {
				break
			}
			fn := runtime.FuncForPC(pc)
			funcName := ""
			if fn != nil {
				funcName = fn.Name()
			}
			stack = append(stack, fmt.Sprintf("%s\n\t%s:%d", funcName, file, line))
		}
		if strings.Contains(fmt.Sprintf("%v", r), "closed") {
			return
		}
		panic(fmt.Sprintf("panic during ledger operation: %v: %s", r, strings.Join(stack, "\n")))
	}
}
