package adt

import (
	"github.com/cockroachdb/pebble"
	"golang.org/x/xerrors"
)

// Txn is a Store that buffers writes in an indexed batch until Commit.
// It supports nested rollback through Snapshot and RevertToSnapshot: every write
// journals the prior value of its key, and reverting replays the journal backwards.
type Txn struct {
	batch   *pebble.Batch
	journal []undo
	closed  bool
}

type undo struct {
	key     []byte
	prev    []byte
	existed bool
}

var _ Store = (*Txn)(nil)

func (t *Txn) Get(key []byte) ([]byte, bool, error) {
	return readerGet(t.batch, key)
}

func (t *Txn) Set(key, value []byte) error {
	if err := t.record(key); err != nil {
		return err
	}
	return t.batch.Set(key, value, nil)
}

func (t *Txn) Delete(key []byte) error {
	if err := t.record(key); err != nil {
		return err
	}
	return t.batch.Delete(key, nil)
}

func (t *Txn) Seek(lower, upper, after []byte) ([]byte, []byte, bool, error) {
	return readerSeek(t.batch, lower, upper, after)
}

func (t *Txn) Iterate(lower, upper []byte, fn func(key, value []byte) error) error {
	return readerIterate(t.batch, lower, upper, fn)
}

func (t *Txn) record(key []byte) error {
	prev, existed, err := t.Get(key)
	if err != nil {
		return err
	}
	t.journal = append(t.journal, undo{key: append([]byte(nil), key...), prev: prev, existed: existed})
	return nil
}

// Snapshot returns an identifier for the current state of the transaction.
func (t *Txn) Snapshot() int {
	return len(t.journal)
}

// RevertToSnapshot undoes every write made since the snapshot was taken.
func (t *Txn) RevertToSnapshot(id int) error {
	if id < 0 || id > len(t.journal) {
		return xerrors.Errorf("invalid snapshot %d, journal has %d entries", id, len(t.journal))
	}
	for i := len(t.journal) - 1; i >= id; i-- {
		u := t.journal[i]
		var err error
		if u.existed {
			err = t.batch.Set(u.key, u.prev, nil)
		} else {
			err = t.batch.Delete(u.key, nil)
		}
		if err != nil {
			return xerrors.Errorf("failed to revert key %x: %w", u.key, err)
		}
	}
	t.journal = t.journal[:id]
	return nil
}

// Commit durably applies the transaction's writes. The transaction may not be used afterwards.
func (t *Txn) Commit() error {
	if t.closed {
		return xerrors.New("transaction already closed")
	}
	if err := t.batch.Commit(pebble.Sync); err != nil {
		return xerrors.Errorf("failed to commit transaction: %w", err)
	}
	return t.Close()
}

// Close discards any uncommitted writes. It is safe to call after Commit.
func (t *Txn) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.journal = nil
	return t.batch.Close()
}
