package adt

import (
	"bytes"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// Store defines an interface required to back the ADTs in this package.
// Keys are visited in lexicographic byte order.
type Store interface {
	// Get returns the value at key, or false if it is absent.
	Get(key []byte) ([]byte, bool, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	// Seek returns the first entry in [lower, upper) whose key is strictly greater than after.
	// A nil after starts at lower.
	Seek(lower, upper, after []byte) (key []byte, value []byte, found bool, err error)
	// Iterate calls fn for every entry in [lower, upper), in key order.
	Iterate(lower, upper []byte, fn func(key, value []byte) error) error
}

var ErrReadOnly = xerrors.New("store is read only")

// DB is the chain state database.
type DB struct {
	db *pebble.DB
}

// Open opens (or creates) a chain state database in a directory.
func Open(dir string) (*DB, error) {
	return open(dir, &pebble.Options{})
}

// OpenInMemory opens an empty database backed by memory.
// This store is appropriate for most kinds of testing.
func OpenInMemory() (*DB, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(dir string, opts *pebble.Options) (*DB, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, xerrors.Errorf("failed to open state db at %q: %w", dir, err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Checkpoint writes a consistent copy of the database to a new directory.
func (d *DB) Checkpoint(dir string) error {
	if err := d.db.Checkpoint(dir); err != nil {
		return xerrors.Errorf("failed to checkpoint state db to %q: %w", dir, err)
	}
	return nil
}

// NewTxn starts a transaction over the database. Nothing is persisted until Commit.
func (d *DB) NewTxn() *Txn {
	return &Txn{batch: d.db.NewIndexedBatch()}
}

// NewView returns a read-only, point-in-time view of the database.
// Views are safe for concurrent reads.
func (d *DB) NewView() *View {
	return &View{snap: d.db.NewSnapshot()}
}

// View is a read-only Store over a database snapshot.
type View struct {
	snap *pebble.Snapshot
}

var _ Store = (*View)(nil)

func (v *View) Get(key []byte) ([]byte, bool, error) {
	return readerGet(v.snap, key)
}

func (v *View) Set(_, _ []byte) error {
	return ErrReadOnly
}

func (v *View) Delete(_ []byte) error {
	return ErrReadOnly
}

func (v *View) Seek(lower, upper, after []byte) ([]byte, []byte, bool, error) {
	return readerSeek(v.snap, lower, upper, after)
}

func (v *View) Iterate(lower, upper []byte, fn func(key, value []byte) error) error {
	return readerIterate(v.snap, lower, upper, fn)
}

func (v *View) Close() error {
	return v.snap.Close()
}

func readerGet(r pebble.Reader, key []byte) ([]byte, bool, error) {
	val, closer, err := r.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get key %x: %w", key, err)
	}
	out := append([]byte(nil), val...)
	return out, true, closer.Close()
}

func readerSeek(r pebble.Reader, lower, upper, after []byte) ([]byte, []byte, bool, error) {
	it, err := r.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, nil, false, xerrors.Errorf("failed to open iterator: %w", err)
	}
	var valid bool
	if after == nil {
		valid = it.First()
	} else {
		valid = it.SeekGE(after)
		if valid && bytes.Equal(it.Key(), after) {
			valid = it.Next()
		}
	}
	if !valid {
		return nil, nil, false, closeIter(it, nil)
	}
	key := append([]byte(nil), it.Key()...)
	value := append([]byte(nil), it.Value()...)
	return key, value, true, closeIter(it, nil)
}

func readerIterate(r pebble.Reader, lower, upper []byte, fn func(key, value []byte) error) (err error) {
	it, err := r.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return xerrors.Errorf("failed to open iterator: %w", err)
	}
	defer func() { err = closeIter(it, err) }()
	for valid := it.First(); valid; valid = it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return nil
}

func closeIter(it *pebble.Iterator, err error) error {
	if iterErr := it.Error(); err == nil && iterErr != nil {
		err = iterErr
	}
	if closeErr := it.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	return err
}

// PrefixEnd returns the smallest key greater than every key starting with prefix.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func encode(v cbg.CBORMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
