package adt

import (
	"bytes"

	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// Map is a prefix-scoped region of a Store holding CBOR values.
// Iteration visits keys in lexicographic order of their encoding, which is stable across calls.
type Map struct {
	store  Store
	prefix []byte
}

// AsMap interprets the keys under prefix in s as a map.
func AsMap(s Store, prefix string) *Map {
	return &Map{store: s, prefix: []byte(prefix)}
}

func (m *Map) key(k []byte) []byte {
	out := make([]byte, 0, len(m.prefix)+len(k))
	return append(append(out, m.prefix...), k...)
}

func (m *Map) bounds() ([]byte, []byte) {
	return m.prefix, PrefixEnd(m.prefix)
}

// Put adds value `v` with key `k` to the map.
func (m *Map) Put(k Keyer, v cbg.CBORMarshaler) error {
	raw, err := encode(v)
	if err != nil {
		return xerrors.Errorf("failed to encode value for key %x in map %s: %w", k.Key(), m.prefix, err)
	}
	return m.PutRaw(k, raw)
}

// PutRaw stores already encoded bytes at `k`.
func (m *Map) PutRaw(k Keyer, raw []byte) error {
	if err := m.store.Set(m.key([]byte(k.Key())), raw); err != nil {
		return xerrors.Errorf("failed to set key %x in map %s: %w", k.Key(), m.prefix, err)
	}
	return nil
}

// Get puts the value at `k` into `out`.
func (m *Map) Get(k Keyer, out cbg.CBORUnmarshaler) (bool, error) {
	raw, found, err := m.GetRaw(k)
	if err != nil || !found {
		return found, err
	}
	if err := out.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return false, xerrors.Errorf("failed to decode value for key %x in map %s: %w", k.Key(), m.prefix, err)
	}
	return true, nil
}

// GetRaw returns the encoded value at `k`.
func (m *Map) GetRaw(k Keyer) ([]byte, bool, error) {
	raw, found, err := m.store.Get(m.key([]byte(k.Key())))
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get key %x in map %s: %w", k.Key(), m.prefix, err)
	}
	return raw, found, nil
}

// Has checks for the existence of a key without deserializing its value.
func (m *Map) Has(k Keyer) (bool, error) {
	_, found, err := m.GetRaw(k)
	return found, err
}

// Delete removes the value at `k`. Deleting an absent key is not an error.
func (m *Map) Delete(k Keyer) error {
	if err := m.store.Delete(m.key([]byte(k.Key()))); err != nil {
		return xerrors.Errorf("failed to delete key %x in map %s: %w", k.Key(), m.prefix, err)
	}
	return nil
}

// Pop removes the value at `k`, returning its encoding.
func (m *Map) Pop(k Keyer) ([]byte, bool, error) {
	raw, found, err := m.GetRaw(k)
	if err != nil || !found {
		return nil, found, err
	}
	return raw, true, m.Delete(k)
}

// NextAfter returns the first key of the map strictly greater than after, with its encoded value.
// A nil after returns the first key.
func (m *Map) NextAfter(after []byte) ([]byte, []byte, bool, error) {
	lower, upper := m.bounds()
	var seek []byte
	if after != nil {
		seek = m.key(after)
	}
	k, v, found, err := m.store.Seek(lower, upper, seek)
	if err != nil || !found {
		return nil, nil, false, err
	}
	return k[len(m.prefix):], v, true, nil
}

// ForEach iterates all entries in the map, deserializing each value in turn into `out` and then
// calling a function with the corresponding key.
// If the output parameter is nil, deserialization is skipped.
func (m *Map) ForEach(out cbg.CBORUnmarshaler, fn func(key []byte) error) error {
	lower, upper := m.bounds()
	return m.store.Iterate(lower, upper, func(k, v []byte) error {
		if out != nil {
			if err := out.UnmarshalCBOR(bytes.NewReader(v)); err != nil {
				return xerrors.Errorf("failed to decode value for key %x in map %s: %w", k, m.prefix, err)
			}
		}
		return fn(append([]byte(nil), k[len(m.prefix):]...))
	})
}

// ForEachRaw iterates all entries in the map without decoding them.
func (m *Map) ForEachRaw(fn func(key, raw []byte) error) error {
	lower, upper := m.bounds()
	return m.store.Iterate(lower, upper, func(k, v []byte) error {
		return fn(append([]byte(nil), k[len(m.prefix):]...), append([]byte(nil), v...))
	})
}

// CollectKeys returns every key in the map.
func (m *Map) CollectKeys() (out [][]byte, err error) {
	err = m.ForEach(nil, func(key []byte) error {
		out = append(out, key)
		return nil
	})
	return
}

// IsEmpty checks whether the map holds no entries.
func (m *Map) IsEmpty() (bool, error) {
	_, _, found, err := m.NextAfter(nil)
	return !found, err
}

// Value is a single storage item.
type Value struct {
	store Store
	key   []byte
}

func AsValue(s Store, key string) *Value {
	return &Value{store: s, key: []byte(key)}
}

func (v *Value) Get(out cbg.CBORUnmarshaler) (bool, error) {
	raw, found, err := v.store.Get(v.key)
	if err != nil || !found {
		return found, err
	}
	if err := out.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return false, xerrors.Errorf("failed to decode value %s: %w", v.key, err)
	}
	return true, nil
}

func (v *Value) Put(in cbg.CBORMarshaler) error {
	raw, err := encode(in)
	if err != nil {
		return xerrors.Errorf("failed to encode value %s: %w", v.key, err)
	}
	return v.store.Set(v.key, raw)
}

func (v *Value) Exists() (bool, error) {
	_, found, err := v.store.Get(v.key)
	return found, err
}

// Take reads the value into out and removes it.
func (v *Value) Take(out cbg.CBORUnmarshaler) (bool, error) {
	found, err := v.Get(out)
	if err != nil || !found {
		return found, err
	}
	return true, v.store.Delete(v.key)
}

func (v *Value) Kill() error {
	return v.store.Delete(v.key)
}
