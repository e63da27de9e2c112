package adt

import (
	"encoding/binary"

	addr "github.com/filecoin-project/go-address"
	"golang.org/x/xerrors"
)

// Keyer defines an interface required to put values in a Map.
type Keyer interface {
	Key() string
}

// Adapts an address as a mapping key.
type AddrKey addr.Address

func (kw AddrKey) Key() string {
	return string(addr.Address(kw).Bytes())
}

// ParseAddrKey recovers an address from a key produced by AddrKey.
func ParseAddrKey(k []byte) (addr.Address, error) {
	return addr.NewFromBytes(k)
}

// Adapts an unsigned integer as a mapping key.
// Big-endian encoding makes lexicographic key order match numeric order.
type UIntKey uint64

func (k UIntKey) Key() string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(k))
	return string(buf[:])
}

func ParseUIntKey(k []byte) (uint64, error) {
	if len(k) != 8 {
		return 0, xerrors.Errorf("uint key must be 8 bytes, got %d", len(k))
	}
	return binary.BigEndian.Uint64(k), nil
}

// Adapts a 32-bit counter (era, page, span index) as a mapping key.
type U32Key uint32

func (k U32Key) Key() string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(k))
	return string(buf[:])
}

func ParseU32Key(k []byte) (uint32, error) {
	if len(k) != 4 {
		return 0, xerrors.Errorf("u32 key must be 4 bytes, got %d", len(k))
	}
	return binary.BigEndian.Uint32(k), nil
}

// Adapts a string as a mapping key.
type StringKey string

func (k StringKey) Key() string {
	return string(k)
}

// RawKey is an already encoded key, as returned by iteration.
type RawKey []byte

func (k RawKey) Key() string {
	return string(k)
}
