package ahm

import (
	"bytes"
	"io"

	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/xerrors"
)

var ErrSnapshotChecksum = xerrors.New("snapshot checksum mismatch")

// WriteSnapshot writes the encoded snapshot preceded by its sha256 checksum.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	buf := new(bytes.Buffer)
	if err := snap.MarshalCBOR(buf); err != nil {
		return xerrors.Errorf("failed to encode snapshot: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	if _, err := w.Write(sum[:]); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadSnapshot reads a snapshot written by WriteSnapshot, verifying its checksum.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var sum [sha256.Size]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, xerrors.Errorf("failed to read snapshot checksum: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if sha256.Sum256(data) != sum {
		return nil, ErrSnapshotChecksum
	}
	var snap Snapshot
	if err := snap.UnmarshalCBOR(bytes.NewReader(data)); err != nil {
		return nil, xerrors.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
