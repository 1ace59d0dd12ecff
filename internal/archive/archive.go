// Package archive writes uncompressed ZIP archives.
//
// Output is byte-for-byte reproducible: entries are STORED (method 0), every
// timestamp is zero and entries are laid out in the order they are added.
// Zip64, encryption, comments and directory entries are not supported.
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
)

// ErrInvalidArgument is returned when an entry cannot be represented in a
// plain (non-Zip64) archive, or when the writer is used after Close. It is
// the same value as bitmap.ErrInvalidArgument.
var ErrInvalidArgument = bitmap.ErrInvalidArgument

const (
	localHeaderSig   = 0x04034b50
	centralHeaderSig = 0x02014b50
	endOfCentralSig  = 0x06054b50

	localHeaderLen   = 30
	centralHeaderLen = 46
	endOfCentralLen  = 22

	zipVersion = 20
	maxUint16  = math.MaxUint16
	maxUint32  = math.MaxUint32
)

// Entry is a single file to store in an archive.
type Entry struct {
	Name string
	Data []byte
}

// Writer streams entries to an underlying io.Writer.
//
// Local headers and data are written as soon as Add is called; the central
// directory is buffered and emitted by Close.
type Writer struct {
	w       io.Writer
	offset  uint64
	central bytes.Buffer
	count   int
	closed  bool
}

// NewWriter returns a Writer that writes the archive to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Add writes one STORED entry.
//
// The name is written as-is (UTF-8). Callers are responsible for uniqueness.
func (zw *Writer) Add(name string, data []byte) error {
	if zw.closed {
		return fmt.Errorf("%w: add after close", ErrInvalidArgument)
	}
	if len(name) > maxUint16 {
		return fmt.Errorf("%w: entry name is %d bytes, limit is %d", ErrInvalidArgument, len(name), maxUint16)
	}
	if zw.count+1 > maxUint16 {
		return fmt.Errorf("%w: more than %d entries", ErrInvalidArgument, maxUint16)
	}
	if uint64(len(data)) > maxUint32 {
		return fmt.Errorf("%w: entry %s is too large", ErrInvalidArgument, name)
	}
	if zw.offset > maxUint32 {
		return fmt.Errorf("%w: archive exceeds 4 GiB", ErrInvalidArgument)
	}

	crc := CRC32(data)
	size := uint32(len(data))

	var hdr [localHeaderLen]byte
	le := binary.LittleEndian
	le.PutUint32(hdr[0:], localHeaderSig)
	le.PutUint16(hdr[4:], zipVersion)
	// flags, method, time and date stay zero
	le.PutUint32(hdr[14:], crc)
	le.PutUint32(hdr[18:], size)
	le.PutUint32(hdr[22:], size)
	le.PutUint16(hdr[26:], uint16(len(name)))

	if _, err := zw.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("failed to write local header for %s: %w", name, err)
	}
	if _, err := io.WriteString(zw.w, name); err != nil {
		return fmt.Errorf("failed to write name for %s: %w", name, err)
	}
	if _, err := zw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write data for %s: %w", name, err)
	}

	var cen [centralHeaderLen]byte
	le.PutUint32(cen[0:], centralHeaderSig)
	le.PutUint16(cen[4:], zipVersion) // version made by
	le.PutUint16(cen[6:], zipVersion) // version needed
	le.PutUint32(cen[16:], crc)
	le.PutUint32(cen[20:], size)
	le.PutUint32(cen[24:], size)
	le.PutUint16(cen[28:], uint16(len(name)))
	le.PutUint32(cen[42:], uint32(zw.offset))
	zw.central.Write(cen[:])
	zw.central.WriteString(name)

	zw.offset += uint64(localHeaderLen + len(name) + len(data))
	zw.count++
	return nil
}

// Close writes the central directory and the end of central directory
// record. It does not close the underlying writer.
func (zw *Writer) Close() error {
	if zw.closed {
		return fmt.Errorf("%w: archive already closed", ErrInvalidArgument)
	}
	zw.closed = true

	if zw.offset > maxUint32 || uint64(zw.central.Len()) > maxUint32 {
		return fmt.Errorf("%w: archive exceeds 4 GiB", ErrInvalidArgument)
	}

	var end [endOfCentralLen]byte
	le := binary.LittleEndian
	le.PutUint32(end[0:], endOfCentralSig)
	le.PutUint16(end[8:], uint16(zw.count))
	le.PutUint16(end[10:], uint16(zw.count))
	le.PutUint32(end[12:], uint32(zw.central.Len()))
	le.PutUint32(end[16:], uint32(zw.offset))

	if _, err := zw.w.Write(zw.central.Bytes()); err != nil {
		return fmt.Errorf("failed to write central directory: %w", err)
	}
	if _, err := zw.w.Write(end[:]); err != nil {
		return fmt.Errorf("failed to write end of central directory: %w", err)
	}
	return nil
}

// Build returns a complete archive holding entries in order.
//
// An empty list yields a valid empty archive (just the 22-byte end record).
func Build(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := NewWriter(&buf)
	for _, e := range entries {
		if err := zw.Add(e.Name, e.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
