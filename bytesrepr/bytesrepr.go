// Package bytesrepr implements the canonical binary encoding used for
// consensus-sensitive values: little-endian fixed-width integers,
// u32-length-prefixed strings and byte slices, and single-tag-byte options.
// The encoding carries no self-description; readers must know the expected
// shape and reject anything that deviates from it.
package bytesrepr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

var (
	// ErrEarlyEndOfStream is returned when the input ends before the value
	// being decoded is complete.
	ErrEarlyEndOfStream = errors.New("bytesrepr: early end of stream")

	// ErrFormatting is returned when the input is long enough but does not
	// conform to the encoding (bad tag byte, invalid UTF-8, ...).
	ErrFormatting = errors.New("bytesrepr: formatting error")

	// ErrLeftOverBytes is returned by top-level decoders when input remains
	// after the value has been fully decoded.
	ErrLeftOverBytes = errors.New("bytesrepr: leftover bytes")
)

// Option tag bytes. Stable wire values, never renumbered.
const (
	OptionNoneTag byte = 0
	OptionSomeTag byte = 1
)

// Writer accumulates the encoding of a compound value. The zero value is
// ready to use.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated encoding. The returned slice aliases the
// writer's buffer; the writer must not be reused afterwards.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

func (w *Writer) WriteU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteU64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

// WriteBytes writes a u32 length prefix followed by the raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteRaw appends bytes with no length prefix. Callers use this for
// fixed-size fields whose length is implied by the type.
func (w *Writer) WriteRaw(b []byte) { w.buf = append(w.buf, b...) }

// WriteString writes the string as u32-length-prefixed UTF-8.
func (w *Writer) WriteString(s string) { w.WriteBytes([]byte(s)) }

// WriteOptionU32 writes a None tag, or a Some tag followed by the value.
func (w *Writer) WriteOptionU32(v *uint32) {
	if v == nil {
		w.WriteU8(OptionNoneTag)
		return
	}
	w.WriteU8(OptionSomeTag)
	w.WriteU32(*v)
}

// Reader decodes values from a byte slice, consuming input as it goes.
type Reader struct {
	buf []byte
}

// NewReader returns a reader over buf. The reader does not copy buf.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Remainder returns the not-yet-consumed input.
func (r *Reader) Remainder() []byte { return r.buf }

// Finish returns ErrLeftOverBytes unless the reader has consumed all input.
func (r *Reader) Finish() error {
	if len(r.buf) != 0 {
		return fmt.Errorf("%w: %d trailing", ErrLeftOverBytes, len(r.buf))
	}
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if len(r.buf) < n {
		return nil, ErrEarlyEndOfStream
	}
	out := r.buf[:n]
	r.buf = r.buf[n:]
	return out, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool byte %#x", ErrFormatting, b)
	}
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadBytes decodes a u32-length-prefixed byte slice. The result is a copy,
// safe to retain after the reader's input is discarded.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: length %d out of range", ErrFormatting, n)
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadRaw consumes exactly n bytes with no length prefix.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrFormatting)
	}
	return string(b), nil
}

func (r *Reader) ReadOptionU32() (*uint32, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case OptionNoneTag:
		return nil, nil
	case OptionSomeTag:
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: invalid option tag %#x", ErrFormatting, tag)
	}
}
