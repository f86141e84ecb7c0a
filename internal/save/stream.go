package save

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// reader pulls fixed-width little-endian fields off a save byte stream.
// Every read is exact: a stream that ends mid-field is ErrUnexpectedEOF,
// never a zero value.
type reader struct {
	src io.Reader
	buf [4]byte
}

func newReader(src io.Reader) *reader {
	return &reader{src: src}
}

// fill reads exactly n bytes into the scratch buffer (n <= 4).
func (r *reader) fill(n int) error {
	if _, err := io.ReadFull(r.src, r.buf[:n]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Byte reads 1 unsigned byte.
func (r *reader) Byte() (byte, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// Uint16 reads 2 bytes little-endian. Used for dictionary type ids.
func (r *reader) Uint16() (uint16, error) {
	if err := r.fill(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

// Int32 reads 4 bytes as little-endian int32.
func (r *reader) Int32() (int32, error) {
	if err := r.fill(4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

// Uint32 reads 4 bytes little-endian unsigned. Used for component addresses.
func (r *reader) Uint32() (uint32, error) {
	if err := r.fill(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

// Float32 reads a 4-byte little-endian IEEE 754 float.
func (r *reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Bytes reads exactly n raw bytes.
func (r *reader) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.src, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEOF
		}
		return nil, err
	}
	return b, nil
}

// String reads an int32 byte-length prefix followed by that many UTF-8
// bytes. A negative length or non-UTF-8 payload is a decode error.
func (r *reader) String() (string, error) {
	n, err := r.Int32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: string length %d", ErrInvalidCount, n)
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q", ErrInvalidText, b)
	}
	return string(b), nil
}

// Magic reads len(want) raw ASCII bytes and compares them against the
// expected literal. No length prefix; used for the header and footer only.
func (r *reader) Magic(want string) error {
	got, err := r.Bytes(len(want))
	if err != nil {
		return err
	}
	if string(got) != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

// writer builds a save byte stream in memory. All multi-byte writes are
// little-endian, mirroring reader field for field.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 256)}
}

func (w *writer) Byte(v byte) {
	w.buf = append(w.buf, v)
}

func (w *writer) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) Int32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// String writes an int32 byte-length prefix followed by the UTF-8 bytes.
func (w *writer) String(s string) {
	w.Int32(int32(len(s)))
	w.buf = append(w.buf, s...)
}

// Magic writes the raw ASCII bytes of a header/footer literal, unprefixed.
func (w *writer) Magic(s string) {
	w.buf = append(w.buf, s...)
}
