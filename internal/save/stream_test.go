package save

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestStreamPrimitivesRoundTrip(t *testing.T) {
	w := newWriter()
	w.Byte(0xab)
	w.Uint16(0xbeef)
	w.Int32(-1234567)
	w.Uint32(0xdeadbeef)
	w.Float32(float32(math.Pi))
	w.String("MHG.Button")
	w.String("")
	w.String("按鈕") // multi-byte UTF-8
	w.Bytes([]byte{1, 2, 3})
	w.Magic("redstone sux lol")

	r := newReader(bytes.NewReader(w.buf))

	if v, err := r.Byte(); err != nil || v != 0xab {
		t.Errorf("Byte = %v, %v", v, err)
	}
	if v, err := r.Uint16(); err != nil || v != 0xbeef {
		t.Errorf("Uint16 = %v, %v", v, err)
	}
	if v, err := r.Int32(); err != nil || v != -1234567 {
		t.Errorf("Int32 = %v, %v", v, err)
	}
	if v, err := r.Uint32(); err != nil || v != 0xdeadbeef {
		t.Errorf("Uint32 = %v, %v", v, err)
	}
	if v, err := r.Float32(); err != nil || v != float32(math.Pi) {
		t.Errorf("Float32 = %v, %v", v, err)
	}
	for _, want := range []string{"MHG.Button", "", "按鈕"} {
		if v, err := r.String(); err != nil || v != want {
			t.Errorf("String = %q, %v, want %q", v, err, want)
		}
	}
	if v, err := r.Bytes(3); err != nil || !bytes.Equal(v, []byte{1, 2, 3}) {
		t.Errorf("Bytes = %v, %v", v, err)
	}
	if err := r.Magic("redstone sux lol"); err != nil {
		t.Errorf("Magic: %v", err)
	}
}

func TestReaderTruncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*reader) error
	}{
		{"byte", nil, func(r *reader) error { _, err := r.Byte(); return err }},
		{"uint16", []byte{1}, func(r *reader) error { _, err := r.Uint16(); return err }},
		{"int32", []byte{1, 2, 3}, func(r *reader) error { _, err := r.Int32(); return err }},
		{"float32", []byte{1, 2}, func(r *reader) error { _, err := r.Float32(); return err }},
		{"bytes", []byte{1, 2}, func(r *reader) error { _, err := r.Bytes(5); return err }},
		{"string body", []byte{4, 0, 0, 0, 'a'}, func(r *reader) error { _, err := r.String(); return err }},
		{"string prefix", []byte{4, 0}, func(r *reader) error { _, err := r.String(); return err }},
		{"magic", []byte{'L', 'o'}, func(r *reader) error { return r.Magic("Logic World save") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(newReader(bytes.NewReader(tc.data)))
			if !errors.Is(err, ErrUnexpectedEOF) {
				t.Errorf("err = %v, want ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestReaderStringNegativeLength(t *testing.T) {
	w := newWriter()
	w.Int32(-1)
	_, err := newReader(bytes.NewReader(w.buf)).String()
	if !errors.Is(err, ErrInvalidCount) {
		t.Errorf("err = %v, want ErrInvalidCount", err)
	}
}

func TestReaderStringInvalidUTF8(t *testing.T) {
	w := newWriter()
	w.Int32(2)
	w.Bytes([]byte{0xc3, 0x28})
	_, err := newReader(bytes.NewReader(w.buf)).String()
	if !errors.Is(err, ErrInvalidText) {
		t.Errorf("err = %v, want ErrInvalidText", err)
	}
}

func TestReaderMagicMismatch(t *testing.T) {
	err := newReader(bytes.NewReader([]byte("Logic Earth save"))).Magic("Logic World save")
	if err == nil || errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("err = %v, want a comparison failure", err)
	}
}
