package zkcrypto

import (
	"bytes"
	"encoding/binary"
)

// bcsWriter writes the subset of BCS needed for the zkLogin signature:
// ULEB128 lengths, strings, byte vectors, u8 and little-endian u64.
type bcsWriter struct {
	buf bytes.Buffer
}

func (w *bcsWriter) uleb128(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.buf.WriteByte(b)
			return
		}
		w.buf.WriteByte(b | 0x80)
	}
}

func (w *bcsWriter) bytes(b []byte) {
	w.uleb128(uint64(len(b)))
	w.buf.Write(b)
}

func (w *bcsWriter) string(s string) {
	w.bytes([]byte(s))
}

func (w *bcsWriter) strings(ss []string) {
	w.uleb128(uint64(len(ss)))
	for _, s := range ss {
		w.string(s)
	}
}

func (w *bcsWriter) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *bcsWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}
