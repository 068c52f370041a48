package domain

import (
	"encoding/binary"
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// Little-endian, length-prefixed record layout. Strings and addresses carry a
// u32 byte length; numbers are fixed width. Decoders tolerate trailing bytes
// so a shrunken record's stale tail never breaks reads of the live prefix.

func stringSize(s string) int {
	return 4 + len(s)
}

func addrSize(a ledger.Address) int {
	return stringSize(string(a))
}

func appendU8(b []byte, v uint8) []byte {
	return append(b, v)
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

func appendI64(b []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(b, uint64(v))
}

func appendString(b []byte, s string) []byte {
	b = appendU32(b, uint32(len(s)))
	return append(b, s...)
}

func appendAddr(b []byte, a ledger.Address) []byte {
	return appendString(b, string(a))
}

// reader walks a record buffer, remembering the first failure so call sites
// can decode a full struct and check the error once.
type reader struct {
	data []byte
	off  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) fail(what string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: truncated %s at offset %d", ErrCorruptRecord, what, r.off)
	}
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	if r.off+1 > len(r.data) {
		r.fail("u8")
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *reader) boolean() bool {
	return r.u8() != 0
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.data) {
		r.fail("u32")
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	if r.off+8 > len(r.data) {
		r.fail("u64")
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v
}

func (r *reader) i64() int64 {
	return int64(r.u64())
}

func (r *reader) stringv() string {
	n := int(r.u32())
	if r.err != nil {
		return ""
	}
	if n < 0 || r.off+n > len(r.data) {
		r.fail("string")
		return ""
	}
	v := string(r.data[r.off : r.off+n])
	r.off += n
	return v
}

func (r *reader) addr() ledger.Address {
	return ledger.Address(r.stringv())
}
