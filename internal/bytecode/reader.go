package bytecode

import (
	"encoding/binary"
	"errors"
)

var errShortRead = errors.New("read past end of code array")

// reader is the decode cursor over a method's code array. All multi-byte
// values are big-endian, and every read is checked against the declared
// length; the cursor never moves backwards.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) pos() int { return r.off }

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) u8() (byte, error) {
	if r.off+1 > len(r.data) {
		return 0, errShortRead
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) s8() (int8, error) {
	b, err := r.u8()
	return int8(b), err
}

func (r *reader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, errShortRead
	}
	v := binary.BigEndian.Uint16(r.data[r.off : r.off+2])
	r.off += 2
	return v, nil
}

func (r *reader) s16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) s32() (int32, error) {
	if r.off+4 > len(r.data) {
		return 0, errShortRead
	}
	v := binary.BigEndian.Uint32(r.data[r.off : r.off+4])
	r.off += 4
	return int32(v), nil
}

// skip advances the cursor without interpreting the bytes.
func (r *reader) skip(n int) error {
	if r.off+n > len(r.data) {
		return errShortRead
	}
	r.off += n
	return nil
}

// align4 skips the padding bytes before a jump-table payload so that the
// cursor lands on the next multiple of 4 relative to the start of the
// code array.
func (r *reader) align4() error {
	pad := (4 - r.off%4) % 4
	return r.skip(pad)
}
