package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors reported while walking an encoded stream.
var (
	ErrBadSignature = errors.New("chunk: missing PNG signature")
	ErrTruncated    = errors.New("chunk: truncated stream")
	ErrCRCMismatch  = errors.New("chunk: crc mismatch")
)

// A Chunk is one framed unit read back from an encoded stream.
// Data is a sub-slice of the reader's input, not a copy.
type Chunk struct {
	Type Type
	Data []byte
	CRC  uint32
}

// Reader walks the chunks of an in-memory PNG stream, verifying the stored
// CRC of each chunk against a recomputation. It validates framing only and
// never interprets pixel data.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned after the PNG signature.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		return nil, ErrBadSignature
	}
	return &Reader{data: data, off: len(Signature)}, nil
}

// Offset returns the byte offset of the next chunk header.
func (r *Reader) Offset() int {
	return r.off
}

// Next returns the next chunk in the stream. It returns io.EOF once the
// input is exhausted, a wrapped ErrTruncated when the stream ends inside a
// chunk, and a wrapped ErrCRCMismatch when the stored checksum does not
// match the recomputed one.
func (r *Reader) Next() (Chunk, error) {
	if r.off == len(r.data) {
		return Chunk{}, io.EOF
	}
	if len(r.data)-r.off < HeaderSize {
		return Chunk{}, fmt.Errorf("%w: %d byte header at offset %d", ErrTruncated, len(r.data)-r.off, r.off)
	}
	length := binary.BigEndian.Uint32(r.data[r.off:])
	var typ Type
	copy(typ[:], r.data[r.off+4:])

	// 64-bit arithmetic: length comes from the wire and may exceed int
	// on 32-bit platforms.
	need := int64(HeaderSize) + int64(length) + FooterSize
	if int64(len(r.data)-r.off) < need {
		return Chunk{}, fmt.Errorf("%w: chunk %s needs %d bytes at offset %d, have %d",
			ErrTruncated, typ, need, r.off, len(r.data)-r.off)
	}
	total := int(need)

	payload := r.data[r.off+HeaderSize : r.off+HeaderSize+int(length)]
	stored := binary.BigEndian.Uint32(r.data[r.off+HeaderSize+int(length):])
	if got := crcOf(typ, payload); got != stored {
		return Chunk{}, fmt.Errorf("%w: chunk %s has %08x, computed %08x", ErrCRCMismatch, typ, stored, got)
	}

	r.off += total
	return Chunk{Type: typ, Data: payload, CRC: stored}, nil
}
