// Package chunk implements the PNG chunk framing layer: the fixed file
// signature, chunk type tags, and the length/type/payload/CRC wire format
// every PNG chunk uses.
//
// A chunk is laid out as
//
//	[length:4 BE][type:4][payload:length][crc:4 BE]
//
// where length counts payload bytes only and the CRC-32 (IEEE polynomial,
// the zlib/PNG variant) covers the type tag plus the payload. The package
// assembles and walks chunks; it knows nothing about pixel data.
package chunk

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// Signature is the fixed 8-byte magic every PNG stream starts with.
const Signature = "\x89PNG\r\n\x1a\n"

// HeaderSize is the size of a chunk header (length field + type tag).
const HeaderSize = 8

// FooterSize is the size of a chunk footer (the CRC field).
const FooterSize = 4

// MaxPayload is the largest payload the 32-bit length field can describe.
const MaxPayload = 1<<32 - 1

// Type is a 4-byte PNG chunk type tag.
type Type [4]byte

// Chunk type tags used by this module. Critical chunks use upper-case
// letters; ancillary tags are listed for tooling that walks foreign files.
var (
	TypeIHDR = Type{'I', 'H', 'D', 'R'}
	TypePLTE = Type{'P', 'L', 'T', 'E'}
	TypeIDAT = Type{'I', 'D', 'A', 'T'}
	TypeIEND = Type{'I', 'E', 'N', 'D'}
)

// String returns the tag as a 4-character ASCII string.
func (t Type) String() string {
	return string(t[:])
}

// ErrPayloadTooLarge reports a payload whose size does not fit the chunk
// length field.
var ErrPayloadTooLarge = errors.New("chunk: payload exceeds 32-bit length field")

// crcOf computes the PNG CRC-32 over the type tag followed by the payload.
func crcOf(typ Type, payload []byte) uint32 {
	return crc32.Update(crc32.ChecksumIEEE(typ[:]), crc32.IEEETable, payload)
}

// Append frames payload as a single chunk of the given type and appends the
// framed bytes to dst, returning the extended slice. A nil payload produces
// a valid zero-length chunk. Append is pure: it reads its inputs, writes
// only to dst, and fails only when the payload cannot be described by the
// 32-bit length field.
func Append(dst []byte, typ Type, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > MaxPayload {
		return dst, ErrPayloadTooLarge
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, typ[:]...)
	dst = append(dst, payload...)
	return binary.BigEndian.AppendUint32(dst, crcOf(typ, payload)), nil
}
