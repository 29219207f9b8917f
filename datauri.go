package pngkit

import (
	"encoding/base64"
	"strings"
)

// MIMEType is the registered media type for PNG images.
const MIMEType = "image/png"

// DataURI wraps raw bytes in a data: URI with the given MIME type, using
// standard Base64 encoding. The MIME string is passed through verbatim; a
// malformed one yields a syntactically valid but useless URI.
func DataURI(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// EncodeDataURI encodes img to PNG and returns it as a data: URI, ready for
// inline embedding in HTML or CSS.
func EncodeDataURI(img *Image, opts *EncoderOptions) (string, error) {
	data, err := EncodeBytes(img, opts)
	if err != nil {
		return "", err
	}
	return DataURI(MIMEType, data), nil
}
