// Package encoding normalizes imported CSV files to UTF-8. Dashboard
// users upload spreadsheets saved by Excel and friends, which arrive in
// anything from BOM-prefixed UTF-8 to Windows-1252.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how much of the stream is sampled for detection.
const peekSize = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// utf16BOMs maps a UTF-16 byte-order mark prefix to its decoder.
var utf16BOMs = []struct {
	prefix  []byte
	decoder func() *encoding.Decoder
}{
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// charsets maps chardet results to decoders for the single-byte encodings
// expected from spreadsheet exports.
var charsets = map[string]*charmap.Charmap{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader wraps r in a reader that yields UTF-8. A UTF-8 BOM is
// stripped, UTF-16 is decoded according to its BOM, valid UTF-8 passes
// through untouched, and anything else goes through chardet with a
// Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	sample, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(sample, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	}

	for _, bom := range utf16BOMs {
		if bytes.HasPrefix(sample, bom.prefix) {
			return transform.NewReader(br, bom.decoder()), nil
		}
	}

	if utf8.Valid(sample) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if cm, ok := charsets[result.Charset]; ok {
			return transform.NewReader(br, cm.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
