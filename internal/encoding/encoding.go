// Package encoding turns uploaded receipt files into UTF-8 text.
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

const sniffSize = 4096

// Charset names reported by Decode.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88591    = "ISO-8859-1"
	ISO885915   = "ISO-8859-15"
)

var boms = []struct {
	prefix  []byte
	charset string
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE},
}

// chardet names mapped to the decoders accepted for store exports.
var legacy = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"ISO-8859-1":   charmap.ISO8859_1,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// Decode sniffs the head of r and returns a UTF-8 reader over the whole
// input plus the charset it decided on. A byte-order mark wins, then valid
// UTF-8, then chardet's best guess among the Latin charsets. Anything else
// is read as windows-1252, the usual export charset of Mexican POS software.
func Decode(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == UTF8 {
			_, _ = br.Discard(len(bom.prefix))
			return br, UTF8, nil
		}

		endian := unicode.LittleEndian
		if bom.charset == UTF16BE {
			endian = unicode.BigEndian
		}

		return transform.NewReader(br, unicode.UTF16(endian, unicode.UseBOM).NewDecoder()), bom.charset, nil
	}

	if validUTF8(head, len(head) == sniffSize) {
		return br, UTF8, nil
	}

	charset := Windows1252

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if _, ok := legacy[res.Charset]; ok {
			charset = res.Charset
		}
	}

	return transform.NewReader(br, legacy[charset].NewDecoder()), charset, nil
}

// validUTF8 reports whether b is UTF-8. When b is a truncated window, up to
// three trailing bytes of a split rune are tolerated.
func validUTF8(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}

	if !truncated {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.RuneStart(b[len(b)-cut]) {
			return utf8.Valid(b[:len(b)-cut])
		}
	}

	return false
}
