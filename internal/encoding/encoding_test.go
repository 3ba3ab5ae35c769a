package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/bitebudget/internal/encoding"
)

const header = "Producto;Cantidad;Precio\nJamón serrano;1;89,90\nPiña;2;18,00\n"

func decodeAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.Decode(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDecode(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []byte
		charsets []string
	}{
		{name: "UTF8", input: []byte(header), charsets: []string{encoding.UTF8}},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, header...), charsets: []string{encoding.UTF8}},
		{name: "UTF16LE", input: utf16le, charsets: []string{encoding.UTF16LE}},
		{name: "UTF16BE", input: utf16be, charsets: []string{encoding.UTF16BE}},
		{
			name:     "Latin",
			input:    latin1,
			charsets: []string{encoding.Windows1252, encoding.ISO88591, encoding.ISO885915},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := decodeAll(t, tt.input)

			assert.Equal(t, header, got)
			assert.Contains(t, tt.charsets, charset)
		})
	}
}

func TestDecode_LargerThanSniffWindow(t *testing.T) {
	line := "Leche entera;1;25,00\n"
	input := bytes.Repeat([]byte(line), 500)

	got, charset := decodeAll(t, input)

	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, string(input), got)
}

func TestDecode_Empty(t *testing.T) {
	got, charset := decodeAll(t, nil)

	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_RuneSplitAtWindowEdge(t *testing.T) {
	// 4095 ASCII bytes then "ñ" puts its two bytes across the sniff boundary.
	input := append(bytes.Repeat([]byte("a"), 4095), "ñ;1;2\n"...)

	got, charset := decodeAll(t, input)

	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, string(input), got)
}
