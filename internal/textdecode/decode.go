package textdecode

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported in Result.Encoding.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingCP1252  = "windows-1252"
	EncodingLatin1  = "iso-8859-1"
	EncodingLossy   = "utf-8-lossy"
)

// Result is the outcome of Decode.
type Result struct {
	// Text is the decoded content, always valid UTF-8.
	Text string

	// Encoding names the decoder that produced Text.
	Encoding string

	// BOM is true when the input started with a byte order mark.
	BOM bool
}

// candidate is one step of the fallback chain.
type candidate struct {
	name    string
	decoder func() *encoding.Decoder
	strict  bool
}

// fallbacks are tried in order after UTF-8 and BOM detection fail.
// Strict candidates are rejected if decoding produced replacement runes.
var fallbacks = []candidate{
	{name: EncodingCP1252, decoder: charmap.Windows1252.NewDecoder, strict: true},
	{name: EncodingLatin1, decoder: charmap.ISO8859_1.NewDecoder, strict: false},
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file content to text with ordered fallback:
// UTF-8 (optionally with BOM), UTF-16 with BOM, Windows-1252, ISO-8859-1,
// and finally a lossy UTF-8 conversion. It never fails.
func Decode(data []byte) Result {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return decodeUTF8(data[len(bomUTF8):], true)
	case bytes.HasPrefix(data, bomUTF16LE):
		if r, ok := decodeWith(data, EncodingUTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()); ok {
			r.BOM = true
			return r
		}
	case bytes.HasPrefix(data, bomUTF16BE):
		if r, ok := decodeWith(data, EncodingUTF16BE, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()); ok {
			r.BOM = true
			return r
		}
	}

	if utf8.Valid(data) {
		return Result{Text: string(data), Encoding: EncodingUTF8}
	}

	for _, c := range fallbacks {
		r, ok := decodeWith(data, c.name, c.decoder())
		if !ok {
			continue
		}
		if c.strict && strings.ContainsRune(r.Text, utf8.RuneError) {
			continue
		}
		return r
	}

	return Result{Text: strings.ToValidUTF8(string(data), "\uFFFD"), Encoding: EncodingLossy}
}

// DecodeString is Decode returning only the text.
func DecodeString(data []byte) string {
	return Decode(data).Text
}

// decodeUTF8 handles content after a UTF-8 BOM, degrading to lossy output
// if the remainder is not valid.
func decodeUTF8(data []byte, bom bool) Result {
	if utf8.Valid(data) {
		return Result{Text: string(data), Encoding: EncodingUTF8, BOM: bom}
	}
	return Result{Text: strings.ToValidUTF8(string(data), "\uFFFD"), Encoding: EncodingLossy, BOM: bom}
}

// decodeWith runs a single x/text decoder over data.
func decodeWith(data []byte, name string, dec *encoding.Decoder) (Result, bool) {
	out, err := dec.Bytes(data)
	if err != nil {
		return Result{}, false
	}
	return Result{Text: string(out), Encoding: name}, true
}
