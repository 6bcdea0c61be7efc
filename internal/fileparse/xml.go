package fileparse

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// newDecoder prepares an XML decoder for a translation file. UTF-16 input
// (marked by a BOM) is transcoded up front; any other declared encoding is
// handled through x/net's charset registry.
func newDecoder(buf []byte) (*xml.Decoder, error) {
	transcoded := false
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		buf = buf[len(bomUTF8):]
	case bytes.HasPrefix(buf, bomUTF16LE), bytes.HasPrefix(buf, bomUTF16BE):
		utf8Buf, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(buf)
		if err != nil {
			return nil, err
		}
		buf = utf8Buf
		transcoded = true
	}

	dec := xml.NewDecoder(bytes.NewReader(buf))
	dec.Entity = xml.HTMLEntity
	if transcoded {
		// the declaration still says UTF-16, but the bytes are UTF-8 now
		dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		}
	} else {
		dec.CharsetReader = charset.NewReaderLabel
	}
	return dec, nil
}

// innerText is the text content of an element, including the character
// data of nested inline elements, kept verbatim.
type innerText string

// UnmarshalXML implements xml.Unmarshaler
func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	*t = innerText(b.String())
	return nil
}

// attr returns the value of the first attribute with the given local name
func attr(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// blank reports whether s has no visible content
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
