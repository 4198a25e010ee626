package xmlutils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/beevik/etree"

	"fjacquet/facturx-edit/internal/editerror"
)

// Validate classifies data as well-formed XML or not. It is a pure gate:
// invalid input is reported with the parser's diagnostic position, never
// repaired. A nil return means the bytes parse cleanly with exactly one
// root element.
func Validate(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return malformed(data, dec.InputOffset(), err)
		}
		switch tok := tok.(type) {
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(tok)) > 0 {
				line, col := position(data, dec.InputOffset())
				return &editerror.MalformedXMLError{
					Msg:    "character data outside root element",
					Line:   line,
					Column: col,
				}
			}
		case xml.StartElement:
			if depth == 0 {
				if seenRoot {
					line, col := position(data, dec.InputOffset())
					return &editerror.MalformedXMLError{
						Msg:    "multiple root elements",
						Line:   line,
						Column: col,
					}
				}
				seenRoot = true
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if !seenRoot {
		return &editerror.MalformedXMLError{Msg: "no root element found", Line: 1, Column: 1}
	}
	return nil
}

// Parse validates data and returns the parsed document tree for reuse by
// the codec. The returned error, when non-nil, is always a
// *editerror.MalformedXMLError.
func Parse(data []byte) (*etree.Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &editerror.MalformedXMLError{Msg: err.Error()}
	}
	return doc, nil
}

// malformed converts a decoder error into a MalformedXMLError carrying the
// line reported by the parser and the column derived from the byte offset.
func malformed(data []byte, offset int64, err error) *editerror.MalformedXMLError {
	line, col := position(data, offset)
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &editerror.MalformedXMLError{Msg: syn.Msg, Line: syn.Line, Column: col}
	}
	return &editerror.MalformedXMLError{Msg: err.Error(), Line: line, Column: col}
}

// position translates a byte offset into 1-based line and column numbers.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = 1 + bytes.Count(prefix, []byte{'\n'})
	last := bytes.LastIndexByte(prefix, '\n')
	col = len(bytes.Runes(prefix[last+1:])) + 1
	return line, col
}
