// Package docsource turns uploaded documents into the plain text and table
// rows the extraction pipeline consumes. It reads .docx containers directly
// (zip + WordprocessingML) and passes plain-text files through untouched.
package docsource

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
)

// Document is the ingestion result: body text plus table cell rows, with
// table content kept out of the body.
type Document struct {
	FullText  string
	TableRows [][]string
}

// FromUpload dispatches on the file extension.
// Returns domain.ErrUnsupported for formats the pipeline cannot read.
func FromUpload(filename string, data []byte) (Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return FromDocx(data)
	case ".txt", ".text", ".md":
		return FromText(string(data)), nil
	default:
		return Document{}, fmt.Errorf("file %q: %w", filename, domain.ErrUnsupported)
	}
}

// FromText wraps already-plain text; there are no tables to scan.
func FromText(text string) Document {
	return Document{FullText: strings.TrimSpace(text)}
}

// FromDocx parses a .docx file: paragraphs become the body text, one per
// line, and table cells become rows.
func FromDocx(data []byte) (Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("open docx container: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Document{}, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}

	return Document{}, errors.New("docx container has no word/document.xml")
}

// parseDocumentXML streams WordprocessingML, accumulating paragraph text
// outside tables and cell text inside them. Nested tables are flattened
// into the enclosing cell.
func parseDocumentXML(r io.Reader) (Document, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		para       strings.Builder
		rows       [][]string
		row        []string
		cell       strings.Builder
		tableDepth int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					row = nil
				}
			case "tc":
				if tableDepth == 1 {
					cell.Reset()
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return Document{}, fmt.Errorf("parse document.xml: %w", err)
				}
				if tableDepth > 0 {
					cell.WriteString(text)
				} else {
					para.WriteString(text)
				}
			case "tab":
				if tableDepth > 0 {
					cell.WriteString(" ")
				} else {
					para.WriteString(" ")
				}
			case "br":
				if tableDepth > 0 {
					cell.WriteString("\n")
				} else {
					para.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tr":
				if tableDepth == 1 && len(row) > 0 {
					rows = append(rows, row)
				}
			case "tc":
				if tableDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "p":
				if tableDepth == 0 {
					if s := strings.TrimSpace(para.String()); s != "" {
						paragraphs = append(paragraphs, s)
					}
					para.Reset()
				} else {
					cell.WriteString("\n")
				}
			}
		}
	}

	return Document{
		FullText:  strings.Join(paragraphs, "\n"),
		TableRows: rows,
	}, nil
}
