// Package extract pulls plain text out of uploaded resumes.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

var (
	// ErrUnsupported is returned for payloads that are not PDF, DOCX or plain text.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrNoText is returned when a supported file holds no readable text,
	// typically a scanned PDF.
	ErrNoText = errors.New("no extractable text")
)

var extensionTypes = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDOCX,
	".txt":  MimeText,
	".md":   MimeText,
	".text": MimeText,
}

// ooxmlParts maps the main part of an Office Open XML zip to its type.
var ooxmlParts = map[string]string{
	"word/document.xml":    MimeDOCX,
	"xl/workbook.xml":      mimeXLSX,
	"ppt/presentation.xml": mimePPTX,
}

// Text extracts plain text from an uploaded resume. mimeType is the sniffed or
// declared type; fileName breaks ties for zip containers and octet streams.
func Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		raw string
		err error
	)
	switch normalized := NormalizeMimeType(mimeType, fileName, data); normalized {
	case MimePDF:
		raw, err = pdfText(data)
	case MimeDOCX:
		raw, err = docxText(data)
	case MimeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid utf-8", ErrUnsupported)
		}
		raw = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
	if err != nil {
		return "", err
	}

	text := normalizeText(raw)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	part, err := zipPart(data, "word/document.xml")
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer part.Close()
	return wordprocessingText(part)
}

func zipPart(data []byte, name string) (io.ReadCloser, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("%s not found", name)
}

// wordprocessingText walks WordprocessingML, emitting run text, tabs and
// line breaks, and a newline per paragraph.
func wordprocessingText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteByte('\t')
			case "br", "cr":
				buf.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}
	return buf.String(), nil
}

// normalizeText trims every line and collapses runs of blank lines to one.
func normalizeText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// NormalizeMimeType maps a sniffed content type plus file name onto one of
// the supported types where possible.
func NormalizeMimeType(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	byExt := extensionTypes[strings.ToLower(filepath.Ext(fileName))]
	switch clean {
	case "application/zip":
		if mapped := ooxmlType(data); mapped != "" {
			return mapped
		}
		if byExt == MimeDOCX {
			return MimeDOCX
		}
	case "", "application/octet-stream":
		if byExt != "" {
			return byExt
		}
	}
	return clean
}

func ooxmlType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if mapped, ok := ooxmlParts[strings.ReplaceAll(f.Name, "\\", "/")]; ok {
			return mapped
		}
	}
	return ""
}
