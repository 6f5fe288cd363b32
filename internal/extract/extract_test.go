package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jordan Lee</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go and Kubernetes engineer</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func TestTextFromZipDocx(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": documentXML})

	text, err := Text(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "Jordan Lee\nGo and Kubernetes engineer" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestTextRejectsPlainZip(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := Text(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextPlain(t *testing.T) {
	text, err := Text(context.Background(), []byte("  Summary: SQL and Python  \n"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "Summary: SQL and Python" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestNormalizeMimeTypeByExtension(t *testing.T) {
	tests := []struct {
		mime, name, want string
	}{
		{"application/octet-stream", "cv.pdf", MimePDF},
		{"application/octet-stream", "cv.docx", MimeDOCX},
		{"", "cv.txt", MimeText},
		{"image/png", "cv.png", "image/png"},
	}
	for _, tt := range tests {
		if got := NormalizeMimeType(tt.mime, tt.name, nil); got != tt.want {
			t.Fatalf("NormalizeMimeType(%q, %q) = %q, want %q", tt.mime, tt.name, got, tt.want)
		}
	}
}

func TestTextDocxTabsAndBreaks(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Skills</w:t><w:tab/><w:t>Go, SQL</w:t></w:r></w:p>` +
		`<w:p></w:p><w:p></w:p>` +
		`<w:p><w:r><w:t>Acme</w:t><w:br/><w:t>2021 - 2024</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildZip(t, map[string]string{"word/document.xml": body})

	text, err := Text(context.Background(), data, MimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if want := "Skills\tGo, SQL\n\nAcme\n2021 - 2024"; text != want {
		t.Fatalf("unexpected text %q, want %q", text, want)
	}
}

func TestTextReportsEmptyContent(t *testing.T) {
	if _, err := Text(context.Background(), []byte(" \n\t\n"), MimeText, "blank.txt"); !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestTextHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("hello"), MimeText, "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
