package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Python, Kubernetes</w:t></w:r></w:p>
<w:p><w:r><w:drawing><w:t>logo caption</w:t></w:drawing></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Acme</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>6 years</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
</w:body>
</w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// buildDocx writes a minimal WordprocessingML package.
func buildDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestTextExtractor_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("Experience: 3-5 years"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTextExtractor().ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "Experience: 3-5 years" {
		t.Errorf("ExtractText() = %q", got)
	}
}

func TestTextExtractor_UnknownExtensionIsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NOTES")
	if err := os.WriteFile(path, []byte("Go, Rust"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTextExtractor().ExtractText(path)
	if err != nil || got != "Go, Rust" {
		t.Errorf("ExtractText() = %q, %v", got, err)
	}
}

func TestTextExtractor_MissingFileIsAnError(t *testing.T) {
	for _, name := range []string{"missing.pdf", "missing.docx", "missing.txt"} {
		_, err := NewTextExtractor().ExtractText(filepath.Join(t.TempDir(), name))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("%s: error = %v, want ErrFileNotFound", name, err)
		}
	}
}

func TestTextExtractor_UnreadablePDFIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := NewTextExtractor().ExtractText(path)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("ExtractText() error = %v, want ErrExtraction", err)
	}
	if text != "" {
		t.Errorf("ExtractText() leaked %q as document text", text)
	}
}

func TestTextExtractor_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	if err := os.WriteFile(path, buildDocx(t), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTextExtractor().ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	for _, want := range []string{"Jane Doe", "Skills: Python, Kubernetes", "Acme", "6 years"} {
		if !strings.Contains(got, want) {
			t.Errorf("ExtractText() missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "logo caption") {
		t.Errorf("ExtractText() kept drawing text: %q", got)
	}
}

func TestTextExtractor_DocxFromMemory(t *testing.T) {
	got, err := NewTextExtractor().ExtractBytes("resume.docx", buildDocx(t))
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if !strings.Contains(got, "Jane Doe") {
		t.Errorf("ExtractBytes() = %q", got)
	}
}

func TestTextExtractor_LegacyDocFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.doc")
	if err := os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTextExtractor().ExtractText(path); !errors.Is(err, ErrExtraction) {
		t.Errorf("ExtractText() error = %v, want ErrExtraction", err)
	}
}

func TestIsAllowedResume(t *testing.T) {
	tests := map[string]bool{
		"cv.pdf":     true,
		"cv.PDF":     true,
		"cv.doc":     true,
		"cv.docx":    true,
		"cv.txt":     false,
		"cv":         false,
		"cv.pdf.zip": false,
	}
	for name, want := range tests {
		if got := IsAllowedResume(name); got != want {
			t.Errorf("IsAllowedResume(%q) = %v, want %v", name, got, want)
		}
	}
}
