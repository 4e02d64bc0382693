package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// AllowedResumeExtensions are the only formats a match run processes.
var AllowedResumeExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
}

// IsAllowedResume reports whether filename carries an allowed extension.
func IsAllowedResume(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && AllowedResumeExtensions[ext]
}

type TextExtractor interface {
	ExtractText(filePath string) (string, error)
	ExtractBytes(filename string, data []byte) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText routes by extension: PDF, DOC/DOCX, anything else is read as
// plain text.
func (e *textExtractor) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(filePath))
		}
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		f, r, err := pdf.Open(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: failed to open PDF: %v", ErrExtraction, err)
		}
		defer f.Close()
		return extractPDF(r)
	case ".doc", ".docx":
		doc, err := docx.ReadDocxFile(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: failed to open document: %v", ErrExtraction, err)
		}
		defer doc.Close()
		return documentText(doc.Editable().GetContent())
	default:
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		return string(data), nil
	}
}

// ExtractBytes is ExtractText for content already in memory.
func (e *textExtractor) ExtractBytes(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", fmt.Errorf("%w: failed to read PDF: %v", ErrExtraction, err)
		}
		return extractPDF(r)
	case ".doc", ".docx":
		doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", fmt.Errorf("%w: failed to read document: %v", ErrExtraction, err)
		}
		defer doc.Close()
		return documentText(doc.Editable().GetContent())
	default:
		return string(data), nil
	}
}

// extractPDF joins page texts with a newline; pages without text are skipped.
func extractPDF(r *pdf.Reader) (text string, err error) {
	// the pdf package panics on some malformed streams
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: malformed PDF: %v", ErrExtraction, rec)
		}
	}()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// documentText flattens WordprocessingML into plain text: one line per
// paragraph, tabs and breaks kept, drawings and embedded objects dropped.
func documentText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false

	var sb strings.Builder
	var inText bool
	skipDepth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed document body: %v", ErrExtraction, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "drawing", "pict", "object":
				skipDepth++
			case "t":
				inText = skipDepth == 0
			case "tab":
				if skipDepth == 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if skipDepth == 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "drawing", "pict", "object":
				skipDepth--
			case "t":
				inText = false
			case "p":
				if skipDepth == 0 {
					sb.WriteByte('\n')
				}
			case "tc":
				if skipDepth == 0 {
					sb.WriteByte('\t')
				}
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
