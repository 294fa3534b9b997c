// Package extract pulls plain text out of uploaded study notes.
package extract

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var SupportedExtensions = []string{".txt", ".pdf"}

// ExtractText returns the text of a .txt or .pdf upload, or "" when the file
// is unsupported or unreadable. It never panics on malformed input.
func ExtractText(filename string, data []byte) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return plainText(data)
	case ".pdf":
		return pdfText(data)
	default:
		return ""
	}
}

func plainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}

func pdfText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.TrimSpace(strings.Join(pages, "\n"))
}
