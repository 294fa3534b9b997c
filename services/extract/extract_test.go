package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{name: "txt", filename: "notes.txt", data: []byte("ABCs first.\nSafety second."), want: "ABCs first.\nSafety second."},
		{name: "txt uppercase ext", filename: "NOTES.TXT", data: []byte("hello"), want: "hello"},
		{name: "txt invalid utf8 dropped", filename: "notes.txt", data: []byte{'o', 'k', 0xff, '!'}, want: "ok!"},
		{name: "corrupt pdf", filename: "notes.pdf", data: []byte("%PDF-1.4 garbage"), want: ""},
		{name: "empty pdf", filename: "notes.pdf", data: nil, want: ""},
		{name: "unsupported", filename: "notes.docx", data: []byte("PK..."), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.filename, tt.data))
		})
	}
}
