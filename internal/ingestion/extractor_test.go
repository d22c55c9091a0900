package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextPassesThroughPlainText(t *testing.T) {
	e := NewFileExtractor()

	result := e.ExtractText(context.Background(), RawDocument{
		Text:     "Max  Mustermann.  Berufserfahrung",
		FileName: "resume.txt",
	})

	require.True(t, result.Success)
	assert.Equal(t, "Max Mustermann.\n\nBerufserfahrung", result.Text)
	assert.Equal(t, "Text", result.FormatLabel)
	assert.Equal(t, "resume.txt", result.FileName)
	assert.Equal(t, 3, result.WordCount)
}

func TestExtractTextFromTextBytes(t *testing.T) {
	e := NewFileExtractor()

	result := e.ExtractText(context.Background(), RawDocument{
		Bytes:    []byte("Stellenanzeige:   Go Entwickler"),
		MimeType: MimeText,
	})

	require.True(t, result.Success)
	assert.Equal(t, "Stellenanzeige: Go Entwickler", result.Text)
}

func TestExtractTextRejectsUnsupportedFormat(t *testing.T) {
	e := NewFileExtractor()

	result := e.ExtractText(context.Background(), RawDocument{
		Bytes:    []byte{0x1f, 0x8b},
		MimeType: "application/gzip",
		FileName: "archive.gz",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported file format")
	assert.Equal(t, "archive.gz", result.FileName)
}

func TestExtractTextRejectsEmptyDocument(t *testing.T) {
	e := NewFileExtractor()

	result := e.ExtractText(context.Background(), RawDocument{})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no document content")
}

func TestExtractTextFromDocx(t *testing.T) {
	e := NewFileExtractor()

	docx := buildDocx(t, `<w:document>`+
		`<w:p><w:r><w:t>Lebenslauf</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t xml:space="preserve">Go &amp; Python</w:t></w:r></w:p>`+
		`</w:document>`)

	result := e.ExtractText(context.Background(), RawDocument{
		Bytes:    docx,
		MimeType: MimeDocx,
		FileName: "resume.docx",
	})

	require.True(t, result.Success)
	assert.Equal(t, "Lebenslauf Go & Python", result.Text)
	assert.Equal(t, "Word", result.FormatLabel)
}

func TestExtractTextDocxWithoutDocumentXML(t *testing.T) {
	e := NewFileExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	result := e.ExtractText(context.Background(), RawDocument{
		Bytes:    buf.Bytes(),
		MimeType: MimeDocx,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to process file")
}

func TestExtractTextCorruptPDF(t *testing.T) {
	e := NewFileExtractor()

	result := e.ExtractText(context.Background(), RawDocument{
		Bytes:    []byte("definitely not a pdf"),
		MimeType: MimePDF,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to process file")
}

func TestIsSupported(t *testing.T) {
	e := NewFileExtractor()

	assert.True(t, e.IsSupported(MimePDF))
	assert.True(t, e.IsSupported(MimeDocx))
	assert.True(t, e.IsSupported(MimeDoc))
	assert.True(t, e.IsSupported(MimeText))
	assert.False(t, e.IsSupported("image/png"))
}
