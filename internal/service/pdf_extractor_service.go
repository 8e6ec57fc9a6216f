package service

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// TextExtractor pulls plain text out of an uploaded document for the PDF
// exam mode. Extraction failures propagate to the caller; blank results
// are the acquisition layer's concern.
type TextExtractor interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

type pdfTextExtractor struct{}

func NewPDFTextExtractor() TextExtractor {
	return &pdfTextExtractor{}
}

func (e *pdfTextExtractor) ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening PDF document: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from PDF document: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading extracted PDF text: %w", err)
	}
	log.Info().Int("pages", reader.NumPage()).Int("chars", buf.Len()).Msg("Extracted text from uploaded PDF")
	return buf.String(), nil
}
