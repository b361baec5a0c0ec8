// Package resume turns an uploaded document or user-typed text into a single
// canonical resume text blob.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrExtractionFailed marks a failed document extraction. When it fires no
// enrichment call is attempted.
var ErrExtractionFailed = errors.New("resume extraction failed")

type extractor interface {
	UploadResume(ctx context.Context, filename string, file io.Reader) (string, error)
}

type Ingestor struct {
	api    extractor
	logger *zap.Logger
}

func NewIngestor(api extractor, logger *zap.Logger) *Ingestor {
	return &Ingestor{api: api, logger: logger}
}

// Ingest produces the canonical resume text. Typed text takes precedence: when
// non-empty it is used verbatim and the document is never touched. Otherwise a
// present document is sent to the extraction endpoint and the extracted text
// becomes the canonical value. Neither being present yields empty text without
// error.
func (i *Ingestor) Ingest(ctx context.Context, typedText, documentPath string) (string, error) {
	if strings.TrimSpace(typedText) != "" {
		return typedText, nil
	}

	if documentPath == "" {
		return "", nil
	}

	if strings.EqualFold(filepath.Ext(documentPath), ".pdf") {
		if err := i.preflightPDF(documentPath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
	}

	file, err := os.Open(documentPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer file.Close()

	text, err := i.api.UploadResume(ctx, filepath.Base(documentPath), file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	i.logger.Info("resume text extracted",
		zap.String("document", filepath.Base(documentPath)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// preflightPDF verifies the document opens as a PDF before spending an upload
// on it.
func (i *Ingestor) preflightPDF(path string) error {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("unreadable pdf document: %v", err)
	}
	defer file.Close()

	i.logger.Debug("pdf preflight",
		zap.String("document", filepath.Base(path)),
		zap.Int("pages", reader.NumPage()),
	)

	return nil
}
