package resume

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

type fakeExtractor struct {
	calls        int
	lastFilename string
	text         string
	err          error
}

func (f *fakeExtractor) UploadResume(_ context.Context, filename string, file io.Reader) (string, error) {
	f.calls++
	f.lastFilename = filename
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestTypedTextTakesPrecedence(t *testing.T) {
	extractor := &fakeExtractor{text: "EXTRACTED"}
	ingestor := NewIngestor(extractor, zap.NewNop())

	text, err := ingestor.Ingest(context.Background(), "typed resume", "resume.pdf")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if text != "typed resume" {
		t.Fatalf("expected typed text verbatim, got %q", text)
	}
	if extractor.calls != 0 {
		t.Fatalf("document must never be sent when typed text is present, got %d calls", extractor.calls)
	}
}

func TestNeitherTextNorDocumentIsNotAnError(t *testing.T) {
	extractor := &fakeExtractor{}
	ingestor := NewIngestor(extractor, zap.NewNop())

	text, err := ingestor.Ingest(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if text != "" {
		t.Fatalf("expected empty canonical text, got %q", text)
	}
	if extractor.calls != 0 {
		t.Fatalf("expected no extraction call, got %d", extractor.calls)
	}
}

func TestDocumentIsExtracted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("raw document bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := &fakeExtractor{text: "EXTRACTED"}
	ingestor := NewIngestor(extractor, zap.NewNop())

	text, err := ingestor.Ingest(context.Background(), "", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if text != "EXTRACTED" {
		t.Fatalf("expected extracted text, got %q", text)
	}
	if extractor.lastFilename != "resume.txt" {
		t.Fatalf("expected base filename to be sent, got %q", extractor.lastFilename)
	}
}

func TestExtractionFailureIsMarked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("raw"), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := &fakeExtractor{err: errors.New("bad gateway")}
	ingestor := NewIngestor(extractor, zap.NewNop())

	_, err := ingestor.Ingest(context.Background(), "", path)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestMissingDocumentIsMarked(t *testing.T) {
	ingestor := NewIngestor(&fakeExtractor{}, zap.NewNop())

	_, err := ingestor.Ingest(context.Background(), "", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestCorruptPDFFailsPreflight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := &fakeExtractor{}
	ingestor := NewIngestor(extractor, zap.NewNop())

	_, err := ingestor.Ingest(context.Background(), "", path)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("corrupt document must not be uploaded, got %d calls", extractor.calls)
	}
}
