package services

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractTextTXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.txt")
	content := "Participant Information\r\n\r\n\r\nThe trial compares two surgical techniques.  \n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewDocExtractService()
	text, err := svc.ExtractText(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "Participant Information\n\nThe trial compares two surgical techniques."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestExtractTextDOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<w:document><w:p><w:r><w:t>Consent &amp; Safety</w:t></w:r></w:p><w:p><w:r><w:t>Section one.</w:t></w:r></w:p></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	svc := NewDocExtractService()
	text, err := svc.ExtractText(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "Consent & Safety\nSection one."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	svc := NewDocExtractService()
	if _, err := svc.ExtractText("slides.pptx"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestExtractTextEmptyTXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n\n  "), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewDocExtractService()
	if _, err := svc.ExtractText(path); err == nil {
		t.Error("Expected error for empty text file")
	}
}
