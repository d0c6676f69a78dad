package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"resumecraft/internal/resume"
)

func readZipEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx as zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("entry %s missing from docx package", name)
	return ""
}

func TestBuildDOCX_PackageStructure(t *testing.T) {
	out, err := BuildDOCX(resume.Sample())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	types := readZipEntry(t, out, "[Content_Types].xml")
	if !strings.Contains(types, "wordprocessingml.document.main+xml") {
		t.Fatal("content types must declare the main document part")
	}
	rels := readZipEntry(t, out, "_rels/.rels")
	if !strings.Contains(rels, "word/document.xml") {
		t.Fatal("package relationships must target the document part")
	}
}

func TestBuildDOCX_DocumentContent(t *testing.T) {
	data := resume.Sample()
	out, err := BuildDOCX(data)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	doc := readZipEntry(t, out, "word/document.xml")
	for _, want := range []string{
		"Jordan Lee",
		"Northwind Systems",
		"Technical University of Munich",
		"Experience",
		"Education",
		"Skills",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document.xml missing %q", want)
		}
	}
	// 在职经历显示 Present。
	if !strings.Contains(doc, "Present") {
		t.Fatal("current position must render an open-ended date range")
	}
}

func TestBuildDOCX_EscapesXML(t *testing.T) {
	data := resume.Data{}
	data.PersonalInfo.Name = `Q&A <Engineer>`

	out, err := BuildDOCX(data)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := readZipEntry(t, out, "word/document.xml")
	if strings.Contains(doc, "<Engineer>") {
		t.Fatal("raw angle brackets leaked into the XML")
	}
	if !strings.Contains(doc, "Q&amp;A") {
		t.Fatal("ampersand must be escaped")
	}
}

func TestBuildDOCX_EmptyDataStillValid(t *testing.T) {
	out, err := BuildDOCX(resume.Data{})
	if err != nil {
		t.Fatalf("build with empty data: %v", err)
	}
	doc := readZipEntry(t, out, "word/document.xml")
	if !strings.Contains(doc, "<w:document") || !strings.Contains(doc, "</w:document>") {
		t.Fatal("document part must still be well formed")
	}
}
