package http

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"fishlog/internal/storage/storagetest"
)

func TestExportCSV(t *testing.T) {
	noWeight := storagetest.Catch("Bob", "Fly, dry")
	noWeight.Weight = nil
	noWeight.ImageRef = ""
	srv, _ := seededServer(t, storagetest.Catch("Alice", "Worm"), noWeight)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/export.csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	want := [][]string{
		csvHeader,
		{"1", "Perch", "1.25", "Worm", "Pier", "2024-05-12", "07:15", "Alice", "https://example.com/perch.jpg"},
		{"2", "Perch", "", "Fly, dry", "Pier", "2024-05-12", "07:15", "Bob", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestWriteCatchesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCatchesCSV(&buf, nil); err != nil {
		t.Fatalf("writeCatchesCSV: %v", err)
	}
	if got, want := buf.String(), strings.Join(csvHeader, ",")+"\n"; got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}
