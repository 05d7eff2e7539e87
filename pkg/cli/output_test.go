package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		allowed []OutputFormat
		want    OutputFormat
		wantErr bool
	}{
		{"text", []OutputFormat{FormatText, FormatJSON}, FormatText, false},
		{"json", []OutputFormat{FormatText, FormatJSON}, FormatJSON, false},
		{"csv", []OutputFormat{FormatText, FormatJSON}, "", true},
		{"csv", []OutputFormat{FormatText, FormatJSON, FormatCSV}, FormatCSV, false},
		{"", []OutputFormat{FormatText}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input, tt.allowed...)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatCSV, "*cli.CSVFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := fmt.Sprintf("%T", NewFormatter(tt.format))
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestTextFormatter_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, "hello"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), "hello\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	report := NewLintReport([]FileReport{{File: "a.psl"}}, false)

	if err := (&JSONFormatter{Indent: true}).FormatTo(&buf, report); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded struct {
		Files []struct {
			File  string `json:"file"`
			Valid bool   `json:"valid"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Files) != 1 || decoded.Files[0].File != "a.psl" || !decoded.Files[0].Valid {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, sampleLintReport(false)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d CSV rows, want header + 3", len(records))
	}
	if records[0][0] != "file" || records[1][1] != "L-01" {
		t.Errorf("unexpected CSV: %v", records)
	}
}

func TestCSVFormatter_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, "plain"); err == nil {
		t.Error("expected error for non-tabular data")
	}
}
