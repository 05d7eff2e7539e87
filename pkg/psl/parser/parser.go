package parser

import (
	"fmt"
	"os"
	"strings"

	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
)

// DefaultMaxFileSize is the largest file ParseFile accepts unless configured otherwise.
const DefaultMaxFileSize int64 = 1024 * 1024 // 1MB

// Parser parses PSL text into Documents.
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	// Configuration
	maxFileSize     int64 // Maximum file size in bytes (default: 1MB)
	continueAfter3C bool  // Keep scanning sections after [3C] (default: false)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize:     DefaultMaxFileSize,
		continueAfter3C: false,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithContinueAfter3C makes the section scanner resume after the [3C] block
// instead of stopping there.
func (p *Parser) WithContinueAfter3C(enabled bool) *Parser {
	p.continueAfter3C = enabled
	return p
}

// Parse parses PSL text. It never fails: missing or malformed parts leave
// the corresponding Document fields empty.
func (p *Parser) Parse(text string) *ast.Document {
	return p.parse(text, "")
}

// ParseFile reads and parses the PSL file at path.
// It returns an error only if the file cannot be read or exceeds the size limit.
func (p *Parser) ParseFile(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &pslErrors.Error{
			Type:    pslErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to access file: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &pslErrors.Error{
			Type:       pslErrors.ErrorTypeLimit,
			Message:    fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			File:       path,
			Suggestion: "Split the procedure into smaller documents or raise lint.max_file_size",
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pslErrors.Error{
			Type:    pslErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read file: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	return p.parse(string(data), path), nil
}

// ParseBytes parses PSL text from a byte slice, enforcing the size limit.
// This is useful for documents that do not live on disk.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &pslErrors.Error{
			Type:    pslErrors.ErrorTypeLimit,
			Message: fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			File:    sourcePath,
		}
	}

	return p.parse(string(data), sourcePath), nil
}

func (p *Parser) parse(text, sourceFile string) *ast.Document {
	header, body := splitHeader(text)

	return newBuilder(sourceFile).buildDocument(
		ParseHeader(header),
		ParseSections(body, p.continueAfter3C),
	)
}

// splitHeader splits text before the first line whose trimmed form starts with "[".
func splitHeader(text string) (header, body string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i:], "\n")
		}
	}
	return text, ""
}

// Parse parses PSL text with a default parser.
func Parse(text string) *ast.Document {
	return NewParser().Parse(text)
}
