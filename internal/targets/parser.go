package targets

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parser reads target addresses from a source.
type Parser interface {
	// ParseTargets returns the addresses in source, in file order.
	ParseTargets(source string) ([]string, error)
}

// ParserFor picks a parser from the file extension: .json, .csv, or plain
// text for anything else.
func ParserFor(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return &TextParser{}
	}
}

// TextParser reads one address per line. Blank lines and lines starting
// with '#' are skipped.
type TextParser struct{}

// ParseTargets parses a text file.
func (p *TextParser) ParseTargets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var addrs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return addrs, nil
}

// JSONParser reads addresses from a JSON document.
//
// Expected format:
//
//	{"wallets": ["1...", "1..."]}
//
// A bare array of strings is accepted as well.
type JSONParser struct {
	Field string // Field holding the address list (default: "wallets")
}

// ParseTargets parses a JSON file.
func (p *JSONParser) ParseTargets(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var addrs []string
		if err := json.Unmarshal(data, &addrs); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return addrs, nil
	}

	field := p.Field
	if field == "" {
		field = "wallets"
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	raw, ok := doc[field]
	if !ok {
		return nil, fmt.Errorf("missing %s field", field)
	}

	var addrs []string
	if err := json.Unmarshal(raw, &addrs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return addrs, nil
}

// CSVParser reads addresses from one column of a CSV file with a header row.
type CSVParser struct {
	Column string // Column name for the address (default: "address")
}

// ParseTargets parses a CSV file.
func (p *CSVParser) ParseTargets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	column := p.Column
	if column == "" {
		column = "address"
	}
	idx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), column) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("missing required column: %s", column)
	}

	var addrs []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if idx >= len(record) {
			return nil, fmt.Errorf("%s column index out of range", column)
		}
		if addr := strings.TrimSpace(record[idx]); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs, nil
}
