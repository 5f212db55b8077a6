// Package store reads and writes issue export files.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alanmeadows/issuecloser/internal/issues"
)

// ErrEmptyDocument is returned when an export file decodes to null.
var ErrEmptyDocument = errors.New("export file contains no issue list")

// Format is the encoding of an export file.
type Format int

const (
	// FormatJSON is the default encoding: a JSON array of records.
	FormatJSON Format = iota
	// FormatYAML is a YAML sequence using the same field names.
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the encoding from the file extension: .yaml and .yml are YAML,
// everything else is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal encodes the issue list. JSON output is indented with two spaces and
// ends with a newline; a nil list is encoded as an empty array.
func Marshal(list []issues.CloseableIssue, format Format) ([]byte, error) {
	if list == nil {
		list = []issues.CloseableIssue{}
	}

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("marshaling issues as yaml: %w", err)
		}
		return data, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return nil, fmt.Errorf("marshaling issues as json: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// Unmarshal decodes and validates an issue list. Every record must address a
// remote issue (see issues.CloseableIssue.Validate).
func Unmarshal(data []byte, format Format) ([]issues.CloseableIssue, error) {
	var list []issues.CloseableIssue

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}

	if list == nil {
		return nil, ErrEmptyDocument
	}

	for i, issue := range list {
		if err := issue.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return list, nil
}

// WriteIssues writes the issue list to path under an exclusive lock.
// The file is replaced atomically; an existing file is overwritten.
func WriteIssues(path string, list []issues.CloseableIssue) error {
	data, err := Marshal(list, FormatFor(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	return WithLock(path, DefaultLockTimeout, func() error {
		if err := atomicWriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	})
}

// ReadIssues reads and validates the issue list at path under a shared lock.
func ReadIssues(path string) ([]issues.CloseableIssue, error) {
	var data []byte
	err := WithReadLock(path, DefaultLockTimeout, func() error {
		var err error
		data, err = os.ReadFile(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	list, err := Unmarshal(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize issues from %s: %w", path, err)
	}
	return list, nil
}

// atomicWriteFile writes data to a temp file then renames it into place,
// preventing partial writes on crash or disk-full.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
