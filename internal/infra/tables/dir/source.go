// Package dir implements a reference-table source reading one CSV
// document per standard from a directory. Documents are named
// "<standard>.csv" and use the published semicolon-separated layout.
package dir

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fittingcore/internal/tablecodec"
	"fittingcore/pkg/domain"
)

const defaultPath = "./tables"

// Source serves tables from a directory of CSV documents.
type Source struct {
	path string
}

var (
	_ domain.TableSource = (*Source)(nil)
	_ domain.TableWriter = (*Source)(nil)
)

// NewSource opens a directory source. An empty path selects ./tables;
// the directory must exist.
func NewSource(path string) (*Source, error) {
	if path == "" {
		path = defaultPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tables directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tables directory %s: not a directory", path)
	}
	return &Source{path: path}, nil
}

// Path returns the directory the source reads from.
func (s *Source) Path() string {
	return s.path
}

// Load decodes the document for the named standard.
func (s *Source) Load(ctx context.Context, standard string) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	path, err := s.documentPath(standard)
	if err != nil {
		return domain.Table{}, err
	}
	// #nosec G304 -- the path joins the configured directory with a validated standard name.
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			known, kerr := s.Standards(ctx)
			if kerr != nil {
				return domain.Table{}, kerr
			}
			return domain.Table{}, domain.UnknownStandardError{Standard: standard, Known: known}
		}
		return domain.Table{}, fmt.Errorf("read table %s: %w", standard, err)
	}
	return tablecodec.Decode(bytes.NewReader(payload), standard)
}

// Standards lists the standards the directory holds, sorted.
func (s *Source) Standards(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("list tables directory %s: %w", s.path, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		out = append(out, strings.TrimSuffix(name, ".csv"))
	}
	sort.Strings(out)
	return out, nil
}

// SaveTable writes the table's document, replacing any previous one.
func (s *Source) SaveTable(ctx context.Context, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.documentPath(table.Standard())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tablecodec.Encode(&buf, table); err != nil {
		return fmt.Errorf("encode table %s: %w", table.Standard(), err)
	}
	// #nosec G306 -- reference tables are non-sensitive shared documents.
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write table %s: %w", table.Standard(), err)
	}
	return nil
}

// documentPath validates the standard name and joins it with the
// directory. Names carrying path separators or traversal segments are
// rejected before touching the filesystem.
func (s *Source) documentPath(standard string) (string, error) {
	name := standard + ".csv"
	if standard == "" || name != filepath.Base(name) || standard == ".." {
		return "", fmt.Errorf("invalid standard name %q", standard)
	}
	return filepath.Join(s.path, name), nil
}
