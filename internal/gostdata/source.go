// Package gostdata ships the built-in GOST/OST reference tables and a
// TableSource serving them. The tables are embedded in the published
// semicolon-separated layout and decoded on demand; the package holds
// no mutable state.
package gostdata

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"sort"

	"fittingcore/internal/tablecodec"
	"fittingcore/pkg/domain"
)

// Built-in reference tables, one document per standard.
//
//go:embed data/*.csv
var tables embed.FS

// documents maps each built-in standard to its embedded document. The
// support table is keyed by "<type> <standard>" because ОСТ 36-146-88
// publishes one table per support type.
var documents = map[string]string{
	domain.StandardPipeSeamlessHot:  "data/gost_8732-78.csv",
	domain.StandardPipeSeamlessCold: "data/gost_8734-75.csv",
	domain.StandardPipeWelded:       "data/gost_10704-91.csv",
	domain.StandardElbow:            "data/gost_17375-2001.csv",
	domain.StandardTee:              "data/gost_17376-2001.csv",
	domain.StandardTransition:       "data/gost_17378-2001.csv",
	domain.DefaultSupportType + " " + domain.StandardSupport: "data/kp_ost_36-146-88.csv",
}

// Source serves the embedded reference tables. The zero value is ready
// to use.
type Source struct{}

var _ domain.TableSource = Source{}

// Load decodes the embedded table for the named standard.
func (Source) Load(ctx context.Context, standard string) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	path, ok := documents[standard]
	if !ok {
		return domain.Table{}, domain.UnknownStandardError{Standard: standard, Known: Standards()}
	}
	payload, err := tables.ReadFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("embedded table %s: %w", standard, err)
	}
	return tablecodec.Decode(bytes.NewReader(payload), standard)
}

// Standards lists the embedded standard names in sorted order.
func (Source) Standards(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Standards(), nil
}

// Standards lists the embedded standard names in sorted order.
func Standards() []string {
	out := make([]string, 0, len(documents))
	for standard := range documents {
		out = append(out, standard)
	}
	sort.Strings(out)
	return out
}
