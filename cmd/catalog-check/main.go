// Command catalog-check verifies that every registered reference table loads
// from the configured backend and resolves its family schema. The backend is
// selected through the FITTINGCORE_TABLES_* environment variables; by default
// the embedded tables are checked.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"fittingcore/internal/core"
	"fittingcore/internal/gostdata"
	"fittingcore/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var verbose bool
	var seed bool
	fs.BoolVar(&verbose, "verbose", false, "print one line per table")
	fs.BoolVar(&seed, "seed", false, "seed the backend from the embedded tables before checking")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := run(context.Background(), stdout, verbose, seed); err != nil {
		if _, writeErr := fmt.Fprintf(stderr, "Catalog check failed: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if _, writeErr := fmt.Fprintln(stdout, "Catalog check passed."); writeErr != nil {
		return 1
	}
	return 0
}

// run opens the configured table source, optionally seeds it from the
// embedded tables, and loads every registered standard through the catalog.
// Each loaded table must carry at least one row and a resolved family
// schema; pipe tables must expose thickness columns and elbow tables a mass
// column per registered angle. The first failing table aborts the check.
func run(ctx context.Context, stdout io.Writer, verbose, seed bool) error {
	source, driver, err := core.OpenTableSource()
	if err != nil {
		return fmt.Errorf("open table source: %w", err)
	}
	if seed {
		writer, ok := source.(core.TableWriter)
		if !ok {
			return fmt.Errorf("driver %s does not accept seeding", driver)
		}
		if err := core.SeedTableSource(ctx, writer, gostdata.Source{}); err != nil {
			return fmt.Errorf("seed %s backend: %w", driver, err)
		}
	}

	catalog, err := core.New(source)
	if err != nil {
		return fmt.Errorf("construct catalog: %w", err)
	}

	families := make(map[string]core.FamilyConfig)
	for _, cfg := range catalog.Families() {
		for _, standard := range cfg.Standards {
			families[standard] = cfg
		}
	}

	standards := catalog.Standards()
	if len(standards) == 0 {
		return errors.New("no standards registered")
	}

	for _, standard := range standards {
		table, err := catalog.Table(ctx, standard)
		if err != nil {
			return fmt.Errorf("load %s: %w", standard, err)
		}
		if table.Len() == 0 {
			return fmt.Errorf("table %s has no rows", standard)
		}
		cfg, ok := families[standard]
		if !ok {
			return fmt.Errorf("table %s is not claimed by any family", standard)
		}
		if err := checkFamilySchema(cfg, table); err != nil {
			return fmt.Errorf("table %s: %w", standard, err)
		}
		if verbose {
			if _, err := fmt.Fprintf(stdout, "%s: %s, %d rows, %d columns\n", standard, cfg.Family, table.Len(), len(table.Columns())); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(stdout, "Checked %d tables across %d families (driver %s).\n", len(standards), len(catalog.Families()), driver); err != nil {
		return err
	}
	return nil
}

func checkFamilySchema(cfg core.FamilyConfig, table domain.Table) error {
	resolved, ok := table.Schema()
	if !ok {
		return errors.New("family schema not resolved")
	}
	switch cfg.Family {
	case domain.FamilyPipe:
		if len(resolved.Thicknesses) == 0 {
			return errors.New("pipe table has no thickness columns")
		}
	case domain.FamilyElbow:
		for _, angle := range cfg.Angles {
			if _, ok := resolved.AngleMass[angle]; !ok {
				return fmt.Errorf("missing mass column for %d degree elbows", angle)
			}
		}
	}
	return nil
}
