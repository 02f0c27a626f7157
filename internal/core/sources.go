package core

import (
	"context"
	"fmt"
	"os"

	"fittingcore/internal/gostdata"
	dirtables "fittingcore/internal/infra/tables/dir"
	"fittingcore/internal/infra/tables/postgres"
	"fittingcore/internal/infra/tables/sqlite"
	"fittingcore/pkg/domain"
)

// TablesDriver identifies a concrete reference-table backend.
type TablesDriver string

const (
	TablesEmbedded TablesDriver = "embedded" // tables compiled into the binary
	TablesDir      TablesDriver = "dir"      // one CSV document per standard in a directory
	TablesSQLite   TablesDriver = "sqlite"   // embedded sqlite file
	TablesPostgres TablesDriver = "postgres" // PostgreSQL server
)

type (
	TableSource = domain.TableSource
	TableWriter = domain.TableWriter
)

// OpenTableSource selects a reference-table backend using environment
// variables. Defaults to the embedded tables when unset.
//
//	FITTINGCORE_TABLES_DRIVER: embedded|dir|sqlite|postgres (default embedded)
//	FITTINGCORE_TABLES_DIR: directory of CSV documents when driver=dir
//	FITTINGCORE_SQLITE_PATH: path to sqlite file (default ./fittingcore.db)
//	FITTINGCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenTableSource() (TableSource, TablesDriver, error) {
	driver := os.Getenv("FITTINGCORE_TABLES_DRIVER")
	if driver == "" {
		driver = string(TablesEmbedded)
	}
	switch TablesDriver(driver) {
	case TablesEmbedded:
		return gostdata.Source{}, TablesEmbedded, nil
	case TablesDir:
		src, err := dirtables.NewSource(os.Getenv("FITTINGCORE_TABLES_DIR"))
		if err != nil {
			return nil, TablesDir, err
		}
		return src, TablesDir, nil
	case TablesSQLite:
		src, err := sqlite.NewSource(os.Getenv("FITTINGCORE_SQLITE_PATH"))
		if err != nil {
			return nil, TablesSQLite, err
		}
		return src, TablesSQLite, nil
	case TablesPostgres:
		src, err := postgres.NewSource(os.Getenv("FITTINGCORE_POSTGRES_DSN"))
		if err != nil {
			return nil, TablesPostgres, err
		}
		return src, TablesPostgres, nil
	default:
		return nil, TablesDriver(driver), fmt.Errorf("unknown tables driver %s", driver)
	}
}

// SeedTableSource copies every table the source holds into the writer.
// Seeding is how the sqlite and postgres backends are first populated
// from the embedded tables.
func SeedTableSource(ctx context.Context, dst TableWriter, src TableSource) error {
	standards, err := src.Standards(ctx)
	if err != nil {
		return fmt.Errorf("list standards: %w", err)
	}
	for _, standard := range standards {
		table, err := src.Load(ctx, standard)
		if err != nil {
			return fmt.Errorf("load %s: %w", standard, err)
		}
		if err := dst.SaveTable(ctx, table); err != nil {
			return fmt.Errorf("save %s: %w", standard, err)
		}
	}
	return nil
}
