package domain

import "context"

// TableSource loads reference tables from a backend. Tables returned by
// a source are immutable; callers and caches share them without copying.
type TableSource interface {
	// Load returns the table registered under the standard name, or an
	// UnknownStandardError naming the standards the backend holds.
	Load(ctx context.Context, standard string) (Table, error)
	// Standards enumerates the standard names the backend holds, sorted.
	Standards(ctx context.Context) ([]string, error)
}

// TableWriter stores reference tables in backends that support seeding,
// such as the SQLite and PostgreSQL sources.
type TableWriter interface {
	SaveTable(ctx context.Context, table Table) error
}
