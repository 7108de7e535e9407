// Package seeder fills a migrated database with the rows the board needs to
// be usable: the bootstrap admin and, on request, demo postings.
package seeder

import (
	"context"

	"jobboard/internal/database"
)

// Seeder is one idempotent seeding step. Running it twice must not duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
