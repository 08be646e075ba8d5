package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wardlink/admin-api/pkg/identifier"
)

// sequenceSource backs identifier.Generator with a database sequence so
// record codes stay unique across instances.
type sequenceSource struct {
	db   *sqlx.DB
	name string
}

func NewSequenceSource(ctx context.Context, db *sqlx.DB, name string) (identifier.Source, error) {
	// name is a trusted constant, not user input; DDL cannot take a bind
	// parameter for the sequence name.
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS %s`, name)); err != nil {
		return nil, fmt.Errorf("failed to ensure sequence %s: %w", name, err)
	}
	return &sequenceSource{db: db, name: name}, nil
}

func (s *sequenceSource) Next(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT nextval($1)`, s.name); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", s.name, err)
	}
	return n, nil
}
