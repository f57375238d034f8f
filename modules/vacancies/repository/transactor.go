package repository

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/vacancies/ports"
)

// Transactor runs a function against a VacancyRepository bound to one
// pgx.Tx, committing on success and rolling back on error or panic. This
// is what lets the ingestion service run UpsertVacancy/UpsertParsed/
// ReplaceRequirements as one Postgres transaction per item (§4.4).
type Transactor struct {
	pool pgxPool
}

// NewTransactor binds a Transactor to a pool.
func NewTransactor(pool pgxPool) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTx begins a transaction, hands the caller a repository scoped to
// it, and commits iff fn returns nil.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ports.VacancyRepository) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin vacancy transaction: %w", err)
	}

	if err := fn(NewVacancyRepository(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit vacancy transaction: %w", err)
	}
	return nil
}
