package repository

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
)

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

// WithTransaction runs fn inside a single transaction: every write commits
// or none do. fn returning an error (or panicking) rolls everything back, so
// business-rule failures detected inside fn leave zero mutation behind.
func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.Begin()
	if err != nil {
		return apperrors.Infrastructure("failed to start transaction", err)
	}

	tx := goqu.NewTx("postgres", rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else if commitErr := rawTx.Commit(); commitErr != nil {
			err = apperrors.Infrastructure("failed to commit transaction", commitErr)
		}
	}()

	err = fn(tx)
	return
}
