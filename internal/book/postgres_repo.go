package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore keeps books in the books table. It talks database/sql so the
// same *sql.DB can come from stdlib.OpenDBFromPool or from sqlmock.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresStore(db *sql.DB, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (r *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresStore) List(ctx context.Context) ([]Book, error) {
	const query = `SELECT id, title, author, year FROM books ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

func (r *PostgresStore) Get(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT id, title, author, year FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRowContext(timeoutCtx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresStore) Create(ctx context.Context, b Book) (Book, error) {
	const query = `INSERT INTO books (title, author, year) VALUES ($1, $2, $3) RETURNING id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRowContext(timeoutCtx, query, b.Title, b.Author, b.Year).Scan(&b.ID); err != nil {
		return Book{}, mapPGError("create book", err)
	}
	return b, nil
}

func (r *PostgresStore) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	const query = `
		UPDATE books
		SET title = COALESCE($2, title),
		    author = COALESCE($3, author),
		    year = COALESCE($4, year)
		WHERE id = $1
		RETURNING id, title, author, year`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.db.QueryRowContext(timeoutCtx, query, id, p.Title, p.Author, p.Year).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, mapPGError(fmt.Sprintf("update book %d", id), err)
	}
	return b, nil
}

func (r *PostgresStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// constraintField maps CHECK constraints on the books table to the field they guard.
var constraintField = map[string]string{
	"books_title_check":  "title",
	"books_author_check": "author",
	"books_year_check":   "year",
}

// mapPGError turns constraint violations on the books table into
// ValidationErrors and wraps everything else.
func mapPGError(op string, err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pg.Code {
	case "23514": // check_violation
		if field, ok := constraintField[pg.ConstraintName]; ok {
			return invalidf("Invalid %s provided", field)
		}
	case "22003": // numeric_value_out_of_range
		return invalidf("Invalid year provided")
	case "23502": // not_null_violation
		if pg.ColumnName != "" {
			return invalidf("Missing required fields: %s", pg.ColumnName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
