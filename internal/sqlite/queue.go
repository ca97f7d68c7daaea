package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/repository"
)

// QueueRepository implements queue.Repository for SQLite
type QueueRepository struct {
	db *DB
}

// NewQueueRepository creates a new QueueRepository
func NewQueueRepository(db *DB) *QueueRepository {
	return &QueueRepository{db: db}
}

const entryColumns = `token, name, age, category, notes, entered_at, started_at, ended_at, status, owner`

// Append issues the next token and inserts the built entry in one transaction
func (r *QueueRepository) Append(ctx context.Context, build func(token int64) (*queue.Entry, error)) (*queue.Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	var maxToken int64
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(token), 0) FROM queue_entries`).Scan(&maxToken)
	if err != nil {
		return nil, storageError("read max token", err)
	}

	entry, err := build(maxToken + 1)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO queue_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		entry.Token,
		entry.Name,
		entry.Age,
		entry.Category,
		entry.Notes,
		formatTime(entry.EnteredAt),
		nullableTime(entry.StartedAt),
		nullableTime(entry.EndedAt),
		string(entry.Status),
		entry.Owner,
	)
	if err != nil {
		return nil, storageError("insert entry", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, storageError("commit transaction", err)
	}
	return entry, nil
}

// Update applies mutate to the entry with the given token in one transaction
func (r *QueueRepository) Update(ctx context.Context, token int64, mutate func(*queue.Entry) error) (*queue.Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	entry, err := scanEntry(tx.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM queue_entries WHERE token = ?`, token))
	if err != nil {
		return nil, err
	}

	if err := mutate(entry); err != nil {
		return nil, err
	}

	query := `
		UPDATE queue_entries
		SET started_at = ?, ended_at = ?, status = ?
		WHERE token = ?
	`
	_, err = tx.ExecContext(ctx, query,
		nullableTime(entry.StartedAt),
		nullableTime(entry.EndedAt),
		string(entry.Status),
		token,
	)
	if err != nil {
		return nil, storageError("update entry", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, storageError("commit transaction", err)
	}
	return entry, nil
}

// Get retrieves an entry by token
func (r *QueueRepository) Get(ctx context.Context, token int64) (*queue.Entry, error) {
	return scanEntry(r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM queue_entries WHERE token = ?`, token))
}

// List returns entries matching opts ordered by token
func (r *QueueRepository) List(ctx context.Context, opts queue.ListOptions) ([]queue.Entry, error) {
	var (
		where []string
		args  []any
	)
	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, s := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if opts.Owner != "" {
		where = append(where, "owner = ?")
		args = append(args, opts.Owner)
	}

	query := `SELECT ` + entryColumns + ` FROM queue_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY token ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("list entries", err)
	}
	defer rows.Close()

	entries := []queue.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("iterate entries", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*queue.Entry, error) {
	var (
		e               queue.Entry
		status, entered string
		started, ended  sql.NullString
	)
	err := row.Scan(
		&e.Token,
		&e.Name,
		&e.Age,
		&e.Category,
		&e.Notes,
		&entered,
		&started,
		&ended,
		&status,
		&e.Owner,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, storageError("scan entry", err)
	}

	e.Status = queue.Status(status)
	if e.EnteredAt, err = parseTime(entered); err != nil {
		return nil, err
	}
	if e.StartedAt, err = parseNullTime(started); err != nil {
		return nil, err
	}
	if e.EndedAt, err = parseNullTime(ended); err != nil {
		return nil, err
	}
	return &e, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, storageError(fmt.Sprintf("parse time %q", s), err)
	}
	return t.Local(), nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
