package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

const entryColumns = `id, user_id, entry_date, sleep, stress, symptoms, mood, engagement, drugs, notes, created_at, updated_at`

// Repository defines persistence operations for journal entries. Every
// read, update, and delete is ownership-filtered: an entry id alone
// never grants access.
type Repository interface {
	Create(ctx context.Context, fields EntryFields, userID uuid.UUID) (*Entry, error)
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Entry, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch EntryPatch) (*Entry, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new entry for the owning user.
func (r *PGRepository) Create(ctx context.Context, fields EntryFields, userID uuid.UUID) (*Entry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entries (user_id, entry_date, sleep, stress, symptoms, mood, engagement, drugs, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+entryColumns,
		userID, fields.Date, fields.Sleep, fields.Stress, fields.Symptoms,
		fields.Mood, fields.Engagement, fields.Drugs, fields.Notes,
	)
	return scanEntry(row)
}

// List returns the user's entries ordered by date descending.
func (r *PGRepository) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = $1 ORDER BY entry_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Get fetches one entry scoped by both entry id and owning user id.
func (r *PGRepository) Get(ctx context.Context, id, userID uuid.UUID) (*Entry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Update applies only the provided fields and stamps updated_at. It
// returns httpx.ErrNotFound when no row matches id+userID; a miss never
// creates a row.
func (r *PGRepository) Update(ctx context.Context, id, userID uuid.UUID, patch EntryPatch) (*Entry, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	pos := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, pos))
		args = append(args, value)
		pos++
	}

	if patch.Date != nil {
		addSet("entry_date", *patch.Date)
	}
	if patch.Sleep != nil {
		addSet("sleep", *patch.Sleep)
	}
	if patch.Stress != nil {
		addSet("stress", *patch.Stress)
	}
	if patch.Symptoms != nil {
		addSet("symptoms", *patch.Symptoms)
	}
	if patch.Mood != nil {
		addSet("mood", *patch.Mood)
	}
	if patch.Engagement != nil {
		addSet("engagement", *patch.Engagement)
	}
	if patch.Drugs != nil {
		addSet("drugs", *patch.Drugs)
	}
	if patch.Notes != nil {
		addSet("notes", *patch.Notes)
	}

	query := fmt.Sprintf(
		"UPDATE entries SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), pos, pos+1, entryColumns,
	)
	args = append(args, id, userID)

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Delete removes one entry scoped by id+userID and reports whether a row
// was actually removed.
func (r *PGRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var entry Entry
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Date, &entry.Sleep, &entry.Stress,
		&entry.Symptoms, &entry.Mood, &entry.Engagement, &entry.Drugs,
		&entry.Notes, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

var _ Repository = (*PGRepository)(nil)
