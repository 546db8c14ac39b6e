package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

// opTimeout bounds every store call so a hung connection cannot hang a
// request indefinitely.
const opTimeout = 5 * time.Second

// Collection serves one resource collection from a jsonb table of shape
// (id uuid, seq bigserial, doc jsonb, created_at). seq preserves
// insertion order for list reads. Table names come from migrations, not
// request input.
type Collection struct {
	pool  *pgxpool.Pool
	table string
}

func NewCollection(pool *pgxpool.Pool, table string) *Collection {
	return &Collection{pool: pool, table: table}
}

func (c *Collection) InsertOne(ctx context.Context, doc map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = c.pool.Exec(ctx, `INSERT INTO `+c.table+` (id, doc) VALUES ($1, $2)`, id, body)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *Collection) FindByID(ctx context.Context, id string) (entity.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return entity.Document{}, repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := c.pool.QueryRow(ctx, `SELECT id, doc FROM `+c.table+` WHERE id = $1`, id)
	return scanDocument(row)
}

func (c *Collection) FindOne(ctx context.Context, field, value string) (entity.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := c.pool.QueryRow(ctx,
		`SELECT id, doc FROM `+c.table+` WHERE doc->>$1 = $2 ORDER BY seq LIMIT 1`, field, value)
	return scanDocument(row)
}

func (c *Collection) FindMany(ctx context.Context, field, value string) ([]entity.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if field == "" {
		rows, err = c.pool.Query(ctx, `SELECT id, doc FROM `+c.table+` ORDER BY seq`)
	} else {
		rows, err = c.pool.Query(ctx,
			`SELECT id, doc FROM `+c.table+` WHERE doc->>$1 = $2 ORDER BY seq`, field, value)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]entity.Document, 0)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *Collection) UpdateByID(ctx context.Context, id string, patch map[string]any) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	body, err := json.Marshal(patch)
	if err != nil {
		return 0, err
	}
	// jsonb concatenation gives mongo-style $set merge semantics
	res, err := c.pool.Exec(ctx, `UPDATE `+c.table+` SET doc = doc || $2 WHERE id = $1`, id, body)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (c *Collection) DeleteByID(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := c.pool.Exec(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func scanDocument(row pgx.Row) (entity.Document, error) {
	var (
		id   string
		body []byte
	)
	if err := row.Scan(&id, &body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Document{}, repository.ErrNotFound
		}
		return entity.Document{}, err
	}
	return decodeDocument(id, body)
}

func decodeDocument(id string, body []byte) (entity.Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return entity.Document{}, err
	}
	return entity.Document{ID: id, Fields: fields}, nil
}

var _ repository.Collection = (*Collection)(nil)
