// Package docstore stores schema-less JSON documents in PostgreSQL tables shaped as
// (id TEXT PRIMARY KEY, doc JSONB) and queries them with declarative filters and updates.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is implemented by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Document is a stored record: its key and raw JSON body.
type Document struct {
	ID   string
	Body []byte
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Body, v); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", d.ID, err)
	}

	return nil
}

type UpdateResult struct {
	Matched int64
}

type DeleteResult struct {
	Deleted int64
}

// Collection is a handle to one document table.
type Collection struct {
	db    Querier
	name  string
	table string
}

// NewCollection returns a collection stored in the table with the given name.
func NewCollection(db Querier, name string) *Collection {
	return &Collection{
		db:    db,
		name:  name,
		table: pgx.Identifier{name}.Sanitize(),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Insert stores doc under id. When id is empty the database generates one.
func (c *Collection) Insert(ctx context.Context, id string, doc any) (Document, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode document: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, doc) VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2::jsonb) RETURNING id, doc",
		c.table,
	)

	var stored Document
	if err = c.db.QueryRow(ctx, query, id, string(body)).Scan(&stored.ID, &stored.Body); err != nil {
		return Document{}, fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}

	return stored, nil
}

// FindAll returns every document in the collection, in no particular order.
func (c *Collection) FindAll(ctx context.Context) ([]Document, error) {
	return c.Find(ctx, Filter{})
}

// Find returns the documents matching filter. No match yields an empty slice.
func (c *Collection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	where, args, err := filter.where(1)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query(ctx, fmt.Sprintf("SELECT id, doc FROM %s%s", c.table, where), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}

	docs, err := pgx.CollectRows(rows, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", c.name, err)
	}

	return docs, nil
}

// FindOne returns the first document matching filter. The boolean is false when nothing matched.
func (c *Collection) FindOne(ctx context.Context, filter Filter) (Document, bool, error) {
	where, args, err := filter.where(1)
	if err != nil {
		return Document{}, false, err
	}

	var doc Document
	err = c.db.QueryRow(ctx, fmt.Sprintf("SELECT id, doc FROM %s%s LIMIT 1", c.table, where), args...).
		Scan(&doc.ID, &doc.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("failed to query %s: %w", c.name, err)
	}

	return doc, true, nil
}

// FindByID looks up a single document by key.
func (c *Collection) FindByID(ctx context.Context, id string) (Document, bool, error) {
	return c.FindOne(ctx, Where(IDField).Is(id))
}

// UpdateFirst applies update to at most one document matching filter.
// A filter matching nothing is not an error; the result reports zero matches.
func (c *Collection) UpdateFirst(ctx context.Context, filter Filter, update Update) (UpdateResult, error) {
	patch, err := update.patch()
	if err != nil {
		return UpdateResult{}, err
	}

	where, args, err := filter.where(2)
	if err != nil {
		return UpdateResult{}, err
	}

	query := fmt.Sprintf(
		"UPDATE %[1]s SET doc = doc || $1::jsonb WHERE id = (SELECT id FROM %[1]s%[2]s LIMIT 1)",
		c.table, where,
	)

	tag, err := c.db.Exec(ctx, query, append([]any{patch}, args...)...)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to update %s: %w", c.name, err)
	}

	return UpdateResult{Matched: tag.RowsAffected()}, nil
}

// Remove deletes every document matching filter. Removing nothing is not an error.
func (c *Collection) Remove(ctx context.Context, filter Filter) (DeleteResult, error) {
	where, args, err := filter.where(1)
	if err != nil {
		return DeleteResult{}, err
	}

	tag, err := c.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s%s", c.table, where), args...)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("failed to delete from %s: %w", c.name, err)
	}

	return DeleteResult{Deleted: tag.RowsAffected()}, nil
}

func scanDocument(row pgx.CollectableRow) (Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.Body)

	return doc, err
}
