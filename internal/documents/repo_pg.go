package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, file_name, title, court, case_number, summary, case_type, area, doc_date, metadata, area_data, created_at, updated_at`

// Create inserts a new document and returns it with its assigned id.
func (r *PGRepo) Create(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (
    file_name,
    title,
    court,
    case_number,
    summary,
    case_type,
    area,
    doc_date,
    metadata,
    area_data,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.FileName,
		doc.Title,
		doc.Court,
		doc.CaseNumber,
		doc.Summary,
		doc.CaseType,
		doc.Area,
		doc.Date,
		nullableJSON(doc.Metadata),
		nullableJSON(doc.AreaData),
		now,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// List returns documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Update touches only the columns marked Set and refreshes updated_at.
func (r *PGRepo) Update(ctx context.Context, id int64, upd Update) (Document, error) {
	if upd.Empty() {
		return Document{}, fmt.Errorf("%w: update touches no fields", ErrInvalidInput)
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.FileName.Set {
		add("file_name", upd.FileName.Value)
	}
	if upd.Title.Set {
		add("title", upd.Title.Value)
	}
	if upd.Court.Set {
		add("court", upd.Court.Value)
	}
	if upd.CaseNumber.Set {
		add("case_number", upd.CaseNumber.Value)
	}
	if upd.Summary.Set {
		add("summary", upd.Summary.Value)
	}
	if upd.CaseType.Set {
		add("case_type", upd.CaseType.Value)
	}
	if upd.Area.Set {
		add("area", upd.Area.Value)
	}
	if upd.Date.Set {
		add("doc_date", upd.Date.Value)
	}
	if upd.Metadata.Set {
		add("metadata", nullableJSON(upd.Metadata.Value))
	}
	if upd.AreaData.Set {
		add("area_data", nullableJSON(upd.AreaData.Value))
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE documents SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), documentColumns,
	)

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document; a missing id is ErrNotFound.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveJSON rewrites the JSON columns for the normalizer.
func (r *PGRepo) SaveJSON(ctx context.Context, id int64, metadata, areaData json.RawMessage, setMetadata, setAreaData bool) error {
	if !setMetadata && !setAreaData {
		return nil
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if setMetadata {
		add("metadata", nullableJSON(metadata))
	}
	if setAreaData {
		add("area_data", nullableJSON(areaData))
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE documents SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var title, court, caseNumber, summary, caseType, area sql.NullString
	var docDate sql.NullTime
	var metadata, areaData []byte

	err := row.Scan(
		&doc.ID,
		&doc.FileName,
		&title,
		&court,
		&caseNumber,
		&summary,
		&caseType,
		&area,
		&docDate,
		&metadata,
		&areaData,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return Document{}, err
	}

	doc.Title = nullStringPtr(title)
	doc.Court = nullStringPtr(court)
	doc.CaseNumber = nullStringPtr(caseNumber)
	doc.Summary = nullStringPtr(summary)
	doc.CaseType = nullStringPtr(caseType)
	doc.Area = nullStringPtr(area)
	if docDate.Valid {
		ts := docDate.Time.UTC()
		doc.Date = &ts
	}
	if len(metadata) > 0 {
		doc.Metadata = json.RawMessage(metadata)
	}
	if len(areaData) > 0 {
		doc.AreaData = json.RawMessage(areaData)
	}
	return doc, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nullableJSON maps an absent JSON value to SQL NULL.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}

var _ Repo = (*PGRepo)(nil)
