package documents

import (
	"context"
	"encoding/json"
)

// Update carries field-level changes for a document. Presence (Set)
// decides whether a column is touched; a Set field with a nil value
// clears the column.
type Update struct {
	FileName   NullableString
	Title      NullableString
	Court      NullableString
	CaseNumber NullableString
	Summary    NullableString
	CaseType   NullableString
	Area       NullableString
	Date       NullableTime
	Metadata   JSONChange
	AreaData   JSONChange
}

// JSONChange is Update's counterpart for the JSON columns, already
// decoded and re-marshaled by the codec.
type JSONChange struct {
	Set   bool
	Value json.RawMessage
}

// Empty reports whether the update touches no fields at all.
func (u Update) Empty() bool {
	return !u.FileName.Set && !u.Title.Set && !u.Court.Set && !u.CaseNumber.Set &&
		!u.Summary.Set && !u.CaseType.Set && !u.Area.Set && !u.Date.Set &&
		!u.Metadata.Set && !u.AreaData.Set
}

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, id int64) (Document, error)
	List(ctx context.Context, limit, offset int) ([]Document, error)
	Update(ctx context.Context, id int64, upd Update) (Document, error)
	Delete(ctx context.Context, id int64) error
	// SaveJSON rewrites the JSON columns only; the normalizer's
	// persistence path.
	SaveJSON(ctx context.Context, id int64, metadata, areaData json.RawMessage, setMetadata, setAreaData bool) error
}
