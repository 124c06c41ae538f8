package documents

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used by tests and by local runs
// without a configured database.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]Document
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, docs: make(map[int64]Document)}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) (Document, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	doc.ID = r.nextID
	r.nextID++
	doc.CreatedAt = now
	doc.UpdatedAt = now
	r.docs[doc.ID] = cloneDocument(doc)
	return doc, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		all = append(all, cloneDocument(doc))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, id int64, upd Update) (Document, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}

	if upd.FileName.Set && upd.FileName.Value != nil {
		doc.FileName = *upd.FileName.Value
	}
	if upd.Title.Set {
		doc.Title = upd.Title.Value
	}
	if upd.Court.Set {
		doc.Court = upd.Court.Value
	}
	if upd.CaseNumber.Set {
		doc.CaseNumber = upd.CaseNumber.Value
	}
	if upd.Summary.Set {
		doc.Summary = upd.Summary.Value
	}
	if upd.CaseType.Set {
		doc.CaseType = upd.CaseType.Value
	}
	if upd.Area.Set {
		doc.Area = upd.Area.Value
	}
	if upd.Date.Set {
		doc.Date = upd.Date.Value
	}
	if upd.Metadata.Set {
		doc.Metadata = upd.Metadata.Value
	}
	if upd.AreaData.Set {
		doc.AreaData = upd.AreaData.Value
	}
	doc.UpdatedAt = time.Now().UTC()

	r.docs[id] = cloneDocument(doc)
	return doc, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRepo) SaveJSON(ctx context.Context, id int64, metadata, areaData json.RawMessage, setMetadata, setAreaData bool) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	if setMetadata {
		doc.Metadata = append(json.RawMessage(nil), metadata...)
	}
	if setAreaData {
		doc.AreaData = append(json.RawMessage(nil), areaData...)
	}
	doc.UpdatedAt = time.Now().UTC()
	r.docs[id] = doc
	return nil
}

func cloneDocument(doc Document) Document {
	out := doc
	if doc.Metadata != nil {
		out.Metadata = append(json.RawMessage(nil), doc.Metadata...)
	}
	if doc.AreaData != nil {
		out.AreaData = append(json.RawMessage(nil), doc.AreaData...)
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
