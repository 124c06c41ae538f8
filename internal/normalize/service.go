package normalize

import (
	"context"
	"encoding/json"

	"legaldocs-backend/internal/documents"
	"legaldocs-backend/internal/shared/telemetry"
)

// Repo is the slice of document persistence the normalizer needs.
type Repo interface {
	GetByID(ctx context.Context, id int64) (documents.Document, error)
	List(ctx context.Context, limit, offset int) ([]documents.Document, error)
	SaveJSON(ctx context.Context, id int64, metadata, areaData json.RawMessage, setMetadata, setAreaData bool) error
}

// Service converts legacy pairs-shaped metadata and areaData fields to
// the canonical object encoding.
type Service struct {
	Repo Repo
}

// pageSize matches the repo's list clamp.
const pageSize = 100

// plan is a computed, not yet persisted, normalization of one record.
type plan struct {
	report      ChangeReport
	metadata    json.RawMessage
	areaData    json.RawMessage
	setMetadata bool
	setAreaData bool
}

// NormalizeOne normalizes a single record. A missing id is an error;
// everything else is reported in the ChangeReport.
func (s *Service) NormalizeOne(ctx context.Context, id int64, dryRun, includeDetails bool) (ChangeReport, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ChangeReport{}, err
	}

	p := planRecord(doc, dryRun, includeDetails)
	s.apply(ctx, &p)
	return p.report, nil
}

// NormalizeAll runs the batch: scan, plan, persist record by record.
// Per-record persistence failures are captured in the summary and never
// abort the remaining records.
func (s *Service) NormalizeAll(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{DryRun: opts.DryRun}

	offset := 0
	for {
		limit := pageSize
		if opts.Limit > 0 {
			remaining := opts.Limit - summary.Scanned
			if remaining <= 0 {
				break
			}
			if remaining < limit {
				limit = remaining
			}
		}

		docs, err := s.Repo.List(ctx, limit, offset)
		if err != nil {
			return summary, err
		}
		if len(docs) == 0 {
			break
		}
		offset += len(docs)

		for _, doc := range docs {
			if !matchesFilter(doc, opts) {
				continue
			}
			summary.Scanned++

			p := planRecord(doc, opts.DryRun, opts.IncludeDetails)
			s.apply(ctx, &p)
			fold(&summary, p.report, opts.IncludeDetails)
		}

		if len(docs) < limit {
			break
		}
	}

	telemetry.Info("normalize.batch", map[string]any{
		"scanned":   summary.Scanned,
		"changed":   summary.Changed,
		"persisted": summary.Persisted,
		"failed":    summary.Failed,
		"dry_run":   summary.DryRun,
	})
	return summary, nil
}

// apply persists a plan's changes unless the run is dry or nothing
// changed. Failures land in the report, not in a returned error.
func (s *Service) apply(ctx context.Context, p *plan) {
	if !p.report.HasChanges || p.report.DryRun {
		return
	}
	err := s.Repo.SaveJSON(ctx, p.report.ID, p.metadata, p.areaData, p.setMetadata, p.setAreaData)
	if err != nil {
		p.report.Error = err.Error()
		return
	}
	p.report.Persisted = true
}

// planRecord computes the would-be after-state of one record without
// touching storage. The before/after payload is attached only when
// details are requested; a dry run always requests them.
func planRecord(doc documents.Document, dryRun, includeDetails bool) plan {
	p := plan{report: ChangeReport{ID: doc.ID, FileName: doc.FileName, DryRun: dryRun}}
	withDetails := includeDetails || dryRun

	if after, changed := convertField(doc.Metadata); changed {
		p.report.HasChanges = true
		if withDetails {
			p.report.Changes = append(p.report.Changes, FieldChange{
				Field:  "metadata",
				Before: doc.Metadata,
				After:  after,
			})
		}
		p.metadata = after
		p.setMetadata = true
	}
	if after, changed := convertField(doc.AreaData); changed {
		p.report.HasChanges = true
		if withDetails {
			p.report.Changes = append(p.report.Changes, FieldChange{
				Field:  "areaData",
				Before: doc.AreaData,
				After:  after,
			})
		}
		p.areaData = after
		p.setAreaData = true
	}
	return p
}

// convertField rewrites a legacy-pairs field to its canonical object.
// Canonical, absent, and unrecognized encodings report no change.
func convertField(raw json.RawMessage) (json.RawMessage, bool) {
	shape, pairs := classifyShape(raw)
	if shape != shapeLegacyPairs {
		return nil, false
	}
	// json.Marshal sorts map keys, so repeated runs emit identical bytes.
	after, err := json.Marshal(foldLegacyPairs(pairs))
	if err != nil {
		return nil, false
	}
	return after, true
}

func matchesFilter(doc documents.Document, opts Options) bool {
	if !opts.LegacyMetadata && !opts.LegacyAreaData {
		return true
	}
	if opts.LegacyMetadata {
		if shape, _ := classifyShape(doc.Metadata); shape == shapeLegacyPairs {
			return true
		}
	}
	if opts.LegacyAreaData {
		if shape, _ := classifyShape(doc.AreaData); shape == shapeLegacyPairs {
			return true
		}
	}
	return false
}

func fold(summary *Summary, report ChangeReport, includeDetails bool) {
	switch {
	case report.Error != "":
		summary.Failed++
	case !report.HasChanges:
		summary.Skipped++
	default:
		summary.Changed++
		if report.Persisted {
			summary.Persisted++
		}
	}
	if includeDetails || report.Error != "" {
		summary.Reports = append(summary.Reports, report)
	}
}
