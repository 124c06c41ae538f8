package documents

import "time"

type documentResponse struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	Title      *string   `json:"title"`
	Court      *string   `json:"court"`
	CaseNumber *string   `json:"caseNumber"`
	Summary    *string   `json:"summary"`
	CaseType   *string   `json:"caseType"`
	Area       *string   `json:"area"`
	Date       *string   `json:"date"`
	Metadata   *string   `json:"metadata"`
	AreaData   *string   `json:"areaData"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toResponse(doc Document) documentResponse {
	resp := documentResponse{
		ID:         doc.ID,
		FileName:   doc.FileName,
		Title:      doc.Title,
		Court:      doc.Court,
		CaseNumber: doc.CaseNumber,
		Summary:    doc.Summary,
		CaseType:   doc.CaseType,
		Area:       doc.Area,
		Metadata:   EncodeStoredJSON(doc.Metadata),
		AreaData:   EncodeStoredJSON(doc.AreaData),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if doc.Date != nil {
		formatted := doc.Date.UTC().Format(time.RFC3339)
		resp.Date = &formatted
	}
	return resp
}
