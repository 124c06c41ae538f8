package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"legaldocs-backend/internal/documents"
	"legaldocs-backend/internal/shared/telemetry"
)

// Service produces XLSX bytes for the document register.
type Service struct {
	Repo documents.Repo
}

func NewService(repo documents.Repo) *Service {
	return &Service{Repo: repo}
}

const sheet = "Documents"

// exportPageSize matches the repo's list clamp.
const exportPageSize = 100

// DocumentsXLSX returns an XLSX workbook of all documents, newest first.
func (s *Service) DocumentsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"ID",
		"File Name",
		"Title",
		"Court",
		"Case Number",
		"Date",
		"Case Type",
		"Area",
		"Created",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	total := 0
	offset := 0
	for {
		docs, err := s.Repo.List(ctx, exportPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("query documents: %w", err)
		}
		if len(docs) == 0 {
			break
		}
		offset += len(docs)
		total += len(docs)

		for _, doc := range docs {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			write(1, doc.ID)
			write(2, doc.FileName)
			write(3, deref(doc.Title))
			write(4, deref(doc.Court))
			write(5, deref(doc.CaseNumber))
			if doc.Date != nil {
				write(6, doc.Date.UTC().Format("2006-01-02"))
			} else {
				write(6, "")
			}
			write(7, deref(doc.CaseType))
			write(8, deref(doc.Area))
			write(9, doc.CreatedAt.UTC().Format("2006-01-02 15:04"))

			row++
		}

		if len(docs) < exportPageSize {
			break
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "C", 40)
	_ = f.SetColWidth(sheet, "D", "E", 22)
	_ = f.SetColWidth(sheet, "F", "F", 12)
	_ = f.SetColWidth(sheet, "G", "H", 18)
	_ = f.SetColWidth(sheet, "I", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	telemetry.Info("export.xlsx.ok", map[string]any{
		"rows":       total,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
