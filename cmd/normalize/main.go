package main

// Convert legacy pairs-shaped metadata/areaData fields to the canonical
// object encoding:
//   go run ./cmd/normalize -all -dry-run
//   go run ./cmd/normalize -id 42

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"legaldocs-backend/internal/documents"
	"legaldocs-backend/internal/normalize"
	"legaldocs-backend/internal/shared/config"
	"legaldocs-backend/internal/shared/storage/db"
)

func main() {
	var (
		id             = flag.Int64("id", 0, "normalize a single document id")
		all            = flag.Bool("all", false, "normalize all documents")
		dryRun         = flag.Bool("dry-run", false, "report changes without persisting")
		limit          = flag.Int("limit", 0, "cap how many records the batch scans (0 = no cap)")
		legacyMetadata = flag.Bool("legacy-metadata", false, "only records whose metadata is legacy-shaped")
		legacyAreaData = flag.Bool("legacy-area-data", false, "only records whose areaData is legacy-shaped")
		details        = flag.Bool("details", false, "include before/after payloads (and per-record reports in batch mode)")
	)
	flag.Parse()

	if (*id > 0) == *all {
		log.Printf("exactly one of -id or -all is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	svc := &normalize.Service{Repo: &documents.PGRepo{DB: sqlDB}}

	var result any
	if *id > 0 {
		report, err := svc.NormalizeOne(ctx, *id, *dryRun, *details)
		if err != nil {
			log.Printf("normalize failed: %v", err)
			os.Exit(1)
		}
		result = report
	} else {
		summary, err := svc.NormalizeAll(ctx, normalize.Options{
			DryRun:         *dryRun,
			Limit:          *limit,
			LegacyMetadata: *legacyMetadata,
			LegacyAreaData: *legacyAreaData,
			IncludeDetails: *details,
		})
		if err != nil {
			log.Printf("normalize failed: %v", err)
			os.Exit(1)
		}
		result = summary
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Printf("encode result: %v", err)
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))
}
