package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"forecast-locator-api/internal/models"

	"github.com/rs/zerolog"
)

type zipResolver interface {
	ResolveZip(ctx context.Context, zipCode string) (*models.ZipPoint, error)
}

type importSummary struct {
	Resolved []models.ZipPoint
	Failed   map[string]error
}

// parseZipCSV reads the first column of every record after the header row.
// Blank and repeated ZIP codes are skipped.
func parseZipCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	seen := map[string]struct{}{}
	var zipCodes []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		zip := strings.TrimSpace(record[0])
		if zip == "" {
			continue
		}
		if _, ok := seen[zip]; ok {
			continue
		}
		seen[zip] = struct{}{}
		zipCodes = append(zipCodes, zip)
	}

	return zipCodes, nil
}

// resolveAll resolves ZIP codes one after another. Failures are collected,
// not fatal; the loop stops early only when ctx is done.
func resolveAll(ctx context.Context, svc zipResolver, zipCodes []string) importSummary {
	logger := zerolog.Ctx(ctx)
	summary := importSummary{Failed: map[string]error{}}

	for i, zip := range zipCodes {
		if ctx.Err() != nil {
			for _, rest := range zipCodes[i:] {
				summary.Failed[rest] = ctx.Err()
			}
			break
		}

		point, err := svc.ResolveZip(ctx, zip)
		if err != nil {
			logger.Warn().Err(err).Str("zip_code", zip).Msg("failed to resolve ZIP")
			summary.Failed[zip] = err
			continue
		}

		logger.Debug().Str("zip_code", zip).Str("office", point.Grid.Office).Msg("resolved ZIP")
		summary.Resolved = append(summary.Resolved, *point)
	}

	return summary
}
