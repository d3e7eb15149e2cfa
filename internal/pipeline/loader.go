package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/source"

	"golang.org/x/sync/errgroup"
)

// Sources names the two input spreadsheets. Empty sheet names select the
// first sheet of the workbook.
type Sources struct {
	DealsPath     string
	DealsSheet    string
	TrackingPath  string
	TrackingSheet string
}

// LoadFunc loads both spreadsheets. Load is the production implementation;
// tests substitute their own.
type LoadFunc func(ctx context.Context, src Sources) (*LoadResult, error)

// LoadResult holds the decoded contents of both spreadsheets.
type LoadResult struct {
	Deals    []model.DealRecord
	Tracking []model.FileTrackingRecord
	Sources  Sources
	LoadedAt time.Time
	LoadTime time.Duration
}

// Load reads and decodes both spreadsheets. The two reads are independent
// and run concurrently; the first failure cancels the other and is
// returned. Nothing is returned on failure.
func Load(ctx context.Context, src Sources) (*LoadResult, error) {
	start := time.Now()
	result := &LoadResult{Sources: src}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deals, err := loadDeals(ctx, src.DealsPath, src.DealsSheet)
		if err != nil {
			return fmt.Errorf("loading deals: %w", err)
		}
		result.Deals = deals
		return nil
	})

	g.Go(func() error {
		tracking, err := loadTracking(ctx, src.TrackingPath, src.TrackingSheet)
		if err != nil {
			return fmt.Errorf("loading file tracking: %w", err)
		}
		result.Tracking = tracking
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.LoadedAt = time.Now()
	result.LoadTime = time.Since(start)
	return result, nil
}

func loadDeals(ctx context.Context, path, sheet string) ([]model.DealRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl, err := source.ReadTable(path, sheet)
	if err != nil {
		return nil, err
	}
	return source.DecodeDeals(tbl)
}

func loadTracking(ctx context.Context, path, sheet string) ([]model.FileTrackingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl, err := source.ReadTable(path, sheet)
	if err != nil {
		return nil, err
	}
	return source.DecodeFileTracking(tbl)
}
