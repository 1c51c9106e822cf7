package fetch

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"inspections-cli/internal/api"
	"inspections-cli/internal/domain"
)

// Search hits pack their remaining fields into numbered columns; only two of
// them matter here.
const (
	scoreColumn = "4"
	dateColumn  = "5"
)

// Fetcher retrieves every matching inspection record for one confirmed
// FilterSet: a concurrent fan-out over all search pages, a barrier, then one
// detail request per discovered record, strictly in discovery order.
type Fetcher struct {
	client *api.Client
	pages  int
}

func New(client *api.Client, pages int) *Fetcher {
	return &Fetcher{client: client, pages: pages}
}

// Run performs both fetch phases. The search endpoint returns empty arrays
// for page indexes past the real result count, so every page is requested
// unconditionally and the run proceeds only once all of them have answered.
// Any request, decode, or parse failure aborts the whole run; there are no
// partial results.
func (f *Fetcher) Run(ctx context.Context, fs domain.FilterSet) ([]domain.InspectionRecord, error) {
	encoded, err := api.BuildPayload(fs).Encode()
	if err != nil {
		return nil, err
	}

	pages := make([][]api.SearchHit, f.pages)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < f.pages; i++ {
		g.Go(func() error {
			hits, err := f.client.SearchPage(gctx, encoded, i)
			if err != nil {
				return err
			}
			pages[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.InspectionRecord
	total := 0
	for _, hits := range pages {
		total += len(hits)
		for _, hit := range hits {
			rec, ok, err := f.hydrate(ctx, hit)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, rec)
			}
		}
	}

	log.Printf("[fetch] pages=%d hits=%d with_violations=%d", f.pages, total, len(out))
	return out, nil
}

// hydrate parses one search hit and attaches its violation detail. Records
// whose detail response is empty are dropped (ok=false), not failed.
func (f *Fetcher) hydrate(ctx context.Context, hit api.SearchHit) (domain.InspectionRecord, bool, error) {
	id, err := api.DecodeID(hit.ID)
	if err != nil {
		return domain.InspectionRecord{}, false, err
	}

	scoreText, err := columnValue(hit.Columns, scoreColumn)
	if err != nil {
		return domain.InspectionRecord{}, false, err
	}
	score, err := strconv.Atoi(scoreText)
	if err != nil {
		return domain.InspectionRecord{}, false, fmt.Errorf("parse score %q: %w", scoreText, err)
	}

	date, err := columnValue(hit.Columns, dateColumn)
	if err != nil {
		return domain.InspectionRecord{}, false, err
	}

	groups, err := f.client.InspectionData(ctx, hit.ID)
	if err != nil {
		return domain.InspectionRecord{}, false, err
	}
	if len(groups) == 0 {
		return domain.InspectionRecord{}, false, nil
	}

	return domain.InspectionRecord{
		Name:       hit.Name,
		ID:         id,
		Score:      score,
		Address:    stripNewlines(hit.MapAddress),
		Date:       date,
		Violations: groups[0].Violations,
	}, true, nil
}

// columnValue extracts the value half of a "label: value" column string.
func columnValue(cols map[string]string, key string) (string, error) {
	raw, ok := cols[key]
	if !ok {
		return "", fmt.Errorf("search hit is missing column %q", key)
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("column %s has no label separator: %q", key, raw)
	}
	return strings.TrimSpace(parts[1]), nil
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
