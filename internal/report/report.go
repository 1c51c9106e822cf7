package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"inspections-cli/internal/domain"
)

const noResultsMessage = "No inspection reports found that meet the criteria"

// Sort orders records ascending by score. The sort is stable so ties keep
// their fetch-discovery order.
func Sort(records []domain.InspectionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score < records[j].Score
	})
}

// Render sorts and writes the final result set as 2-space-indented JSON, or
// the no-results line when nothing survived the violation filter.
func Render(w io.Writer, records []domain.InspectionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, noResultsMessage)
		return err
	}

	Sort(records)
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
