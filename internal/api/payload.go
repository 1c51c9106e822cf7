package api

import (
	"encoding/json"
	"fmt"

	"inspections-cli/internal/domain"
)

// SearchPayload is the composite filter object the search endpoint expects in
// its URL path. Every value is already base64-encoded.
type SearchPayload struct {
	City       string `json:"city"`
	County     string `json:"county"`
	ScoreFrom  string `json:"scoreFrom"`
	ScoreTo    string `json:"scoreTo"`
	PermitType string `json:"permitType"`
	From       string `json:"from"`
	To         string `json:"to"`
	Keyword    string `json:"keyword"`
}

// BuildPayload encodes a confirmed FilterSet into its transport form.
func BuildPayload(fs domain.FilterSet) SearchPayload {
	return SearchPayload{
		City:       EncodeField(fs.City),
		County:     EncodeField(fs.County),
		ScoreFrom:  EncodeInteger(fs.ScoreLow),
		ScoreTo:    EncodeInteger(fs.ScoreHigh),
		PermitType: EncodeField(fs.PermitType),
		From:       EncodeField(fs.StartDate),
		To:         EncodeField(fs.EndDate),
		Keyword:    EncodeField(fs.Keyword),
	}
}

// Encode serializes the payload to JSON and percent-encodes it for the path.
func (p SearchPayload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal search payload: %w", err)
	}
	return EncodePathSegment(string(b)), nil
}
