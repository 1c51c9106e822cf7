package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspections-cli/internal/api"
	"inspections-cli/internal/domain"
	"inspections-cli/internal/report"
)

func testFilterSet() domain.FilterSet {
	return domain.FilterSet{
		City:       "Atlanta",
		County:     "Fulton",
		PermitType: "Restaurant",
		ScoreLow:   0,
		ScoreHigh:  100,
		StartDate:  "01/01/2024",
		EndDate:    "06/01/2024",
	}
}

func hit(name string, id int, scoreCol string) map[string]any {
	return map[string]any{
		"name":       name,
		"id":         api.EncodeField(fmt.Sprintf("%d", id)),
		"mapAddress": "1 Main St\r\nAtlanta, GA",
		"columns":    map[string]string{"4": scoreCol, "5": "Inspection Date: 05/20/2024"},
	}
}

// mockAPI answers the search and detail endpoints. Page 0 returns pageZero;
// every other page is empty. Detail bodies are keyed by the raw (encoded) id.
func mockAPI(pageZero []map[string]any, details map[string]string, searchCalls *atomic.Int64, detailIDs *[]string) *httptest.Server {
	var mu sync.Mutex
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		switch {
		case strings.HasPrefix(p, "/search/"):
			if searchCalls != nil {
				searchCalls.Add(1)
			}
			page := p[strings.LastIndex(p, "/")+1:]
			if page == "0" {
				_ = json.NewEncoder(w).Encode(pageZero)
				return
			}
			_, _ = w.Write([]byte("[]"))
		case strings.HasPrefix(p, "/inspectionsData/"):
			id := strings.TrimPrefix(p, "/inspectionsData/")
			if detailIDs != nil {
				mu.Lock()
				*detailIDs = append(*detailIDs, id)
				mu.Unlock()
			}
			body, ok := details[id]
			if !ok {
				body = "[]"
			}
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestRunEndToEnd(t *testing.T) {
	pageZero := []map[string]any{
		hit("Worse Diner", 11, "Score: 80"),
		hit("Better Diner", 22, "Score: 20"),
	}
	details := map[string]string{
		api.EncodeField("11"): `[{"violations":[{"code":"6-501.12"}]}]`,
		api.EncodeField("22"): `[{"violations":[{"code":"4-601.11"},{"code":"2-401.11"}]}]`,
	}

	var searchCalls atomic.Int64
	srv := mockAPI(pageZero, details, &searchCalls, nil)
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 500)
	records, err := f.Run(context.Background(), testFilterSet())
	require.NoError(t, err)

	assert.Equal(t, int64(500), searchCalls.Load(), "every page is requested, empty or not")

	require.Len(t, records, 2)
	// discovery order here; sorting happens in the presenter
	assert.Equal(t, "Worse Diner", records[0].Name)
	assert.Equal(t, 11, records[0].ID)
	assert.Equal(t, 80, records[0].Score)
	assert.Equal(t, "1 Main StAtlanta, GA", records[0].Address)
	assert.Equal(t, "05/20/2024", records[0].Date)
	assert.JSONEq(t, `[{"code":"6-501.12"}]`, string(records[0].Violations))

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, records))

	var out []domain.InspectionRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, 20, out[0].Score)
	assert.Equal(t, 80, out[1].Score)
}

func TestRunExcludesRecordsWithoutViolations(t *testing.T) {
	pageZero := []map[string]any{
		hit("Clean Place", 1, "Score: 99"),
		hit("Dirty Place", 2, "Score: 40"),
	}
	details := map[string]string{
		// Clean Place: empty detail response, must be dropped
		api.EncodeField("2"): `[{"violations":[{"code":"3-501.16"}]}]`,
	}

	srv := mockAPI(pageZero, details, nil, nil)
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 5)
	records, err := f.Run(context.Background(), testFilterSet())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Dirty Place", records[0].Name)
}

func TestRunDetailRequestsFollowDiscoveryOrder(t *testing.T) {
	pageZero := []map[string]any{
		hit("A", 1, "Score: 10"),
		hit("B", 2, "Score: 20"),
		hit("C", 3, "Score: 30"),
	}
	var detailIDs []string
	srv := mockAPI(pageZero, map[string]string{}, nil, &detailIDs)
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 3)
	_, err := f.Run(context.Background(), testFilterSet())
	require.NoError(t, err)

	want := []string{api.EncodeField("1"), api.EncodeField("2"), api.EncodeField("3")}
	assert.Equal(t, want, detailIDs)
}

func TestRunMalformedScoreAborts(t *testing.T) {
	pageZero := []map[string]any{hit("Broken", 1, "Score: ninety")}
	srv := mockAPI(pageZero, map[string]string{}, nil, nil)
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 2)
	_, err := f.Run(context.Background(), testFilterSet())
	assert.ErrorContains(t, err, "parse score")
}

func TestRunMissingColumnAborts(t *testing.T) {
	pageZero := []map[string]any{{
		"name":       "No Columns",
		"id":         api.EncodeField("1"),
		"mapAddress": "x",
		"columns":    map[string]string{},
	}}
	srv := mockAPI(pageZero, map[string]string{}, nil, nil)
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 1)
	_, err := f.Run(context.Background(), testFilterSet())
	assert.ErrorContains(t, err, "missing column")
}

func TestRunSearchFailureAbortsWholeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/7") {
			http.Error(w, "upstream sad", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	f := New(api.New(srv.URL, 0), 20)
	_, err := f.Run(context.Background(), testFilterSet())
	assert.ErrorContains(t, err, "status 502")
}
