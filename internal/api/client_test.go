package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersPositionalCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/filters", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"values": []string{"Atlanta", "Savannah"}},
			{"values": []string{"Fulton", "Chatham"}},
			{"values": []string{"unused"}},
			{"values": []string{"Restaurant", "Food Service"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	cats, err := c.Filters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Atlanta", "Savannah"}, cats[CategoryCities].Values)
	assert.Equal(t, []string{"Fulton", "Chatham"}, cats[CategoryCounties].Values)
	assert.Equal(t, []string{"Restaurant", "Food Service"}, cats[CategoryPermitTypes].Values)
}

func TestFiltersTooFewCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"values": []string{"Atlanta"}},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Filters(context.Background())
	assert.Error(t, err)
}

func TestSearchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/search/"))
		require.True(t, strings.HasSuffix(r.URL.Path, "/3"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"name":       "Testaurant",
				"id":         EncodeField("99"),
				"mapAddress": "1 Main St\nAtlanta",
				"columns":    map[string]string{"4": "Score: 91", "5": "Inspection Date: 05/20/2024"},
			},
		})
	}))
	defer srv.Close()

	hits, err := New(srv.URL, 0).SearchPage(context.Background(), "payload", 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Testaurant", hits[0].Name)
	assert.Equal(t, "Score: 91", hits[0].Columns["4"])
}

func TestInspectionData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/inspectionsData/"))
		_, _ = w.Write([]byte(`[{"violations":[{"code":"4-601.11","note":"equipment not clean"}]}]`))
	}))
	defer srv.Close()

	groups, err := New(srv.URL, 0).InspectionData(context.Background(), "NDAyMQ==")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.JSONEq(t, `[{"code":"4-601.11","note":"equipment not clean"}]`, string(groups[0].Violations))
}

func TestGetJSONErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/p/0":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 0)

	_, err := c.SearchPage(context.Background(), "p", 0)
	assert.ErrorContains(t, err, "status 500")

	_, err = c.InspectionData(context.Background(), "x")
	assert.ErrorContains(t, err, "decode")
}
