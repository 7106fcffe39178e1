package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_BasicAuthAttached(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{
		Username: "urbanwell",
		Password: "s3cret",
		APIKey:   "DEMO_KEY",
		BaseURL:  srv.URL,
	})

	err := client.QueryAssets(context.Background(), AssetsEndpoint, 28.61, 77.20, "2026-08-27", 0.10)
	require.NoError(t, err)
	require.True(t, gotOK)
	assert.Equal(t, "urbanwell", gotUser)
	assert.Equal(t, "s3cret", gotPass)
}

func TestClient_QueryAssetsParams(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "DEMO_KEY", BaseURL: srv.URL})
	err := client.QueryAssets(context.Background(), AssetsEndpoint, 28.6139, 77.2090, "2026-08-27", 0.10)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-27", query["date"][0])
	assert.Equal(t, "DEMO_KEY", query["api_key"][0])
	assert.Equal(t, "0.10", query["dim"][0])
}

func TestClient_QueryAssetsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "DEMO_KEY", BaseURL: srv.URL})
	err := client.QueryAssets(context.Background(), AssetsEndpoint, 0, 0, "2026-08-27", 0)
	assert.Error(t, err)
}

func TestClient_SearchGranules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "OMNO2d", q.Get("short_name"))
		assert.NotEmpty(t, q.Get("bounding_box"))
		assert.NotEmpty(t, q.Get("temporal"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feed":{"entry":[{"id":"G1"},{"id":"G2"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{SearchURL: srv.URL})
	count, err := client.SearchGranules(context.Background(), "OMNO2d", 28.61, 77.20, 0.1, "2026-08-27")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClient_SearchGranulesEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feed":{"entry":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{SearchURL: srv.URL})
	count, err := client.SearchGranules(context.Background(), "MOD13Q1", 19.07, 72.88, 0.1, "2026-08-27")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClient_ServerErrorSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{SearchURL: srv.URL})
	_, err := client.SearchGranules(context.Background(), "OMNO2d", 0, 0, 0.1, "2026-08-27")
	assert.Error(t, err)
}
