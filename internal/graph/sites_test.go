package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com:/sites/assemble", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "contoso.sharepoint.com,guid-1,guid-2",
			"name": "assemble",
			"displayName": "Assemble Team",
			"webUrl": "https://contoso.sharepoint.com/sites/assemble"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	site, err := client.SiteByName(context.Background(), "contoso.sharepoint.com", "assemble")
	require.NoError(t, err)
	assert.Equal(t, "contoso.sharepoint.com,guid-1,guid-2", site.ID)
	assert.Equal(t, "Assemble Team", site.Name, "display name wins over segment name")
	assert.Equal(t, "https://contoso.sharepoint.com/sites/assemble", site.WebURL)
}

func TestSiteByName_EscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The raw path keeps the escaping visible.
		assert.Contains(t, r.URL.EscapedPath(), "Assemble%20Display")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"site-id","name":"Assemble Display"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	site, err := client.SiteByName(context.Background(), "contoso.sharepoint.com", "Assemble Display")
	require.NoError(t, err)
	assert.Equal(t, "Assemble Display", site.Name, "segment name used when display name is absent")
}

func TestSiteByName_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"Requested site could not be found"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.SiteByName(context.Background(), "contoso.sharepoint.com", "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRootSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"root-site-id","displayName":"Contoso Home"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	site, err := client.RootSite(context.Background(), "contoso.sharepoint.com")
	require.NoError(t, err)
	assert.Equal(t, "root-site-id", site.ID)
	assert.Equal(t, "Contoso Home", site.Name)
}
