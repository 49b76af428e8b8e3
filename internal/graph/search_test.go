package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDriveItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drives/drive-a/root/search(q='AssembleSchedule.xlsx')", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("$top"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[
			{"id":"item-1","name":"AssembleSchedule.xlsx","size":100,
			 "parentReference":{"driveId":"drive-a"},
			 "file":{"mimeType":"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}},
			{"id":"item-2","name":"AssembleSchedule-old.xlsx","size":90,
			 "parentReference":{"driveId":"drive-a"}}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	items, err := client.SearchDriveItems(context.Background(), "drive-a", "AssembleSchedule.xlsx")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "drive-a", items[0].DriveID)
	assert.Equal(t, "item-2", items[1].ID)
}

func TestSearchDriveItems_NoHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	items, err := client.SearchDriveItems(context.Background(), "drive-a", "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEscapeSearchTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"plain", "schedule.xlsx", "schedule.xlsx"},
		{"single quote doubled", "it's here", "it%27%27s%20here"},
		{"spaces encoded", "two words", "two%20words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeSearchTerm(tt.term))
		})
	}
}
