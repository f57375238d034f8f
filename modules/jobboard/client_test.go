package jobboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptyUserAgent(t *testing.T) {
	_, err := New("https://api.example.com", "", 10*time.Second)
	require.Error(t, err)
}

func TestClient_Search_DecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{"id": "123", "name": "Go Developer", "employer": {"name": "Acme"}, "area": {"name": "Moscow"}, "published_at": "2026-01-01T00:00:00+03:00"}],
			"found": 1, "pages": 1, "page": 0, "per_page": 20
		}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-agent/1.0", 10*time.Second)
	require.NoError(t, err)

	page, err := client.Search(context.Background(), SearchFilters{Page: 0, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "123", page.Items[0].ExternalID)
	require.Equal(t, "Go Developer", page.Items[0].Title)
	require.Equal(t, "Acme", page.Items[0].Company)
}

func TestClient_Search_RetriesOn500ThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [], "found": 0, "pages": 0, "page": 0, "per_page": 20}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-agent/1.0", 10*time.Second)
	require.NoError(t, err)

	page, err := client.Search(context.Background(), SearchFilters{})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
	require.Empty(t, page.Items)
}

func TestClient_Search_PermanentErrorSurfacesHHAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-agent/1.0", 10*time.Second)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchFilters{})
	require.Error(t, err)
	var apiErr *HHAPIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_Search_RetryAfterHonored(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [], "found": 0, "pages": 0, "page": 0, "per_page": 20}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-agent/1.0", 10*time.Second)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchFilters{})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}

func TestPoliteDelay_WithinRange(t *testing.T) {
	d := PoliteDelay()
	require.GreaterOrEqual(t, d, 200*time.Millisecond)
	require.Less(t, d, 500*time.Millisecond)
}
