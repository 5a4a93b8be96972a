// internal/providers/websearch/adapter_test.go
package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"
)

func newTestAdapter(serverURL string) *Adapter {
	cfg := DefaultConfig()
	cfg.BaseURL = serverURL
	cfg.APIKey = "test-key"
	cfg.EngineID = "test-cx"
	return New(cfg, logger.NewNoOpLogger())
}

func query(q string) models.ProviderQuery {
	return models.ProviderQuery{Query: q, Category: models.CategoryBasic, Priority: 1}
}

func TestCallParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, `"John Smith"`, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"title":"John Smith - Profile","link":"https://example.com/p","snippet":"lives in Durant"},
			{"title":"John Smith LLC","link":"https://example.com/llc","snippet":"registered agent"}
		]}`))
	}))
	defer server.Close()

	raw, err := newTestAdapter(server.URL).Call(context.Background(), query(`"John Smith"`))
	require.NoError(t, err)
	require.Len(t, raw.Items, 2)
	assert.Equal(t, "John Smith - Profile", raw.Items[0].Title)
	assert.Equal(t, "https://example.com/p", raw.Items[0].URL)
	assert.Equal(t, "lives in Durant", raw.Items[0].Snippet)
	assert.Equal(t, 1.0, raw.Cost)
}

func TestCallEmptyItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	raw, err := newTestAdapter(server.URL).Call(context.Background(), query("nobody"))
	require.NoError(t, err)
	assert.Empty(t, raw.Items)
}

func TestCallTruncatesAtMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"title":"a","link":"u1"},{"title":"b","link":"u2"},{"title":"c","link":"u3"}
		]}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.MaxResults = 2
	raw, err := New(cfg, logger.NewNoOpLogger()).Call(context.Background(), query("x"))
	require.NoError(t, err)
	assert.Len(t, raw.Items, 2)
}

func TestCallNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).Call(context.Background(), query("x"))
	var statusErr *providers.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestCallRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"items not an array", `{"items":"nope"}`},
		{"item fields wrong type", `{"items":[{"title":42}]}`},
		{"not json", `<html>error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestAdapter(server.URL).Call(context.Background(), query("x"))
			var payloadErr *providers.MalformedPayloadError
			assert.ErrorAs(t, err, &payloadErr)
		})
	}
}

func TestCallHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestAdapter(server.URL).Call(ctx, query("x"))
	assert.Error(t, err)
}

func TestSupportsEveryCategory(t *testing.T) {
	a := newTestAdapter("http://unused")
	for _, c := range []models.QueryCategory{
		models.CategoryBasic, models.CategoryLocation, models.CategoryPhone,
		models.CategoryEmail, models.CategoryAddress, models.CategorySocial,
		models.CategoryBusiness, models.CategoryPublicRecord,
	} {
		assert.True(t, a.Supports(c))
	}
}
