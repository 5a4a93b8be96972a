// internal/providers/records/adapter_test.go
package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*elasticsearch.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client, server
}

func esHandler(body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestCallParsesHits(t *testing.T) {
	body := `{"hits":{"hits":[
		{"_id":"inv-1","_score":4.2,"_source":{"subject":"John Smith","summary":"prior skip trace, Durant OK","url":"https://cases.example.com/inv-1"}},
		{"_id":"inv-2","_score":1.1,"_source":{"subject":"John A Smith","summary":"vehicle record"}}
	]}}`
	client, _ := newTestClient(t, esHandler(body, http.StatusOK))

	a := New(DefaultConfig(), client, logger.NewNoOpLogger())
	raw, err := a.Call(context.Background(), models.ProviderQuery{
		Query: `"John Smith"`, Category: models.CategoryBasic,
	})
	require.NoError(t, err)

	require.Len(t, raw.Items, 2)
	assert.Equal(t, "John Smith", raw.Items[0].Title)
	assert.Equal(t, "https://cases.example.com/inv-1", raw.Items[0].URL)
	assert.Equal(t, 4.2, raw.Items[0].Score)

	// a hit without a url gets a synthesized one
	assert.Equal(t, "records://investigations/inv-2", raw.Items[1].URL)
	assert.Equal(t, float64(0), raw.Cost)
}

func TestCallSearchError(t *testing.T) {
	client, _ := newTestClient(t, esHandler(`{"error":"index_not_found_exception"}`, http.StatusNotFound))

	a := New(DefaultConfig(), client, logger.NewNoOpLogger())
	_, err := a.Call(context.Background(), models.ProviderQuery{Query: "x"})

	var statusErr *providers.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestCallEmptyHits(t *testing.T) {
	client, _ := newTestClient(t, esHandler(`{"hits":{"hits":[]}}`, http.StatusOK))

	a := New(DefaultConfig(), client, logger.NewNoOpLogger())
	raw, err := a.Call(context.Background(), models.ProviderQuery{Query: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, raw.Items)
}

func TestSupports(t *testing.T) {
	a := New(DefaultConfig(), nil, logger.NewNoOpLogger())

	assert.True(t, a.Supports(models.CategoryBasic))
	assert.True(t, a.Supports(models.CategoryLocation))
	assert.True(t, a.Supports(models.CategoryPhone))
	assert.True(t, a.Supports(models.CategoryAddress))
	assert.True(t, a.Supports(models.CategoryPublicRecord))
	assert.False(t, a.Supports(models.CategoryEmail))
	assert.False(t, a.Supports(models.CategorySocial))
	assert.False(t, a.Supports(models.CategoryBusiness))
}
