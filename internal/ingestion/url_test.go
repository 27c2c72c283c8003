package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobDescription_ExtractsMainContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Menu</nav>
			<div class="job-description">Backend Engineer. Python and Docker required.</div>
		</body></html>`))
	}))
	defer server.Close()

	text, err := FetchJobDescription(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Engineer")
	assert.NotContains(t, text, "Menu")
}

func TestFetchJobDescription_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchJobDescription(context.Background(), server.URL, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
