package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>Job posting</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Job posting")
}

func TestURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)
	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestExtractMainText_SelectorPriority(t *testing.T) {
	html := `<html><body>
		<nav>Navigation noise</nav>
		<div class="job-description">Senior Go Engineer. 5+ years of experience.</div>
		<footer>Footer noise</footer>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.NotContains(t, text, "Navigation noise")
	assert.NotContains(t, text, "Footer noise")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting text</p></body></html>`
	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Plain posting text")
}

func TestExtractMainText_CollapsesBlankLines(t *testing.T) {
	html := "<html><body><div>line one</div>\n\n\n<div>  line two  </div></body></html>"
	text, err := ExtractMainText(html, nil)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short"))
	long := make([]byte, MinContentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
