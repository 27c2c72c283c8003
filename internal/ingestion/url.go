package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FetchJobDescription fetches a job posting page, extracts its main text and
// returns it as raw document text. If useBrowser is true and the static HTML
// yields too little text, the page is re-rendered in a headless browser
// (script-heavy job boards often ship an empty shell over HTTP).
func FetchJobDescription(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), falling back to browser rendering", len(text))
		}
		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else if rendered, extractErr := fetch.ExtractMainText(browserHTML, fetch.JobPostingSelectors()); extractErr == nil {
			text = rendered
		}
	}

	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(text))
	}

	return text, nil
}
