package waiting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCatalogSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	src, err := NewHTTPCatalogSource(srv.URL)
	require.NoError(t, err)
	src.backoff = time.Millisecond

	series, err := src.LoadWaitingSeries(context.Background())
	require.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPCatalogSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	src, err := NewHTTPCatalogSource(srv.URL)
	require.NoError(t, err)
	src.backoff = time.Millisecond

	_, err = src.LoadWaitingSeries(context.Background())
	require.Error(t, err)

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewHTTPCatalogSourceRequiresURL(t *testing.T) {
	_, err := NewHTTPCatalogSource("  ")
	assert.Error(t, err)
}
