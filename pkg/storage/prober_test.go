package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProberResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("first accepted candidate wins", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer bad.Close()
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "file body")
		}))
		defer good.Close()

		p := NewProber(time.Second, 5*time.Second)
		resp, err := p.Resolve(ctx, []Candidate{
			{Name: "signed-raw", URL: bad.URL},
			{Name: "signed-upload", URL: good.URL},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "file body", string(body))
	})

	t.Run("probe sends a one-byte range", func(t *testing.T) {
		var ranges []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ranges = append(ranges, r.Header.Get("Range"))
			io.WriteString(w, "x")
		}))
		defer srv.Close()

		p := NewProber(time.Second, 5*time.Second)
		resp, err := p.Resolve(ctx, []Candidate{{Name: "only", URL: srv.URL}})
		require.NoError(t, err)
		resp.Body.Close()

		// First request probes with a range, the winning fetch does not.
		require.Len(t, ranges, 2)
		assert.Equal(t, "bytes=0-0", ranges[0])
		assert.Empty(t, ranges[1])
	})

	t.Run("partial content counts as accepted", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if r.Header.Get("Range") != "" {
				w.WriteHeader(http.StatusPartialContent)
				io.WriteString(w, "f")
				return
			}
			io.WriteString(w, "full body")
		}))
		defer srv.Close()

		p := NewProber(time.Second, 5*time.Second)
		resp, err := p.Resolve(ctx, []Candidate{{Name: "ranged", URL: srv.URL}})
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "full body", string(body))
		assert.Equal(t, 2, calls)
	})

	t.Run("all candidates failing aggregates every error", func(t *testing.T) {
		forbidden := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer forbidden.Close()

		p := NewProber(time.Second, 5*time.Second)
		_, err := p.Resolve(ctx, []Candidate{
			{Name: "variant-a", URL: forbidden.URL},
			{Name: "variant-b", URL: forbidden.URL},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "variant-a")
		assert.Contains(t, err.Error(), "variant-b")
	})

	t.Run("empty candidate list errors", func(t *testing.T) {
		p := NewProber(time.Second, 5*time.Second)
		_, err := p.Resolve(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "x")
		}))
		defer srv.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		p := NewProber(time.Second, 5*time.Second)
		_, err := p.Resolve(cancelled, []Candidate{
			{Name: "a", URL: srv.URL},
			{Name: "b", URL: srv.URL},
		})
		assert.Error(t, err)
	})
}
