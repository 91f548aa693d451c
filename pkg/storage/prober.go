package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Prober resolves a working download URL by walking a ranked candidate list
// under a bounded time budget. The first candidate that answers 200 wins;
// exhausting the list yields an error aggregating every failure.
type Prober struct {
	probeClient  *http.Client
	streamClient *http.Client
	budget       time.Duration
}

// NewProber creates a Prober. perProbeTimeout bounds each individual probe;
// budget bounds the whole candidate walk. The winning URL is re-fetched
// without the probe timeout so large files can stream to completion.
func NewProber(perProbeTimeout, budget time.Duration) *Prober {
	return &Prober{
		probeClient:  &http.Client{Timeout: perProbeTimeout},
		streamClient: &http.Client{},
		budget:       budget,
	}
}

// Resolve probes each candidate in order and returns an open response for the
// first one that answers 200. The caller owns the response body.
func (p *Prober) Resolve(ctx context.Context, candidates []Candidate) (*http.Response, error) {
	if len(candidates) == 0 {
		return nil, errors.New("storage: no candidates to probe")
	}

	start := time.Now()
	var errs []error
	for _, cand := range candidates {
		if time.Since(start) > p.budget {
			errs = append(errs, fmt.Errorf("%s: probe budget exhausted", cand.Name))
			break
		}
		ok, err := p.probe(ctx, cand.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cand.Name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%s: upstream rejected", cand.Name))
			continue
		}

		resp, err := p.fetch(ctx, cand.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: fetch after probe: %w", cand.Name, err))
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("storage: all download candidates failed: %w", errors.Join(errs...))
}

func (p *Prober) probe(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	// One byte is enough to learn whether the signing variant is accepted.
	req.Header.Set("Range", "bytes=0-0")

	resp, err := p.probeClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent, nil
}

func (p *Prober) fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.streamClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return resp, nil
}
