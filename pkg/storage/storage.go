// Package storage issues time-limited access to course content held in
// Cloudinary and Cloudflare R2, and resolves working download URLs when an
// upstream provider is inconsistent about which signing variant it accepts.
package storage

import (
	"context"
	"time"
)

// Candidate is one ranked URL a download may be served from
type Candidate struct {
	Name string
	URL  string
}

// ContentSigner issues access URLs for stored objects. SignedURL returns the
// single playback/delivery URL; DownloadCandidates returns the ranked list of
// URL variants the prober walks when streaming a download.
type ContentSigner interface {
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	DownloadCandidates(ctx context.Context, key string, expiry time.Duration) ([]Candidate, error)
}
