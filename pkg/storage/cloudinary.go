package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Compile-time check
var _ ContentSigner = (*CloudinarySigner)(nil)

// CloudinarySigner issues signed Cloudinary delivery URLs
type CloudinarySigner struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinarySigner creates a new CloudinarySigner
func NewCloudinarySigner(cloudName, apiKey, apiSecret string) (*CloudinarySigner, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinarySigner{cld: cld}, nil
}

// SignedURL returns a signed video delivery URL for the public id. Cloudinary
// delivery signatures do not carry an expiry; the expiry parameter is accepted
// for interface symmetry with R2.
func (s *CloudinarySigner) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	video, err := s.cld.Video(key)
	if err != nil {
		return "", fmt.Errorf("cloudinary video asset: %w", err)
	}
	video.DeliveryType = "upload"
	video.Config.URL.SignURL = true
	url, err := video.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary sign url: %w", err)
	}
	return url, nil
}

// DownloadCandidates returns the signing variants Cloudinary has been observed
// to accept for raw document downloads, most likely first: signed raw
// delivery, signed upload delivery, then the unsigned raw URL for assets
// uploaded before strict signing was enabled.
func (s *CloudinarySigner) DownloadCandidates(ctx context.Context, key string, expiry time.Duration) ([]Candidate, error) {
	var candidates []Candidate

	if raw, err := s.cld.File(key); err == nil {
		raw.DeliveryType = "upload"
		raw.Config.URL.SignURL = true
		if url, err := raw.String(); err == nil {
			candidates = append(candidates, Candidate{Name: "signed-raw", URL: url})
		}
	}

	if img, err := s.cld.Image(key); err == nil {
		img.DeliveryType = "upload"
		img.Config.URL.SignURL = true
		if url, err := img.String(); err == nil {
			candidates = append(candidates, Candidate{Name: "signed-upload", URL: url})
		}
	}

	if raw, err := s.cld.File(key); err == nil {
		raw.DeliveryType = "upload"
		if url, err := raw.String(); err == nil {
			candidates = append(candidates, Candidate{Name: "unsigned-raw", URL: url})
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("cloudinary: no download candidates for %q", key)
	}
	return candidates, nil
}
