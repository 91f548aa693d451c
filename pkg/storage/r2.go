package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Compile-time check
var _ ContentSigner = (*R2Signer)(nil)

// R2Signer issues presigned GET URLs against a Cloudflare R2 bucket through
// the S3-compatible endpoint.
type R2Signer struct {
	presign *s3.PresignClient
	bucket  string
}

// NewR2Signer creates a new R2Signer
func NewR2Signer(ctx context.Context, accountID, accessKeyID, secretAccessKey, bucket string) (*R2Signer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Signer{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// SignedURL returns a presigned GET URL for the object key
func (s *R2Signer) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("r2 presign: %w", err)
	}
	return req.URL, nil
}

// DownloadCandidates returns a presigned GET with an attachment disposition
// first, falling back to a plain presigned GET.
func (s *R2Signer) DownloadCandidates(ctx context.Context, key string, expiry time.Duration) ([]Candidate, error) {
	attach, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("attachment"),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, fmt.Errorf("r2 presign: %w", err)
	}

	plain, err := s.SignedURL(ctx, key, expiry)
	if err != nil {
		return nil, err
	}

	return []Candidate{
		{Name: "presigned-attachment", URL: attach.URL},
		{Name: "presigned", URL: plain},
	}, nil
}
