package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure AdServiceImpl implements AdService
var _ AdService = (*AdServiceImpl)(nil)

// AdServiceImpl manages homepage announcement banners
type AdServiceImpl struct {
	adRepo repositories.HomepageAdRepository
}

func NewAdService(adRepo repositories.HomepageAdRepository) *AdServiceImpl {
	return &AdServiceImpl{adRepo: adRepo}
}

func (s *AdServiceImpl) Create(ctx context.Context, ad *models.HomepageAd) error {
	if strings.TrimSpace(ad.ImageURL) == "" {
		return fmt.Errorf("ad image url is required")
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}
	return nil
}

func (s *AdServiceImpl) ListActive(ctx context.Context) ([]*models.HomepageAd, error) {
	ads, err := s.adRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}

func (s *AdServiceImpl) ListAll(ctx context.Context) ([]*models.HomepageAd, error) {
	ads, err := s.adRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}

func (s *AdServiceImpl) Update(ctx context.Context, ad *models.HomepageAd) error {
	if err := s.adRepo.Update(ctx, ad); err != nil {
		return fmt.Errorf("failed to update ad: %w", err)
	}
	return nil
}

func (s *AdServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.adRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}
	return nil
}
