package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/offers-api/internal/models"
)

type offerSeedRepository interface {
	CountAll(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, offers []models.Offer) error
}

// seedFile is the layout of the static catalog file.
type seedFile struct {
	Offers []models.Offer `json:"offers"`
}

// SeedResult reports what a seed run did.
type SeedResult struct {
	Skipped  bool
	Inserted int
	Rejected int
}

// SeedService loads the static offer catalog into an empty store.
type SeedService struct {
	repo      offerSeedRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(repo offerSeedRepository, validate *validator.Validate, logger *zap.Logger) *SeedService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SeedService{repo: repo, validator: validate, logger: logger}
	svc.validator.RegisterStructValidation(validateOfferPrices, models.Offer{})
	return svc
}

// SeedFile loads offers from the JSON file at path unless the store already
// holds offers. The file is not opened when seeding is skipped.
func (s *SeedService) SeedFile(ctx context.Context, path string) (SeedResult, error) {
	populated, err := s.populated(ctx)
	if err != nil || populated {
		return SeedResult{Skipped: populated}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return s.seed(ctx, f)
}

// Seed loads offers from r unless the store already holds offers.
func (s *SeedService) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	populated, err := s.populated(ctx)
	if err != nil || populated {
		return SeedResult{Skipped: populated}, err
	}
	return s.seed(ctx, r)
}

func (s *SeedService) populated(ctx context.Context) (bool, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return false, fmt.Errorf("count existing offers: %w", err)
	}
	if count > 0 {
		s.logger.Info("offer store already populated, seeding skipped", zap.Int("offers", count))
		return true, nil
	}
	return false, nil
}

func (s *SeedService) seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	var file seedFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return SeedResult{}, fmt.Errorf("decode seed file: %w", err)
	}

	s.logger.Info("seeding offer store", zap.Int("offers", len(file.Offers)))

	valid := make([]models.Offer, 0, len(file.Offers))
	var result SeedResult
	for i, offer := range file.Offers {
		offer.CourseName = strings.TrimSpace(offer.CourseName)
		offer.Kind = strings.TrimSpace(offer.Kind)
		offer.Level = strings.TrimSpace(offer.Level)
		if err := s.validator.Struct(offer); err != nil {
			result.Rejected++
			s.logger.Warn("invalid offer skipped", zap.Int("index", i), zap.String("course", offer.CourseName), zap.Error(err))
			continue
		}
		if offer.ID == "" {
			offer.ID = uuid.NewString()
		}
		valid = append(valid, offer)
	}

	if len(valid) > 0 {
		if err := s.repo.InsertMany(ctx, valid); err != nil {
			return SeedResult{}, fmt.Errorf("insert seed offers: %w", err)
		}
	}
	result.Inserted = len(valid)

	s.logger.Info("offer seeding completed", zap.Int("inserted", result.Inserted), zap.Int("rejected", result.Rejected))
	return result, nil
}

// validateOfferPrices enforces non-negative prices and offeredPrice <= fullPrice.
func validateOfferPrices(sl validator.StructLevel) {
	offer, ok := sl.Current().Interface().(models.Offer)
	if !ok {
		return
	}
	if offer.FullPrice.IsNegative() {
		sl.ReportError(offer.FullPrice, "fullPrice", "FullPrice", "gte_zero", "")
	}
	if offer.OfferedPrice.IsNegative() {
		sl.ReportError(offer.OfferedPrice, "offeredPrice", "OfferedPrice", "gte_zero", "")
	}
	if offer.OfferedPrice.GreaterThan(offer.FullPrice) {
		sl.ReportError(offer.OfferedPrice, "offeredPrice", "OfferedPrice", "lte_full_price", "")
	}
}
