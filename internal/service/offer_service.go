package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/offers-api/internal/dto"
	"github.com/noah-isme/offers-api/internal/models"
	appErrors "github.com/noah-isme/offers-api/pkg/errors"
	"github.com/noah-isme/offers-api/pkg/logger"
	"github.com/noah-isme/offers-api/pkg/query"
)

type offerRepository interface {
	Count(ctx context.Context, predicate query.Predicate) (int, error)
	Find(ctx context.Context, fetch models.OfferFetch) ([]models.FetchedOffer, error)
}

// OfferService runs offer searches: parse, filter, count, paginate, fetch,
// project and format.
type OfferService struct {
	repo         offerRepository
	parser       *OfferQueryParser
	metrics      *MetricsService
	logger       *zap.Logger
	defaultLimit int
}

// NewOfferService creates a new offer service. A non-positive defaultLimit
// falls back to 10.
func NewOfferService(repo offerRepository, parser *OfferQueryParser, metrics *MetricsService, logger *zap.Logger, defaultLimit int) *OfferService {
	if parser == nil {
		parser = NewOfferQueryParser(DefaultMaxOfferLimit)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLimit <= 0 {
		defaultLimit = defaultOfferLimit
	}
	return &OfferService{repo: repo, parser: parser, metrics: metrics, logger: logger, defaultLimit: defaultLimit}
}

// Search validates raw query parameters and returns the matching page.
// Invalid input is rejected before the store is touched.
func (s *OfferService) Search(ctx context.Context, raw map[string][]string) (*dto.OfferPage, error) {
	q, err := s.parser.Parse(raw)
	if err != nil {
		s.metrics.RecordOfferQuery(OfferQueryRejected, 0)
		logger.FromContext(ctx, s.logger).Debug("offer query rejected", zap.Error(err))
		return nil, err
	}
	return s.List(ctx, q)
}

// List returns one page of offers for an already validated query.
func (s *OfferService) List(ctx context.Context, q models.OfferQuery) (*dto.OfferPage, error) {
	log := logger.FromContext(ctx, s.logger)
	predicate := CompileOfferFilter(q)

	start := time.Now()
	total, err := s.repo.Count(ctx, predicate)
	s.metrics.ObserveDBQuery("offers_count", time.Since(start))
	if err != nil {
		s.metrics.RecordOfferQuery(OfferQueryFailed, 0)
		log.Error("count offers", zap.Stringer("filter", predicate), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to count offers")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	window := ResolvePage(total, q.Page, limit)
	projection := ProjectOfferFields(q.Fields)

	data := []dto.OfferRecord{}
	if total > 0 {
		fetch := models.OfferFetch{
			Predicate: predicate,
			Sort:      offerSort(q),
			Offset:    window.Offset,
			Limit:     window.Limit,
			Columns:   projection.Columns,
		}

		start = time.Now()
		offers, err := s.repo.Find(ctx, fetch)
		s.metrics.ObserveDBQuery("offers_page", time.Since(start))
		if err != nil {
			s.metrics.RecordOfferQuery(OfferQueryFailed, 0)
			log.Error("fetch offers", zap.Stringer("filter", predicate), zap.Int("offset", window.Offset), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch offers")
		}

		data = make([]dto.OfferRecord, 0, len(offers))
		for _, offer := range offers {
			data = append(data, FormatOffer(offer, projection.Output))
		}
	}

	s.metrics.RecordOfferQuery(OfferQueryServed, len(data))
	log.Debug("offer query served",
		zap.Int("total", total),
		zap.Int("page", window.Page),
		zap.Int("items", len(data)),
	)

	return &dto.OfferPage{Data: data, Metadata: window.Metadata()}, nil
}
