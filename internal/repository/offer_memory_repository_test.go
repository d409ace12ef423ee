package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

func TestMemoryOfferRepositorySortsCourseNamesWithCollation(t *testing.T) {
	repo := NewMemoryOfferRepository(
		models.Offer{ID: "1", CourseName: "Biologia"},
		models.Offer{ID: "2", CourseName: "Álgebra Linear"},
		models.Offer{ID: "3", CourseName: "arquitetura"},
	)

	offers, err := repo.Find(context.Background(), models.OfferFetch{
		Sort:  &models.OfferSort{Column: models.ColumnCourseName, Direction: query.Asc},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, ids(offers))
}

func TestMemoryOfferRepositoryOffsetPastEnd(t *testing.T) {
	repo := NewMemoryOfferRepository(storeFixtures()...)

	offers, err := repo.Find(context.Background(), models.OfferFetch{Offset: 50, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestMemoryOfferRepositoryRejectsDuplicateIDs(t *testing.T) {
	repo := NewMemoryOfferRepository(storeFixtures()...)

	err := repo.InsertMany(context.Background(), []models.Offer{{ID: "o1", CourseName: "Outra"}})
	assert.Error(t, err)

	total, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestMemoryOfferRepositoryHonoursCancellation(t *testing.T) {
	repo := NewMemoryOfferRepository(storeFixtures()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Count(ctx, query.Predicate{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
