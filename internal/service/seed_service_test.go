package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/internal/models"
)

type fakeSeedRepo struct {
	existing  int
	inserted  []models.Offer
	countErr  error
	insertErr error
	inserts   int
}

func (f *fakeSeedRepo) CountAll(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.existing + len(f.inserted), nil
}

func (f *fakeSeedRepo) InsertMany(ctx context.Context, offers []models.Offer) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, offers...)
	return nil
}

const seedPayload = `{
  "offers": [
    {"courseName": " Medicina ", "rating": 4.8, "fullPrice": 1200, "offeredPrice": 876, "kind": "presencial", "level": "bacharelado", "iesLogo": "logo.png", "iesName": "UNIP"},
    {"courseName": "Direito", "rating": 4.1, "fullPrice": "1100.00", "offeredPrice": "770.50", "kind": "presencial", "level": "bacharelado"},
    {"courseName": "", "rating": 4.0, "fullPrice": 100, "offeredPrice": 50, "kind": "ead", "level": "tecnologo"},
    {"courseName": "Pedagogia", "rating": 7, "fullPrice": 450, "offeredPrice": 315, "kind": "ead", "level": "licenciatura"},
    {"courseName": "Logística", "rating": 3.5, "fullPrice": 350, "offeredPrice": 400, "kind": "ead", "level": "tecnologo"}
  ]
}`

func TestSeedServiceInsertsValidOffers(t *testing.T) {
	repo := &fakeSeedRepo{}
	svc := NewSeedService(repo, nil, nil)

	result, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 3, result.Rejected)
	assert.Equal(t, 1, repo.inserts)
	require.Len(t, repo.inserted, 2)

	medicina := repo.inserted[0]
	assert.Equal(t, "Medicina", medicina.CourseName)
	assert.NotEmpty(t, medicina.ID)
	assert.Equal(t, "876", medicina.OfferedPrice.String())
	assert.Equal(t, "770.5", repo.inserted[1].OfferedPrice.String())
	assert.NotEqual(t, medicina.ID, repo.inserted[1].ID)
}

func TestSeedServiceSkipsPopulatedStore(t *testing.T) {
	repo := &fakeSeedRepo{existing: 3}
	svc := NewSeedService(repo, nil, nil)

	result, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Zero(t, repo.inserts)

	result, err = svc.SeedFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err, "file is not read when the store is populated")
	assert.True(t, result.Skipped)
}

func TestSeedServiceIsRepeatable(t *testing.T) {
	repo := &fakeSeedRepo{}
	svc := NewSeedService(repo, nil, nil)

	_, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
	require.NoError(t, err)
	result, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Len(t, repo.inserted, 2)
}

func TestSeedServiceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		svc := NewSeedService(&fakeSeedRepo{}, nil, nil)
		_, err := svc.SeedFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := NewSeedService(&fakeSeedRepo{}, nil, nil)
		_, err := svc.Seed(context.Background(), strings.NewReader(`{"offers": [`))
		assert.Error(t, err)
	})

	t.Run("count failure", func(t *testing.T) {
		boom := errors.New("store down")
		svc := NewSeedService(&fakeSeedRepo{countErr: boom}, nil, nil)
		_, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("insert failure", func(t *testing.T) {
		boom := errors.New("constraint violation")
		svc := NewSeedService(&fakeSeedRepo{insertErr: boom}, nil, nil)
		_, err := svc.Seed(context.Background(), strings.NewReader(seedPayload))
		assert.ErrorIs(t, err, boom)
	})
}
