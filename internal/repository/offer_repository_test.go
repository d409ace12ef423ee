package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

func newOfferRepoMock(t *testing.T) (*OfferRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	// Bind as postgres so queries are rebound to $N placeholders.
	return NewOfferRepository(sqlx.NewDb(db, "postgres"), time.Second), mock, func() { db.Close() }
}

func TestOfferRepositoryCount(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM offers WHERE kind = $1 AND offered_price >= $2")).
		WithArgs("ead", decimal.NewFromInt(300)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	predicate := query.And(query.Eq(models.ColumnKind, "ead"), query.AtLeast(models.ColumnOfferedPrice, decimal.NewFromInt(300)))
	total, err := repo.Count(context.Background(), predicate)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryCountAll(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM offers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryFindSortedPage(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "course_name", "rating"}).
		AddRow("a1", "Medicina", 4.8).
		AddRow("a2", "Engenharia", 4.5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, rating FROM offers WHERE level = $1 ORDER BY rating DESC, id ASC LIMIT $2 OFFSET $3")).
		WithArgs("bacharelado", 2, 4).
		WillReturnRows(rows)

	offers, err := repo.Find(context.Background(), models.OfferFetch{
		Predicate: query.And(query.Eq(models.ColumnLevel, "bacharelado")),
		Sort:      &models.OfferSort{Column: models.ColumnRating, Direction: query.Desc},
		Offset:    4,
		Limit:     2,
		Columns:   []string{models.ColumnID, models.ColumnCourseName, models.ColumnRating},
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "Medicina", offers[0].CourseName)
	assert.Equal(t, 4.8, offers[0].Rating)
	assert.True(t, offers[0].Columns.Has(models.ColumnRating))
	assert.False(t, offers[0].Columns.Has(models.ColumnFullPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryFindDefaultOrderAllColumns(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(models.OfferColumns).
		AddRow("a1", "Medicina", 4.8, "1200.00", "876.00", "presencial", "bacharelado", "logo.png", "UNIP")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, rating, full_price, offered_price, kind, level, ies_logo, ies_name FROM offers ORDER BY id ASC LIMIT $1")).
		WithArgs(10).
		WillReturnRows(rows)

	offers, err := repo.Find(context.Background(), models.OfferFetch{Limit: 10})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.True(t, decimal.NewFromInt(1200).Equal(offers[0].FullPrice))
	assert.True(t, decimal.NewFromInt(876).Equal(offers[0].OfferedPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryFindError(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT .* FROM offers").WillReturnError(boom)

	_, err := repo.Find(context.Background(), models.OfferFetch{Limit: 10})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryInsertMany(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO offers")
	prep.ExpectExec().
		WithArgs("a1", "Medicina", 4.8, decimal.NewFromInt(1200), decimal.NewFromInt(876), "presencial", "bacharelado", "", "UNIP").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("a2", "Direito", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "presencial", "bacharelado", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.InsertMany(context.Background(), []models.Offer{
		{ID: "a1", CourseName: "Medicina", Rating: 4.8, FullPrice: decimal.NewFromInt(1200), OfferedPrice: decimal.NewFromInt(876), Kind: "presencial", Level: "bacharelado", IESName: "UNIP"},
		{ID: "a2", CourseName: "Direito", Rating: 4.1, FullPrice: decimal.NewFromInt(1100), OfferedPrice: decimal.NewFromInt(770), Kind: "presencial", Level: "bacharelado"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryInsertManyRollsBack(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	boom := errors.New("duplicate key")
	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO offers").ExpectExec().WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.InsertMany(context.Background(), []models.Offer{{ID: "a1", CourseName: "Medicina", Kind: "ead", Level: "tecnologo"}})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryEnsureSchema(t *testing.T) {
	repo, mock, cleanup := newOfferRepoMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS offers").WillReturnResult(sqlmock.NewResult(0, 0))
	for range offerSchema[1:] {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
