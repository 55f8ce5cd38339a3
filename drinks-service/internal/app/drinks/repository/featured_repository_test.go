package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type FeaturedRepositoryTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	repo  FeaturedRepository
	sqlDB *sql.DB
}

func TestFeaturedRepositorySuite(t *testing.T) {
	suite.Run(t, new(FeaturedRepositoryTestSuite))
}

func (s *FeaturedRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewFeaturedRepository(db)
}

func (s *FeaturedRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *FeaturedRepositoryTestSuite) TestGetForDay_Found() {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	s.mock.ExpectQuery(`SELECT \* FROM "featured_items" WHERE day = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "drink_id", "day"}).AddRow(3, 12, day))

	item, err := s.repo.GetForDay(context.Background(), day)

	s.NoError(err)
	s.Equal(int64(12), item.DrinkID)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeaturedRepositoryTestSuite) TestGetForDay_Missing() {
	s.mock.ExpectQuery(`SELECT \* FROM "featured_items" WHERE day = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "drink_id", "day"}))

	item, err := s.repo.GetForDay(context.Background(), time.Now())

	s.ErrorIs(err, ErrFeaturedNotFound)
	s.Nil(item)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeaturedRepositoryTestSuite) TestReplace_DeletesAllThenInserts() {
	item := &entity.FeaturedItem{DrinkID: 4, Day: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "featured_items"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectQuery(`INSERT INTO "featured_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	s.mock.ExpectCommit()

	err := s.repo.Replace(context.Background(), item)

	s.NoError(err)
	s.Equal(int64(9), item.ID)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeaturedRepositoryTestSuite) TestReplace_RollsBackOnInsertError() {
	item := &entity.FeaturedItem{DrinkID: 4, Day: time.Now()}
	insertErr := errors.New("duplicate key value violates unique constraint")

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "featured_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectQuery(`INSERT INTO "featured_items"`).
		WillReturnError(insertErr)
	s.mock.ExpectRollback()

	err := s.repo.Replace(context.Background(), item)

	s.Error(err)
	s.NoError(s.mock.ExpectationsWereMet())
}
