package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_TypeSafeMethods(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	// outside a transaction
	accountRepo, err := uow.AccountRepository()
	require.NoError(err)
	assert.NotNil(accountRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		users, err := txUow.UserRepository()
		require.NoError(err)
		assert.NotNil(users)
		persons, err := txUow.PersonRepository()
		require.NoError(err)
		assert.NotNil(persons)
		accounts, err := txUow.AccountRepository()
		require.NoError(err)
		assert.NotNil(accounts)
		txs, err := txUow.TransactionRepository()
		require.NoError(err)
		assert.NotNil(txs)
		commissions, err := txUow.CommissionRepository()
		require.NoError(err)
		assert.NotNil(commissions)
		apps, err := txUow.LoanApplicationRepository()
		require.NoError(err)
		assert.NotNil(apps)
		loans, err := txUow.LoanRepository()
		require.NoError(err)
		assert.NotNil(loans)
		actions, err := txUow.PersonnelRepository()
		require.NoError(err)
		assert.NotNil(actions)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModels(t *testing.T) {
	models := Models()
	assert.Len(t, models, 8)
	for _, m := range models {
		_, ok := m.(interface{ TableName() string })
		assert.True(t, ok, "%T has no table name", m)
	}
}
