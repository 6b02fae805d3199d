package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/agribank/infra/repository/internal/mockdb"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordedAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func columns() []string {
	return []string{
		"id", "type", "amount", "commission", "source_account_id", "dest_account_id",
		"direct_account_id", "executor_id", "reference", "metadata", "created_at",
	}
}

func TestRepository_CreateEncodesMetadata(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	meta := map[string]string{account.MetaOrigin: "collaborator", "document": "0912345678"}

	anyArg := sqlmock.AnyArg()
	mock.ExpectExec(`INSERT INTO "transactions"`).
		WithArgs(anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, mockdb.JSON{Want: meta}, anyArg).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &account.Transaction{
		ID:            uuid.New(),
		Type:          account.TransactionDeposit,
		Amount:        decimal.RequireFromString("100.00"),
		Commission:    decimal.RequireFromString("5.00"),
		DestAccountID: uuid.New(),
		ExecutorID:    uuid.New(),
		Metadata:      meta,
		CreatedAt:     recordedAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDecodesMetadata(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	id, dest, exec := uuid.New(), uuid.New(), uuid.New()

	rows := sqlmock.NewRows(columns()).AddRow(
		id, "deposit", "100.00", "0.00", nil, dest, dest, exec, "cash",
		[]byte(`{"origin":"teller","document":"0912345678"}`), recordedAt,
	)
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1`).WillReturnRows(rows)

	tx, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, account.TransactionDeposit, tx.Type)
	assert.Equal(t, uuid.Nil, tx.SourceAccountID)
	assert.Equal(t, dest, tx.DestAccountID)
	assert.Equal(t, map[string]string{"origin": "teller", "document": "0912345678"}, tx.Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNullMetadataIsEmpty(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	id := uuid.New()

	rows := sqlmock.NewRows(columns()).AddRow(
		id, "withdrawal", "10.00", "0.00", uuid.New(), nil, nil, uuid.New(), "", nil, recordedAt,
	)
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(rows)

	tx, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, tx.Metadata)
	assert.Empty(t, tx.Metadata)
}

func TestRepository_GetNotFound(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, account.ErrTransactionNotFound)
}

func TestRepository_ListByAccountsEmpty(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)

	txs, err := repo.ListByAccounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query for an empty id set")
}

func TestRepository_ListByAccountsNewestFirst(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	acct := uuid.New()

	rows := sqlmock.NewRows(columns()).
		AddRow(uuid.New(), "deposit", "2.00", "0.00", nil, acct, acct, uuid.New(), "", nil, recordedAt.Add(time.Minute)).
		AddRow(uuid.New(), "deposit", "1.00", "0.00", nil, acct, acct, uuid.New(), "", nil, recordedAt)
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE .*source_account_id IN .*ORDER BY created_at DESC`).
		WillReturnRows(rows)

	txs, err := repo.ListByAccounts(context.Background(), []uuid.UUID{acct})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "2.00", txs[0].Amount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
