package loan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/agribank/infra/repository/internal/mockdb"
	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approvedAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func fundedLoan() *loan.Loan {
	return &loan.Loan{
		ID:               uuid.New(),
		ApplicationID:    uuid.New(),
		CustomerID:       uuid.New(),
		DestAccountID:    uuid.New(),
		ApprovedBy:       uuid.New(),
		Amount:           decimal.RequireFromString("10000.00"),
		AnnualRate:       decimal.RequireFromString("0.0300"),
		RemainingBalance: decimal.RequireFromString("10000.00"),
		TermYears:        3,
		Installment:      decimal.RequireFromString("290.81"),
		ApprovedAt:       approvedAt,
		MaturityDate:     approvedAt.AddDate(3, 0, 0),
		NextPayment:      approvedAt.AddDate(0, 1, 0),
		Status:           loan.StatusActive,
		CreatedAt:        approvedAt,
		UpdatedAt:        approvedAt,
	}
}

func TestRepository_CreateSecondLoanForApplication(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)

	mock.ExpectExec(`INSERT INTO "loans"`).
		WillReturnError(mockdb.UniqueViolation("idx_loans_application_id"))

	err := repo.Create(context.Background(), fundedLoan())
	require.ErrorIs(t, err, loan.ErrAlreadyFunded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateInsertsLoan(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)

	mock.ExpectExec(`INSERT INTO "loans"`).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), fundedLoan()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUpdateLocksLoan(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	l := fundedLoan()

	rows := sqlmock.NewRows([]string{
		"id", "application_id", "customer_id", "dest_account_id", "approved_by",
		"amount", "annual_rate", "remaining_balance", "term_years", "installment",
		"approved_at", "maturity_date", "next_payment", "status", "created_at", "updated_at",
	}).AddRow(l.ID, l.ApplicationID, l.CustomerID, l.DestAccountID, l.ApprovedBy,
		"10000.00", "0.0300", "7500.50", 3, "290.81",
		l.ApprovedAt, l.MaturityDate, l.NextPayment, "active", l.CreatedAt, l.UpdatedAt)
	mock.ExpectQuery(`SELECT \* FROM "loans" WHERE id = \$1 .*FOR UPDATE`).WillReturnRows(rows)

	got, err := repo.GetForUpdate(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ApplicationID, got.ApplicationID)
	assert.Equal(t, "7500.50", got.RemainingBalance.StringFixed(2))
	assert.Equal(t, loan.StatusActive, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMissingLoan(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "loans"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, loan.ErrLoanNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ExistsByApplication(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := New(db)
	appID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "loans" WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsByApplication(context.Background(), appID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetForUpdateLocksRow(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := NewApplicationRepository(db)
	id, resolver := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "dest_account_id", "amount", "requested_by",
		"notes", "status", "resolved_by", "created_at", "updated_at",
	}).AddRow(id, uuid.New(), uuid.New(), "5000.00", uuid.New(),
		"harvest", "approved", resolver, approvedAt, approvedAt)
	mock.ExpectQuery(`SELECT \* FROM "loan_applications" WHERE id = \$1 .*FOR UPDATE`).WillReturnRows(rows)

	got, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)
	assert.Equal(t, resolver, got.ResolvedBy)
	assert.Equal(t, "harvest", got.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetForUpdateMissing(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "loan_applications" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetForUpdate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, loan.ErrApplicationNotFound)
}

func TestApplicationRepository_UpdateMissingRow(t *testing.T) {
	db, mock := mockdb.New(t)
	repo := NewApplicationRepository(db)

	mock.ExpectExec(`UPDATE "loan_applications" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &loan.Application{ID: uuid.New()})
	assert.ErrorIs(t, err, loan.ErrApplicationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
