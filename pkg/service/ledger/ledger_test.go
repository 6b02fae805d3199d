package ledger_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	mrand "math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/amirasaad/agribank/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader counts reads from the wrapped entropy source.
type countingReader struct {
	r     io.Reader
	reads atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads.Add(1)
	return c.r.Read(p)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func newService(env *testutils.Env, opts ...ledger.Option) *ledger.Service {
	return ledger.NewService(env.Deps, append([]ledger.Option{ledger.WithClock(env.Clock.Now)}, opts...)...)
}

func amt(s string) decimal.Decimal { return money.MustParse(s) }

func TestOpenAccount_CustomerLimit(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	entropy := &countingReader{r: rand.Reader}
	svc := newService(env, ledger.WithNumberSource(entropy))
	customer := env.Actor(t, user.RoleCustomer)

	for i := 0; i < 3; i++ {
		a, err := svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID})
		require.NoError(t, err)
		assert.Len(t, a.Number, account.NumberDigits)
		assert.Equal(t, account.TypeSavings, a.Type)
		assert.True(t, a.Balance.IsZero())
		assert.True(t, a.AvailableBalance.IsZero())
		assert.True(t, a.Active)
		assert.Equal(t, uuid.Nil, a.CreatedBy)
	}
	draws := entropy.reads.Load()

	_, err := svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID, CreatorID: customer.ID})
	require.ErrorIs(t, err, account.ErrAccountLimitReached)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, draws, entropy.reads.Load(), "no number is drawn for a rejected opening")

	accounts, err := svc.ListAccounts(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestOpenAccount_CreatorRules(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	branch := uuid.New()
	teller := env.Actor(t, user.RoleTeller, testutils.WithBranch(branch))
	customer := env.Actor(t, user.RoleCustomer)
	other := env.Actor(t, user.RoleCustomer)
	collaborator := env.Actor(t, user.RoleCollaborator)
	manager := env.Actor(t, user.RoleBranchManager)

	a, err := svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID, CreatorID: teller.ID, Type: "checking"})
	require.NoError(t, err)
	assert.Equal(t, teller.ID, a.CreatedBy)
	assert.Equal(t, branch, a.BranchID)
	assert.Equal(t, account.TypeChecking, a.Type)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID, CreatorID: other.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: collaborator.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: collaborator.ID, CreatorID: collaborator.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: collaborator.ID, CreatorID: teller.ID})
	require.NoError(t, err)
	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: collaborator.ID, CreatorID: teller.ID})
	require.ErrorIs(t, err, account.ErrAccountLimitReached)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: manager.ID, CreatorID: teller.ID})
	require.ErrorIs(t, err, policy.ErrCannotHoldAccount)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: uuid.New()})
	require.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID, Type: "gold"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOpenAccount_NumberExhausted(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	entropy := &countingReader{r: zeroReader{}}
	svc := newService(env, ledger.WithNumberSource(entropy), ledger.WithMaxNumberDraws(4))
	customer := env.Actor(t, user.RoleCustomer)

	first, err := svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID})
	require.NoError(t, err)
	assert.Equal(t, "000000000000", first.Number)

	_, err = svc.OpenAccount(ctx, commands.OpenAccount{OwnerID: customer.ID})
	require.ErrorIs(t, err, account.ErrAccountNumberExhausted)
	accounts, err := svc.ListAccounts(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestWithdraw_InsufficientFundsLeavesBalance(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "100.00")

	_, err := svc.WithdrawByCustomer(ctx, commands.Withdraw{
		ActorID: customer.ID, AccountID: acct.ID, Amount: amt("150.00"),
	})
	require.ErrorIs(t, err, account.ErrInsufficientFunds)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got := env.Reload(t, acct.ID)
	assert.Equal(t, "100.00", money.Format(got.Balance))
	assert.Equal(t, "100.00", money.Format(got.AvailableBalance))

	txs, err := svc.ListTransactionsByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Empty(t, env.Bus.Published())
}

func TestCustomerFlows(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	own := env.Account(t, customer, "0")
	stranger := env.Actor(t, user.RoleCustomer)
	theirs := env.Account(t, stranger, "0")

	dep, err := svc.DepositByCustomer(ctx, commands.Deposit{
		ActorID: customer.ID, AccountID: own.ID, Amount: amt("80.00"), Reference: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, account.TransactionDeposit, dep.Type)
	assert.Equal(t, uuid.Nil, dep.SourceAccountID)
	assert.Equal(t, own.ID, dep.DestAccountID)
	assert.Equal(t, own.ID, dep.DirectAccountID)
	assert.True(t, dep.Commission.IsZero())
	assert.Equal(t, "cash", dep.Reference)
	assert.Equal(t, map[string]string{account.MetaOrigin: "customer"}, dep.Metadata)

	wd, err := svc.WithdrawByCustomer(ctx, commands.Withdraw{
		ActorID: customer.ID, AccountID: own.ID, Amount: amt("30.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, own.ID, wd.SourceAccountID)
	assert.Equal(t, uuid.Nil, wd.DestAccountID)
	assert.Equal(t, own.ID, wd.DirectAccountID)

	tr, err := svc.TransferByCustomer(ctx, commands.Transfer{
		ActorID: customer.ID, FromAccountID: own.ID, ToAccountID: theirs.ID, Amount: amt("20.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, own.ID, tr.SourceAccountID)
	assert.Equal(t, theirs.ID, tr.DestAccountID)
	assert.Equal(t, uuid.Nil, tr.DirectAccountID)

	assert.Equal(t, "30.00", env.Balance(t, own.ID))
	assert.Equal(t, "20.00", env.Balance(t, theirs.ID))

	history, err := svc.ListTransactionsByUser(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, tr.ID, history[0].ID, "newest first")
	assert.Equal(t, dep.ID, history[2].ID)

	// Not the holder of the account.
	_, err = svc.DepositByCustomer(ctx, commands.Deposit{
		ActorID: customer.ID, AccountID: theirs.ID, Amount: amt("1.00"),
	})
	require.ErrorIs(t, err, account.ErrNotOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.TransferByCustomer(ctx, commands.Transfer{
		ActorID: customer.ID, FromAccountID: own.ID, ToAccountID: own.ID, Amount: amt("1.00"),
	})
	require.ErrorIs(t, err, account.ErrCannotTransferToSameAccount)
}

func TestTransfer_SameAccountLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	env := testutils.NewEnv(t)
	env.Deps.Logger = slog.New(slog.NewJSONHandler(&buf, nil))
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	own := env.Account(t, customer, "10.00")

	_, err := svc.TransferByCustomer(context.Background(), commands.Transfer{
		ActorID: customer.ID, FromAccountID: own.ID, ToAccountID: own.ID, Amount: amt("1.00"),
	})
	require.ErrorIs(t, err, account.ErrCannotTransferToSameAccount)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "failed: same account")
	assert.Equal(t, "10.00", env.Balance(t, own.ID))
}

func TestCollaboratorDeposit_AccruesCommission(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	collaborator := env.Actor(t, user.RoleCollaborator)
	customer := env.Actor(t, user.RoleCustomer, testutils.WithDocument("01234567-8"))
	acct := env.Account(t, customer, "0")

	tx, err := svc.DepositByCollaborator(ctx, commands.Deposit{
		ActorID: collaborator.ID, Document: "01234567-8", AccountID: acct.ID, Amount: amt("200.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "200.00", env.Balance(t, acct.ID))
	assert.Equal(t, "10.00", money.Format(tx.Commission))
	assert.Equal(t, collaborator.ID, tx.ExecutorID)
	assert.Equal(t, map[string]string{
		account.MetaOrigin:   "collaborator",
		account.MetaDocument: "01234567-8",
	}, tx.Metadata)

	list, err := svc.ListCommissions(ctx, collaborator.ID, collaborator.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	c := list[0]
	assert.Equal(t, tx.ID, c.TransactionID)
	assert.Equal(t, "10.00", money.Format(c.Amount))
	assert.Equal(t, "5.00", money.Format(c.Percentage))
	assert.Equal(t, commission.StatusPending, c.Status)

	require.Len(t, env.Bus.PublishedOfType(events.TypeTransactionRecorded), 1)
	accrued := env.Bus.PublishedOfType(events.TypeCommissionAccrued)
	require.Len(t, accrued, 1)
	assert.Equal(t, c.ID, accrued[0].(events.CommissionAccrued).CommissionID)
}

func TestCollaboratorWithdraw_CommissionRounding(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	collaborator := env.Actor(t, user.RoleCollaborator)
	customer := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "100.00")

	tx, err := svc.WithdrawByCollaborator(ctx, commands.Withdraw{
		ActorID: collaborator.ID, Document: env.Document(t, customer), AccountID: acct.ID, Amount: amt("33.33"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.67", money.Format(tx.Commission))
	assert.Equal(t, "66.67", env.Balance(t, acct.ID))
}

func TestCollaboratorFlows_Rejections(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	collaborator := env.Actor(t, user.RoleCollaborator)
	teller := env.Actor(t, user.RoleTeller)
	customer := env.Actor(t, user.RoleCustomer)
	other := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "50.00")

	tests := []struct {
		name string
		cmd  commands.Deposit
		call func(context.Context, commands.Deposit) (*account.Transaction, error)
		want error
	}{
		{
			name: "teller cannot use the collaborator flow",
			cmd:  commands.Deposit{ActorID: teller.ID, Document: env.Document(t, customer), AccountID: acct.ID, Amount: amt("5")},
			call: svc.DepositByCollaborator,
			want: policy.ErrRoleNotAllowed,
		},
		{
			name: "document of another customer",
			cmd:  commands.Deposit{ActorID: collaborator.ID, Document: env.Document(t, other), AccountID: acct.ID, Amount: amt("5")},
			call: svc.DepositByCollaborator,
			want: account.ErrNotOwner,
		},
		{
			name: "unknown document",
			cmd:  commands.Deposit{ActorID: collaborator.ID, Document: "99999999-9", AccountID: acct.ID, Amount: amt("5")},
			call: svc.DepositByCollaborator,
			want: user.ErrPersonNotFound,
		},
		{
			name: "missing document",
			cmd:  commands.Deposit{ActorID: collaborator.ID, AccountID: acct.ID, Amount: amt("5")},
			call: svc.DepositByCollaborator,
			want: ledger.ErrDocumentRequired,
		},
		{
			name: "non-positive amount",
			cmd:  commands.Deposit{ActorID: collaborator.ID, Document: env.Document(t, customer), AccountID: acct.ID, Amount: amt("0")},
			call: svc.DepositByCollaborator,
			want: domain.ErrInvalidArgument,
		},
		{
			name: "customer flow used by teller",
			cmd:  commands.Deposit{ActorID: teller.ID, AccountID: acct.ID, Amount: amt("5")},
			call: svc.DepositByCustomer,
			want: domain.ErrForbidden,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.call(ctx, tc.cmd)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, "50.00", env.Balance(t, acct.ID))
		})
	}

	list, err := svc.ListCommissions(ctx, collaborator.ID, collaborator.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTellerFlows(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	teller := env.Actor(t, user.RoleTeller)
	customer := env.Actor(t, user.RoleCustomer)
	doc := env.Document(t, customer)
	src := env.Account(t, customer, "0")
	payee := env.Account(t, env.Actor(t, user.RoleCustomer), "0")

	dep, err := svc.DepositByTeller(ctx, commands.Deposit{ActorID: teller.ID, Document: doc, AccountID: src.ID, Amount: amt("75.50")})
	require.NoError(t, err)
	assert.True(t, dep.Commission.IsZero())
	assert.Equal(t, "teller", dep.Metadata[account.MetaOrigin])
	assert.Equal(t, doc, dep.Metadata[account.MetaDocument])

	_, err = svc.WithdrawByTeller(ctx, commands.Withdraw{ActorID: teller.ID, Document: doc, AccountID: src.ID, Amount: amt("0.50")})
	require.NoError(t, err)

	tr, err := svc.TransferByTeller(ctx, commands.Transfer{
		ActorID: teller.ID, Document: doc, FromAccountID: src.ID, ToAccountID: payee.ID, Amount: amt("25.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, doc, tr.Metadata[account.MetaSourceDocument])
	assert.Equal(t, teller.ID, tr.ExecutorID)
	assert.Equal(t, "50.00", env.Balance(t, src.ID))
	assert.Equal(t, "25.00", env.Balance(t, payee.ID))
}

func TestTransfer_AtomicOnFailure(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	teller := env.Actor(t, user.RoleTeller)
	customer := env.Actor(t, user.RoleCustomer)
	src := env.Account(t, customer, "40.00")
	dest := env.Account(t, env.Actor(t, user.RoleCustomer), "10.00")

	_, err := svc.TransferByCustomer(ctx, commands.Transfer{
		ActorID: customer.ID, FromAccountID: src.ID, ToAccountID: dest.ID, Amount: amt("40.01"),
	})
	require.ErrorIs(t, err, account.ErrInsufficientFunds)

	require.NoError(t, svc.Deactivate(ctx, teller.ID, dest.ID))
	_, err = svc.TransferByCustomer(ctx, commands.Transfer{
		ActorID: customer.ID, FromAccountID: src.ID, ToAccountID: dest.ID, Amount: amt("10.00"),
	})
	require.ErrorIs(t, err, account.ErrAccountInactive)

	assert.Equal(t, "40.00", env.Balance(t, src.ID))
	assert.Equal(t, "10.00", env.Balance(t, dest.ID))
	txs, err := svc.ListTransactionsByAccount(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "10.00")

	require.ErrorIs(t, svc.Deactivate(ctx, customer.ID, acct.ID), domain.ErrForbidden)
	assert.True(t, env.Reload(t, acct.ID).Active)

	gm := env.Actor(t, user.RoleGeneralManager)
	require.NoError(t, svc.Deactivate(ctx, gm.ID, acct.ID))
	assert.False(t, env.Reload(t, acct.ID).Active)

	_, err := svc.DepositByCustomer(ctx, commands.Deposit{ActorID: customer.ID, AccountID: acct.ID, Amount: amt("1")})
	require.ErrorIs(t, err, account.ErrAccountInactive)
	assert.Equal(t, "10.00", env.Balance(t, acct.ID))

	require.ErrorIs(t, svc.Deactivate(ctx, gm.ID, uuid.New()), account.ErrAccountNotFound)
}

func TestInactiveActorIsForbidden(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	pending := env.Actor(t, user.RoleTeller, testutils.WithStatus(user.StatusPending))
	customer := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "10.00")

	_, err := svc.DepositByTeller(ctx, commands.Deposit{
		ActorID: pending.ID, Document: env.Document(t, customer), AccountID: acct.ID, Amount: amt("5"),
	})
	require.ErrorIs(t, err, policy.ErrActorInactive)
}

func TestBalanceInvariant(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	a := env.Account(t, customer, "0")
	b := env.Account(t, customer, "0")
	rng := mrand.New(mrand.NewPCG(1, 2))

	expected := map[uuid.UUID]decimal.Decimal{a.ID: money.Zero, b.ID: money.Zero}
	for i := 0; i < 200; i++ {
		amount := decimal.New(rng.Int64N(5000)+1, -2)
		from, to := a.ID, b.ID
		if rng.IntN(2) == 0 {
			from, to = to, from
		}
		var err error
		switch rng.IntN(3) {
		case 0:
			_, err = svc.DepositByCustomer(ctx, commands.Deposit{ActorID: customer.ID, AccountID: from, Amount: amount})
			if err == nil {
				expected[from] = expected[from].Add(amount)
			}
		case 1:
			_, err = svc.WithdrawByCustomer(ctx, commands.Withdraw{ActorID: customer.ID, AccountID: from, Amount: amount})
			if err == nil {
				expected[from] = expected[from].Sub(amount)
			}
		case 2:
			_, err = svc.TransferByCustomer(ctx, commands.Transfer{ActorID: customer.ID, FromAccountID: from, ToAccountID: to, Amount: amount})
			if err == nil {
				expected[from] = expected[from].Sub(amount)
				expected[to] = expected[to].Add(amount)
			}
		}
		if err != nil {
			require.ErrorIs(t, err, account.ErrInsufficientFunds)
		}
		for id, want := range expected {
			got := env.Reload(t, id)
			require.True(t, want.Equal(got.Balance), "step %d: want %s got %s", i, want, got.Balance)
			require.True(t, got.Balance.Equal(got.AvailableBalance))
			require.False(t, got.Balance.IsNegative())
		}
	}
}

func TestConcurrentWithdrawals(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	acct := env.Account(t, customer, "100.00")

	var ok, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.WithdrawByCustomer(ctx, commands.Withdraw{ActorID: customer.ID, AccountID: acct.ID, Amount: amt("10.00")})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, account.ErrInsufficientFunds):
				insufficient.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(10), insufficient.Load())
	assert.Equal(t, "0.00", env.Balance(t, acct.ID))
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	env := testutils.NewEnv(t)
	svc := newService(env)
	customer := env.Actor(t, user.RoleCustomer)
	collaborator := env.Actor(t, user.RoleCollaborator)
	gm := env.Actor(t, user.RoleGeneralManager)
	acct := env.Account(t, customer, "0")

	tx, err := svc.DepositByCollaborator(ctx, commands.Deposit{
		ActorID: collaborator.ID, Document: env.Document(t, customer), AccountID: acct.ID, Amount: amt("10.00"),
	})
	require.NoError(t, err)

	all, err := svc.ListAllTransactions(ctx, gm.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	_, err = svc.ListAllTransactions(ctx, customer.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.50", money.Format(got.Commission))
	_, err = svc.GetTransaction(ctx, uuid.New())
	require.ErrorIs(t, err, account.ErrTransactionNotFound)

	list, err := svc.ListCommissions(ctx, gm.ID, collaborator.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = svc.ListCommissions(ctx, env.Actor(t, user.RoleCollaborator).ID, collaborator.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListTransactionsByAccount(ctx, uuid.New())
	require.ErrorIs(t, err, account.ErrAccountNotFound)
}
