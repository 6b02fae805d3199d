package policy_test

import (
	"testing"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(role user.Role) *user.User {
	return &user.User{ID: uuid.New(), Role: role, Status: user.StatusActive}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name  string
		actor *user.User
		op    policy.Operation
		ok    bool
	}{
		{"customer deposits own", actor(user.RoleCustomer), policy.OpDepositOwn, true},
		{"teller cannot deposit own", actor(user.RoleTeller), policy.OpDepositOwn, false},
		{"collaborator deposit", actor(user.RoleCollaborator), policy.OpCollaboratorDeposit, true},
		{"branch manager resolves", actor(user.RoleBranchManager), policy.OpResolveLoanApplication, true},
		{"general manager cannot resolve loans", actor(user.RoleGeneralManager), policy.OpResolveLoanApplication, false},
		{"teller pays loan", actor(user.RoleTeller), policy.OpPayLoan, true},
		{"cleaning cannot pay loan", actor(user.RoleCleaning), policy.OpPayLoan, false},
		{"general manager lists all", actor(user.RoleGeneralManager), policy.OpListAllTransactions, true},
		{"unknown operation", actor(user.RoleGeneralManager), policy.Operation("nope"), false},
		{"nil actor", nil, policy.OpDepositOwn, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Authorize(tc.actor, tc.op)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrForbidden)
		})
	}
}

func TestAuthorize_InactiveActor(t *testing.T) {
	for _, st := range []user.Status{user.StatusInactive, user.StatusPending} {
		a := actor(user.RoleTeller)
		a.Status = st
		err := policy.Authorize(a, policy.OpTellerDeposit)
		require.ErrorIs(t, err, policy.ErrActorInactive)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
}

func TestRequireRoleAndOwnership(t *testing.T) {
	require.NoError(t, policy.RequireRole(actor(user.RoleTeller), user.RoleTeller))
	require.ErrorIs(t, policy.RequireRole(actor(user.RoleCustomer), user.RoleTeller), domain.ErrForbidden)

	owner := uuid.New()
	acct := &account.Account{ID: uuid.New(), OwnerID: owner}
	require.NoError(t, policy.RequireOwnership(acct, owner))
	require.ErrorIs(t, policy.RequireOwnership(acct, uuid.New()), domain.ErrForbidden)
}

func TestCanOpenAccount(t *testing.T) {
	customer := actor(user.RoleCustomer)
	collaborator := actor(user.RoleCollaborator)
	teller := actor(user.RoleTeller)
	manager := actor(user.RoleBranchManager)

	tests := []struct {
		name    string
		owner   *user.User
		creator *user.User
		held    int64
		wantErr error
	}{
		{"customer self without creator", customer, nil, 0, nil},
		{"customer self as creator", customer, customer, 2, nil},
		{"customer via teller", customer, teller, 1, nil},
		{"customer via manager", customer, manager, 0, domain.ErrForbidden},
		{"customer fourth account", customer, nil, 3, account.ErrAccountLimitReached},
		{"collaborator via teller", collaborator, teller, 0, nil},
		{"collaborator alone", collaborator, nil, 0, domain.ErrForbidden},
		{"collaborator self", collaborator, collaborator, 0, domain.ErrForbidden},
		{"collaborator second account", collaborator, teller, 1, account.ErrAccountLimitReached},
		{"teller cannot hold", teller, teller, 0, policy.ErrCannotHoldAccount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.CanOpenAccount(tc.owner, tc.creator, tc.held)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCanOpenAccount_InactiveTeller(t *testing.T) {
	teller := actor(user.RoleTeller)
	teller.Status = user.StatusPending
	err := policy.CanOpenAccount(actor(user.RoleCustomer), teller, 0)
	require.ErrorIs(t, err, policy.ErrActorInactive)
}

func TestAccountLimit(t *testing.T) {
	assert.EqualValues(t, 3, policy.AccountLimit(user.RoleCustomer))
	assert.EqualValues(t, 1, policy.AccountLimit(user.RoleCollaborator))
	assert.Zero(t, policy.AccountLimit(user.RoleTeller))
}
