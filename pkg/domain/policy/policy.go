// Package policy decides which actor may run which operation. Every check is
// pure and runs before any state is touched.
package policy

import (
	"fmt"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrActorInactive is returned when an actor that is not active tries to act.
	ErrActorInactive = fmt.Errorf("%w: actor is not active", domain.ErrForbidden)
	// ErrRoleNotAllowed is returned when the actor's role may not run an operation.
	ErrRoleNotAllowed = fmt.Errorf("%w: role not allowed", domain.ErrForbidden)
	// ErrCannotHoldAccount is returned when the owner's role may not hold accounts.
	ErrCannotHoldAccount = fmt.Errorf("%w: only customers and collaborators hold accounts", domain.ErrForbidden)
	// ErrCreatorNotAllowed is returned when the creator may not open an account for the owner.
	ErrCreatorNotAllowed = fmt.Errorf("%w: creator may not open this account", domain.ErrForbidden)
)

// Operation names a guarded action.
type Operation string

const (
	OpDepositOwn             Operation = "deposit_own"
	OpWithdrawOwn            Operation = "withdraw_own"
	OpTransferOwn            Operation = "transfer_own"
	OpCollaboratorDeposit    Operation = "collaborator_deposit"
	OpCollaboratorWithdraw   Operation = "collaborator_withdraw"
	OpTellerDeposit          Operation = "teller_deposit"
	OpTellerWithdraw         Operation = "teller_withdraw"
	OpTellerTransfer         Operation = "teller_transfer"
	OpDeactivateAccount      Operation = "deactivate_account"
	OpListAllTransactions    Operation = "list_all_transactions"
	OpListCommissions        Operation = "list_commissions"
	OpSubmitLoanApplication  Operation = "submit_loan_application"
	OpSubmitLoanForCustomer  Operation = "submit_loan_for_customer"
	OpResolveLoanApplication Operation = "resolve_loan_application"
	OpListLoanApplications   Operation = "list_loan_applications"
	OpFundLoan               Operation = "fund_loan"
	OpPayLoan                Operation = "pay_loan"
	OpRegisterForCustomer    Operation = "register_for_customer"
	OpHireTeller             Operation = "hire_teller"
	OpTerminateEmployee      Operation = "terminate_employee"
	OpResolvePersonnelAction Operation = "resolve_personnel_action"
	OpListPersonnelActions   Operation = "list_personnel_actions"
)

// permissions is the single source of truth for role-based access.
var permissions = map[Operation][]user.Role{
	OpDepositOwn:             {user.RoleCustomer},
	OpWithdrawOwn:            {user.RoleCustomer},
	OpTransferOwn:            {user.RoleCustomer},
	OpCollaboratorDeposit:    {user.RoleCollaborator},
	OpCollaboratorWithdraw:   {user.RoleCollaborator},
	OpTellerDeposit:          {user.RoleTeller},
	OpTellerWithdraw:         {user.RoleTeller},
	OpTellerTransfer:         {user.RoleTeller},
	OpDeactivateAccount:      {user.RoleTeller, user.RoleBranchManager, user.RoleGeneralManager},
	OpListAllTransactions:    {user.RoleGeneralManager},
	OpListCommissions:        {user.RoleCollaborator, user.RoleGeneralManager},
	OpSubmitLoanApplication:  {user.RoleCustomer},
	OpSubmitLoanForCustomer:  {user.RoleTeller},
	OpResolveLoanApplication: {user.RoleBranchManager},
	OpListLoanApplications:   {user.RoleBranchManager, user.RoleGeneralManager},
	OpFundLoan:               {user.RoleBranchManager},
	OpPayLoan:                {user.RoleCustomer, user.RoleTeller},
	OpRegisterForCustomer:    {user.RoleTeller},
	OpHireTeller:             {user.RoleBranchManager},
	OpTerminateEmployee:      {user.RoleBranchManager},
	OpResolvePersonnelAction: {user.RoleGeneralManager},
	OpListPersonnelActions:   {user.RoleBranchManager, user.RoleGeneralManager},
}

// Allowed returns the roles permitted to run op.
func Allowed(op Operation) []user.Role {
	return permissions[op]
}

// Authorize checks that actor is active and that its role may run op.
// Unknown operations are denied.
func Authorize(actor *user.User, op Operation) error {
	if !actor.IsActive() {
		return ErrActorInactive
	}
	for _, r := range permissions[op] {
		if actor.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not %s", ErrRoleNotAllowed, actor.Role, op)
}

// RequireRole checks that actor holds exactly role.
func RequireRole(actor *user.User, role user.Role) error {
	if !actor.HasRole(role) {
		return fmt.Errorf("%w: requires %s", ErrRoleNotAllowed, role)
	}
	return nil
}

// RequireOwnership checks that acct belongs to ownerID.
func RequireOwnership(acct *account.Account, ownerID uuid.UUID) error {
	if !acct.IsOwnedBy(ownerID) {
		return account.ErrNotOwner
	}
	return nil
}

// accountRule is the opening rule for one owner role.
type accountRule struct {
	limit           int64
	creatorRequired bool
	ownerMayCreate  bool
}

var accountRules = map[user.Role]accountRule{
	user.RoleCustomer:     {limit: 3, ownerMayCreate: true},
	user.RoleCollaborator: {limit: 1, creatorRequired: true},
}

// AccountLimit returns how many accounts an owner with role may hold. Roles
// that cannot hold accounts get zero.
func AccountLimit(role user.Role) int64 {
	return accountRules[role].limit
}

// CanOpenAccount checks whether creator may open another account for owner,
// who already holds held accounts. creator is nil when the owner acts alone.
// Tellers may open accounts for any account-holding role; owners may open
// their own only where the rule allows it.
func CanOpenAccount(owner, creator *user.User, held int64) error {
	rule, ok := accountRules[owner.Role]
	if !ok {
		return ErrCannotHoldAccount
	}
	acting := owner
	switch {
	case creator == nil:
		if rule.creatorRequired {
			return fmt.Errorf("%w: a teller must open %s accounts", ErrCreatorNotAllowed, owner.Role)
		}
	case creator.ID == owner.ID:
		if !rule.ownerMayCreate {
			return fmt.Errorf("%w: a teller must open %s accounts", ErrCreatorNotAllowed, owner.Role)
		}
	case creator.Role == user.RoleTeller:
		acting = creator
	default:
		return ErrCreatorNotAllowed
	}
	if !acting.IsActive() {
		return ErrActorInactive
	}
	if held >= rule.limit {
		return fmt.Errorf("%w: %s may hold at most %d", account.ErrAccountLimitReached, owner.Role, rule.limit)
	}
	return nil
}
