package personnel

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// registration describes one way of creating a login.
type registration struct {
	name   string
	role   user.Role
	status user.Status
	// op guards the registering actor; empty for self-registration.
	op policy.Operation
}

// RegisterCustomer lets a person register themselves as an active customer.
func (s *Service) RegisterCustomer(ctx context.Context, cmd commands.Registration) (*user.User, error) {
	cmd.ActorID = uuid.Nil
	return s.register(ctx, cmd, registration{
		name:   "RegisterCustomer",
		role:   user.RoleCustomer,
		status: user.StatusActive,
	})
}

// RegisterCustomerByTeller registers an active customer on behalf of a person.
func (s *Service) RegisterCustomerByTeller(ctx context.Context, cmd commands.Registration) (*user.User, error) {
	return s.register(ctx, cmd, registration{
		name:   "RegisterCustomerByTeller",
		role:   user.RoleCustomer,
		status: user.StatusActive,
		op:     policy.OpRegisterForCustomer,
	})
}

// RegisterCollaboratorByTeller registers an active collaborator.
func (s *Service) RegisterCollaboratorByTeller(ctx context.Context, cmd commands.Registration) (*user.User, error) {
	return s.register(ctx, cmd, registration{
		name:   "RegisterCollaboratorByTeller",
		role:   user.RoleCollaborator,
		status: user.StatusActive,
		op:     policy.OpRegisterForCustomer,
	})
}

// HireTeller creates a pending teller on the branch manager's branch and a
// pending hire action for a general manager to resolve.
func (s *Service) HireTeller(ctx context.Context, cmd commands.Registration) (*user.User, error) {
	return s.register(ctx, cmd, registration{
		name:   "HireTeller",
		role:   user.RoleTeller,
		status: user.StatusPending,
		op:     policy.OpHireTeller,
	})
}

func (s *Service) register(ctx context.Context, cmd commands.Registration, r registration) (u *user.User, err error) {
	logger := s.logger.With("actorID", cmd.ActorID, "username", cmd.Username, "role", r.role)
	logger.Info(r.name + " started")
	if err = commands.Validate(cmd); err != nil {
		logger.Error(r.name+" failed: invalid command", "error", err)
		return nil, err
	}
	if user.Role(cmd.Role) != r.role {
		err = fmt.Errorf("%w: got %q, want %q", personnel.ErrRoleMismatch, cmd.Role, r.role)
		logger.Error(r.name+" failed: role mismatch", "error", err)
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), s.hashCost)
	if err != nil {
		logger.Error(r.name+" failed: password hash error", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	unlock, err := s.locker.Lock(ctx, lock.UsernameKey(cmd.Username))
	if err != nil {
		logger.Error(r.name+" failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var actor *user.User
		if r.op != "" {
			found, err := ledger.LoadActor(ctx, uow, cmd.ActorID)
			if err != nil {
				logger.Error(r.name+" failed: actor lookup error", "error", err)
				return err
			}
			actor = found
			if err := policy.Authorize(actor, r.op); err != nil {
				logger.Error(r.name+" failed: not allowed", "error", err)
				return err
			}
		}
		persons, err := uow.PersonRepository()
		if err != nil {
			return err
		}
		person, err := persons.GetByDocument(ctx, cmd.Document)
		if err != nil {
			logger.Error(r.name+" failed: person lookup error", "error", err)
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		switch _, err := users.GetByPersonID(ctx, person.ID); {
		case err == nil:
			logger.Error(r.name+" failed: person already registered", "personID", person.ID)
			return user.ErrPersonHasUser
		case !errors.Is(err, user.ErrUserNotFound):
			return err
		}
		taken, err := users.ExistsByUsername(ctx, cmd.Username)
		if err != nil {
			return err
		}
		if taken {
			logger.Error(r.name+" failed: username taken")
			return user.ErrUsernameTaken
		}

		now := s.now()
		u = &user.User{
			ID:           uuid.New(),
			PersonID:     person.ID,
			Username:     cmd.Username,
			PasswordHash: string(hash),
			Role:         r.role,
			Status:       r.status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if actor != nil {
			u.CreatedBy = actor.ID
			u.BranchID = actor.BranchID
		}
		if err := users.Create(ctx, u); err != nil {
			logger.Error(r.name+" failed: repo create error", "error", err)
			return err
		}
		if r.role != user.RoleTeller {
			return nil
		}
		actions, err := uow.PersonnelRepository()
		if err != nil {
			return err
		}
		return actions.Create(ctx, personnel.NewHire(u.ID, actor.BranchID, actor.ID, now))
	})
	if err != nil {
		return nil, err
	}
	logger.Info(r.name+" successful", "userID", u.ID, "status", u.Status)
	return u, nil
}
