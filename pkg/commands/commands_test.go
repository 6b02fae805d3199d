package commands_test

import (
	"testing"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeposit() commands.Deposit {
	return commands.Deposit{
		ActorID:   uuid.New(),
		AccountID: uuid.New(),
		Amount:    money.MustParse("200.00"),
	}
}

func TestValidate_Deposit(t *testing.T) {
	require.NoError(t, commands.Validate(validDeposit()))

	tests := []struct {
		name   string
		mutate func(*commands.Deposit)
		field  string
	}{
		{"missing actor", func(c *commands.Deposit) { c.ActorID = uuid.Nil }, "ActorID"},
		{"zero amount", func(c *commands.Deposit) { c.Amount = money.Zero }, "Amount"},
		{"negative amount", func(c *commands.Deposit) { c.Amount = money.MustParse("-5") }, "Amount"},
		{"sub-cent amount", func(c *commands.Deposit) { c.Amount = money.MustParse("1.005") }, "Amount"},
		{"long document", func(c *commands.Deposit) { c.Document = "012345678901234567890" }, "Document"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validDeposit()
			tc.mutate(&cmd)
			err := commands.Validate(cmd)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidate_TransferMissingDestination(t *testing.T) {
	err := commands.Validate(commands.Transfer{
		ActorID:       uuid.New(),
		FromAccountID: uuid.New(),
		Amount:        money.MustParse("1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "ToAccountID")
}

func TestValidate_OpenAccountType(t *testing.T) {
	require.NoError(t, commands.Validate(commands.OpenAccount{OwnerID: uuid.New()}))
	require.NoError(t, commands.Validate(commands.OpenAccount{OwnerID: uuid.New(), Type: "checking"}))
	require.ErrorIs(t, commands.Validate(commands.OpenAccount{OwnerID: uuid.New(), Type: "gold"}), domain.ErrInvalidArgument)
}

func TestValidate_Registration(t *testing.T) {
	ok := commands.Registration{Document: "01234567-8", Username: "ana", Password: "secret1", Role: "customer"}
	require.NoError(t, commands.Validate(ok))

	short := ok
	short.Password = "123"
	require.ErrorIs(t, commands.Validate(short), domain.ErrInvalidArgument)
}
