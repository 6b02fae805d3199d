package account_test

import (
	"testing"

	domainaccount "github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newFuzzAccount() *domainaccount.Builder {
	return domainaccount.New().WithOwnerID(uuid.New()).WithNumber("000000000001")
}

// FuzzAccountDeposit tests Account.Deposit invariants with random input.
func FuzzAccountDeposit(f *testing.F) {
	f.Add("100.00")
	f.Add("-50")
	f.Add("0")
	f.Add("1e12")
	f.Fuzz(func(t *testing.T, raw string) {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			t.Skip()
		}
		acc, err := newFuzzAccount().Build()
		if err != nil {
			t.Skip()
		}
		before := acc.Balance
		if err := acc.Deposit(amount); err != nil {
			if !acc.Balance.Equal(before) {
				t.Errorf("failed deposit moved balance: %v -> %v (amount=%q)", before, acc.Balance, raw)
			}
			return
		}
		if acc.Balance.IsNegative() {
			t.Errorf("balance is negative after deposit: %v (amount=%q)", acc.Balance, raw)
		}
		if !acc.Balance.Equal(acc.AvailableBalance) {
			t.Errorf("balances diverged: %v != %v", acc.Balance, acc.AvailableBalance)
		}
	})
}

// FuzzAccountWithdraw tests Account.Withdraw invariants with random input.
func FuzzAccountWithdraw(f *testing.F) {
	f.Add("100.00")
	f.Add("-50")
	f.Add("0")
	f.Add("1000000.01")
	f.Fuzz(func(t *testing.T, raw string) {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			t.Skip()
		}
		acc, err := newFuzzAccount().WithBalance(decimal.NewFromInt(1_000_000)).Build()
		if err != nil {
			t.Skip()
		}
		before := acc.Balance
		if err := acc.Withdraw(amount); err != nil {
			if !acc.Balance.Equal(before) {
				t.Errorf("failed withdrawal moved balance: %v -> %v (amount=%q)", before, acc.Balance, raw)
			}
			return
		}
		if acc.Balance.IsNegative() {
			t.Errorf("balance is negative after withdrawal: %v (amount=%q)", acc.Balance, raw)
		}
		if !acc.Balance.Equal(acc.AvailableBalance) {
			t.Errorf("balances diverged: %v != %v", acc.Balance, acc.AvailableBalance)
		}
	})
}
