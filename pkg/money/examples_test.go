package money_test

import (
	"fmt"

	"github.com/amirasaad/agribank/pkg/money"
)

// ExampleApplyRate demonstrates a 5% commission on a collaborator deposit.
func ExampleApplyRate() {
	amount := money.MustParse("33.33")
	rate := money.MustParse("0.05")
	fmt.Println(money.Format(money.ApplyRate(amount, rate)))
	// Output: 1.67
}

// ExampleRound demonstrates half-up rounding to currency scale.
func ExampleRound() {
	fmt.Println(money.Format(money.Round(money.MustParse("10.005"))))
	fmt.Println(money.Format(money.Round(money.MustParse("10.004"))))
	// Output:
	// 10.01
	// 10.00
}

// ExampleRateToPercentage demonstrates the persisted percentage form of a rate.
func ExampleRateToPercentage() {
	pct := money.RateToPercentage(money.MustParse("0.05"))
	fmt.Println(money.Format(pct))
	fmt.Println(money.PercentageToRate(pct).String())
	// Output:
	// 5.00
	// 0.05
}

// ExampleParse demonstrates parsing and scale checks on user input.
func ExampleParse() {
	d, err := money.Parse("150.505")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(money.HasCurrencyScale(d))

	_, err = money.Parse("abc")
	fmt.Println(err)
	// Output:
	// false
	// invalid amount: "abc"
}
