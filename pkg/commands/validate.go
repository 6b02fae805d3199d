// Package commands contains the validated inputs of the ledger, loan and
// personnel services.
package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	// amount: strictly positive with at most two decimal places.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && money.IsPositive(d) && money.HasCurrencyScale(d)
	})
	return v
}

// Validate checks cmd against its struct tags. Failures wrap
// domain.ErrInvalidArgument and name every offending field.
func Validate(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(fields, "; "))
}
