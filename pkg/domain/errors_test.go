package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: account not found", domain.ErrNotFound), "not_found"},
		{fmt.Errorf("wrapped: %w", fmt.Errorf("%w: nope", domain.ErrForbidden)), "forbidden"},
		{domain.ErrInvalidArgument, "invalid_argument"},
		{domain.ErrInvalidState, "invalid_state"},
		{domain.ErrAlreadyExists, "already_exists"},
		{errors.New("disk on fire"), "internal"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.Kind(tc.err), "%v", tc.err)
	}
}
