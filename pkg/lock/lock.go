// Package lock serializes read-check-write spans on shared ledger
// resources (accounts, loans, workflow cases) across goroutines and, with a
// distributed backend, across processes.
package lock

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

// ErrNotAcquired is returned when a lock could not be taken before the
// context ended or the retry budget ran out.
var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases every key taken by one Lock call. Calling it more than once
// is a no-op.
type Unlock func()

// Locker takes exclusive locks on a set of keys. Keys are acquired in the
// order returned by Keys, so two callers asking for overlapping sets never
// deadlock on each other. Either every key is held on return or none is.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (Unlock, error)
}

// Keys returns keys sorted, without duplicates or empty entries.
func Keys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// AccountKey names the lock guarding an account's balances.
func AccountKey(id uuid.UUID) string { return "account:" + id.String() }

// LoanKey names the lock guarding a loan's remaining balance.
func LoanKey(id uuid.UUID) string { return "loan:" + id.String() }

// ApplicationKey names the lock guarding a loan application.
func ApplicationKey(id uuid.UUID) string { return "loan-application:" + id.String() }

// OwnerKey names the lock serializing account openings for one owner.
func OwnerKey(id uuid.UUID) string { return "owner:" + id.String() }

// UserKey names the lock guarding an actor's status.
func UserKey(id uuid.UUID) string { return "user:" + id.String() }

// UsernameKey names the lock serializing registrations of one username.
func UsernameKey(username string) string { return "username:" + username }
