// Package access is the single capability check every mutating registry
// operation goes through: an authenticated caller, the global pause gate, and
// any role or ownership requirement.
package access

import (
	"context"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/requestcontext"
)

// Checker answers the questions a Guard asks. The identity registry provides it.
type Checker interface {
	HasRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error)
	IsOwner(ctx context.Context, account id.AccountID) (bool, error)
	IsPaused(ctx context.Context) (bool, error)
}

// Requirement is one capability a caller must hold.
type Requirement struct {
	denial string
	check  func(ctx context.Context, c Checker, caller id.AccountID) (bool, error)
}

// Role requires the caller to hold role.
func Role(role id.Role) Requirement {
	return Requirement{
		denial: "missing required role: " + string(role),
		check: func(ctx context.Context, c Checker, caller id.AccountID) (bool, error) {
			return c.HasRole(ctx, caller, role)
		},
	}
}

// Owner requires the caller to be the distinguished registry owner.
func Owner() Requirement {
	return Requirement{
		denial: "caller is not the registry owner",
		check: func(ctx context.Context, c Checker, caller id.AccountID) (bool, error) {
			return c.IsOwner(ctx, caller)
		},
	}
}

// Is requires the caller to be exactly account, e.g. the owner of a record.
func Is(account id.AccountID, denial string) Requirement {
	return Requirement{
		denial: denial,
		check: func(_ context.Context, _ Checker, caller id.AccountID) (bool, error) {
			return !account.IsNil() && caller == account, nil
		},
	}
}

// Check adapts a registry-local predicate, such as an allow-list lookup.
func Check(denial string, fn func(ctx context.Context, caller id.AccountID) (bool, error)) Requirement {
	return Requirement{
		denial: denial,
		check: func(ctx context.Context, _ Checker, caller id.AccountID) (bool, error) {
			return fn(ctx, caller)
		},
	}
}

// AnyOf is satisfied when at least one of reqs is.
func AnyOf(reqs ...Requirement) Requirement {
	denial := "caller lacks the required capability"
	if len(reqs) > 0 {
		denial = reqs[0].denial
	}
	return Requirement{
		denial: denial,
		check: func(ctx context.Context, c Checker, caller id.AccountID) (bool, error) {
			for _, r := range reqs {
				ok, err := r.check(ctx, c, caller)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

// Guard evaluates requirements against the caller carried in the context.
type Guard struct {
	checker Checker
}

func NewGuard(checker Checker) *Guard {
	return &Guard{checker: checker}
}

// Caller returns the authenticated caller or an unauthorized error.
func (g *Guard) Caller(ctx context.Context) (id.AccountID, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsNil() {
		return id.NilAccount, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	return caller, nil
}

// Mutation authorizes a state-mutating operation: caller present, registry
// not paused, every requirement met. It returns the caller.
func (g *Guard) Mutation(ctx context.Context, reqs ...Requirement) (id.AccountID, error) {
	caller, err := g.Caller(ctx)
	if err != nil {
		return id.NilAccount, err
	}
	paused, err := g.checker.IsPaused(ctx)
	if err != nil {
		return id.NilAccount, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read pause state")
	}
	if paused {
		return id.NilAccount, dErrors.New(dErrors.CodeInvalidState, "registry is paused")
	}
	if err := g.Require(ctx, caller, reqs...); err != nil {
		return id.NilAccount, err
	}
	return caller, nil
}

// Unpausable authorizes an operation that must stay reachable while paused.
func (g *Guard) Unpausable(ctx context.Context, reqs ...Requirement) (id.AccountID, error) {
	caller, err := g.Caller(ctx)
	if err != nil {
		return id.NilAccount, err
	}
	if err := g.Require(ctx, caller, reqs...); err != nil {
		return id.NilAccount, err
	}
	return caller, nil
}

// Require checks reqs for an explicit account.
func (g *Guard) Require(ctx context.Context, account id.AccountID, reqs ...Requirement) error {
	for _, r := range reqs {
		ok, err := r.check(ctx, g.checker, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to evaluate permissions")
		}
		if !ok {
			return dErrors.New(dErrors.CodeForbidden, r.denial)
		}
	}
	return nil
}
