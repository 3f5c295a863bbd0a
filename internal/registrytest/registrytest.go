// Package registrytest builds an in-memory identity registry with an owner
// and an inspector, for tests of the registries that depend on it.
package registrytest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	identitymodels "landregistry/internal/identity/models"
	identityservice "landregistry/internal/identity/service"
	identitystore "landregistry/internal/identity/store"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/audit"
	auditmemory "landregistry/pkg/platform/audit/store/memory"
	"landregistry/pkg/requestcontext"
)

type Env struct {
	Ledger    *ledger.Memory
	Sequencer *ledger.MemorySequencer
	Events    *auditmemory.InMemoryStore
	Audit     *audit.Publisher
	Identity  *identityservice.Service
	Owner     id.AccountID
	Inspector id.AccountID

	seq atomic.Uint32
}

func New(t testing.TB) *Env {
	t.Helper()
	e := &Env{
		Ledger:    ledger.NewMemory(),
		Sequencer: ledger.NewMemorySequencer(),
		Events:    auditmemory.NewInMemoryStore(),
		Owner:     id.NewAccountID(),
		Inspector: id.NewAccountID(),
	}
	e.Audit = audit.NewPublisher(e.Events)
	st := identitystore.NewInMemoryStore()
	e.Ledger.Register(st, e.Events)
	e.Identity = identityservice.New(st, e.Ledger, e.Sequencer, identityservice.WithAuditPublisher(e.Audit))

	ctx := context.Background()
	require.NoError(t, e.Identity.Bootstrap(ctx, e.Owner))
	_, err := e.Identity.AddInspector(e.As(e.Owner), identitymodels.AddInspectorRequest{
		Account: e.Inspector, Name: "Field Inspector", Age: 40, Designation: "Surveyor",
	})
	require.NoError(t, err)
	return e
}

// As returns a context authenticated as account.
func (e *Env) As(account id.AccountID) context.Context {
	return requestcontext.WithCaller(context.Background(), account)
}

// VerifiedUser registers a fresh account and verifies it, so it holds
// VERIFIED_USER.
func (e *Env) VerifiedUser(t testing.TB) id.AccountID {
	t.Helper()
	account := e.RegisteredUser(t)
	require.NoError(t, e.Identity.VerifyUser(e.As(e.Inspector), account))
	return account
}

// RegisteredUser registers a fresh account without verifying it.
func (e *Env) RegisteredUser(t testing.TB) id.AccountID {
	t.Helper()
	n := e.seq.Add(1)
	account := id.NewAccountID()
	_, err := e.Identity.RegisterUser(e.As(account), identitymodels.RegisterUserRequest{
		Name:         fmt.Sprintf("User %d", n),
		Age:          30,
		City:         "Pune",
		NationalID:   fmt.Sprintf("%012d", n),
		TaxID:        fmt.Sprintf("ABCDE%04dF", n),
		DocumentHash: "QmIdentity",
		Email:        fmt.Sprintf("user%d@example.com", n),
	})
	require.NoError(t, err)
	return account
}
