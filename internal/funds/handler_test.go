package funds

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	id "landregistry/pkg/domain"
	"landregistry/pkg/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, id.AccountID, id.AccountID) {
	t.Helper()
	admin, alice := id.NewAccountID(), id.NewAccountID()
	r := chi.NewRouter()
	NewHandler(newTestService(admin), slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, admin, alice
}

func TestHandleDepositAndBalance(t *testing.T) {
	r, admin, alice := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/funds/"+alice.String()+"/deposits", DepositRequest{Amount: 40})
	rr := testutil.DoRequest(r, testutil.WithCaller(req, admin.String()))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/funds/"+alice.String()+"/"))
	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[BalanceResponse](t, rr)
	assert.Equal(t, int64(40), resp.Balance)
}

func TestHandleDepositRejects(t *testing.T) {
	r, admin, alice := newTestRouter(t)

	t.Run("non-positive amount", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/funds/"+alice.String()+"/deposits", DepositRequest{Amount: 0})
		rr := testutil.DoRequest(r, testutil.WithCaller(req, admin.String()))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/funds/"+alice.String()+"/deposits", DepositRequest{Amount: 5})
		rr := testutil.DoRequest(r, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("bad account", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/funds/nope/"))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

var _ Accounts = (*Service)(nil)
