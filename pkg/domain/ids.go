package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "landregistry/pkg/domain-errors"
)

// AccountID is the opaque principal identifying a caller. It keys identity
// records, role grants and asset ownership.
type AccountID uuid.UUID

// NilAccount is the zero principal. It never identifies a real account.
var NilAccount = AccountID(uuid.Nil)

// NewAccountID generates a fresh random principal.
func NewAccountID() AccountID {
	return AccountID(uuid.New())
}

// ParseAccountID parses and validates an account identifier at a trust boundary.
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NilAccount, dErrors.New(dErrors.CodeBadRequest, "account id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return NilAccount, dErrors.New(dErrors.CodeBadRequest, "invalid account id")
	}
	if parsed == uuid.Nil {
		return NilAccount, dErrors.New(dErrors.CodeBadRequest, "account id cannot be nil")
	}
	return AccountID(parsed), nil
}

func (a AccountID) String() string {
	return uuid.UUID(a).String()
}

func (a AccountID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// MarshalText renders NilAccount as an empty string so it decodes back to
// NilAccount; every other value is its canonical UUID form.
func (a AccountID) MarshalText() ([]byte, error) {
	if a.IsNil() {
		return []byte{}, nil
	}
	return []byte(a.String()), nil
}

func (a *AccountID) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		*a = NilAccount
		return nil
	}
	parsed, err := ParseAccountID(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sequential identifiers. Zero is never assigned.
type (
	LandID      uint64
	RequestID   uint64
	DisputeID   uint64
	InspectorID uint64
)

func parseSequential(s, label string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+label)
	}
	return v, nil
}

func ParseLandID(s string) (LandID, error) {
	v, err := parseSequential(s, "land id")
	return LandID(v), err
}

func ParseRequestID(s string) (RequestID, error) {
	v, err := parseSequential(s, "request id")
	return RequestID(v), err
}

func ParseDisputeID(s string) (DisputeID, error) {
	v, err := parseSequential(s, "dispute id")
	return DisputeID(v), err
}

func (l LandID) String() string      { return strconv.FormatUint(uint64(l), 10) }
func (r RequestID) String() string   { return strconv.FormatUint(uint64(r), 10) }
func (d DisputeID) String() string   { return strconv.FormatUint(uint64(d), 10) }
func (i InspectorID) String() string { return strconv.FormatUint(uint64(i), 10) }
