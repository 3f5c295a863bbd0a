package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landregistry/pkg/domain-errors"
)

// TestParseAccountID_Invariants validates the parsing invariant:
// "account ids must be valid, non-empty, non-nil UUIDs"
func TestParseAccountID_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccountID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAccountIDJSON(t *testing.T) {
	acct := NewAccountID()
	b, err := json.Marshal(map[string]AccountID{"owner": acct})
	require.NoError(t, err)
	assert.Contains(t, string(b), acct.String())

	var decoded map[string]AccountID
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, acct, decoded["owner"])

	err = json.Unmarshal([]byte(`{"owner":"not-a-uuid"}`), &decoded)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"owner":"`+uuid.Nil.String()+`"}`), &decoded)
	require.Error(t, err)
}

func TestNilAccountIDJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(map[string]AccountID{"owner": NilAccount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner":""}`, string(b))

	decoded := map[string]AccountID{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded["owner"].IsNil())
}

func TestParseSequentialIDs(t *testing.T) {
	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseLandID("0")
		require.Error(t, err)
	})

	t.Run("rejects negative and garbage", func(t *testing.T) {
		_, err := ParseRequestID("-1")
		require.Error(t, err)
		_, err = ParseDisputeID("abc")
		require.Error(t, err)
	})

	t.Run("accepts positive", func(t *testing.T) {
		id, err := ParseLandID("42")
		require.NoError(t, err)
		assert.Equal(t, LandID(42), id)
		assert.Equal(t, "42", id.String())
	})
}
