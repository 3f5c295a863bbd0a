package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landregistry/pkg/domain-errors"
)

func TestText(t *testing.T) {
	t.Run("1000 characters is accepted", func(t *testing.T) {
		require.NoError(t, Text("name", strings.Repeat("a", 1000)))
	})

	t.Run("1001 characters is too long", func(t *testing.T) {
		err := Text("name", strings.Repeat("a", 1001))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "string too long", dErrors.MessageOf(err))
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		require.NoError(t, Text("name", strings.Repeat("é", 1000)))
	})

	t.Run("blank is rejected", func(t *testing.T) {
		err := Text("city", "  ")
		require.Error(t, err)
		assert.Equal(t, "city is required", dErrors.MessageOf(err))
	})
}

func TestIdentityDocuments(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		input   string
		wantErr bool
	}{
		{"national id twelve digits", NationalID, "123456789012", false},
		{"national id eleven digits", NationalID, "12345678901", true},
		{"national id with letter", NationalID, "12345678901A", true},
		{"tax id valid", TaxID, "ABCDE1234F", false},
		{"tax id lowercase", TaxID, "abcde1234f", true},
		{"tax id wrong shape", TaxID, "ABCD12345F", true},
		{"tax id too long", TaxID, "ABCDE1234FG", true},
		{"email valid", Email, "owner@example.com", false},
		{"email missing at", Email, "owner.example.com", true},
		{"email missing domain dot", Email, "owner@example", true},
		{"email trailing dot", Email, "owner@example.", true},
		{"email two ats", Email, "a@b@example.com", true},
		{"email empty local", Email, "@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNumericRules(t *testing.T) {
	require.NoError(t, Adult(18))
	require.Error(t, Adult(17))
	require.NoError(t, Price(1))
	require.Error(t, Price(0))
	require.Error(t, Price(-5))
}
