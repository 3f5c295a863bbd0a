package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
)

func validLandRequest() AddLandRequest {
	return AddLandRequest{
		Area:         500,
		Location:     "Kothrud",
		Price:        100,
		Coordinates:  "18.50,73.80",
		PropertyID:   "PRP-7",
		SurveyNumber: "22/1",
		DocumentHash: "QmDeed",
	}
}

func TestNewLand(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	owner := id.NewAccountID()

	t.Run("starts unverified and unlisted", func(t *testing.T) {
		land, err := NewLand(1, owner, validLandRequest(), now)
		require.NoError(t, err)
		assert.False(t, land.Verified)
		assert.False(t, land.Inspected)
		assert.False(t, land.ForSale)
		assert.Equal(t, now, land.UpdatedAt)
	})

	t.Run("zero id is never assigned", func(t *testing.T) {
		_, err := NewLand(0, owner, validLandRequest(), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	tests := []struct {
		name   string
		mutate func(*AddLandRequest)
		msg    string
	}{
		{"zero area", func(r *AddLandRequest) { r.Area = 0 }, "area must be greater than zero"},
		{"zero price", func(r *AddLandRequest) { r.Price = 0 }, ""},
		{"missing location", func(r *AddLandRequest) { r.Location = "" }, "location is required"},
		{"long survey number", func(r *AddLandRequest) { r.SurveyNumber = strings.Repeat("9", 1001) }, "string too long"},
		{"missing document", func(r *AddLandRequest) { r.DocumentHash = " " }, "document hash is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLandRequest()
			tt.mutate(&req)
			_, err := NewLand(1, owner, req, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			if tt.msg != "" {
				assert.Equal(t, tt.msg, dErrors.MessageOf(err))
			}
		})
	}
}

func TestLandTransitions(t *testing.T) {
	now := time.Now()

	t.Run("inspection happens once", func(t *testing.T) {
		land := &Land{}
		require.NoError(t, land.CanVerify())
		land.ApplyVerification(false, "bad survey", now)
		assert.True(t, land.Inspected)
		assert.False(t, land.Verified)
		assert.True(t, dErrors.HasCode(land.CanVerify(), dErrors.CodeInvalidState))
	})

	t.Run("listing requires verification", func(t *testing.T) {
		land := &Land{}
		assert.Equal(t, "land not verified", dErrors.MessageOf(land.CanList()))
		land.Verified = true
		require.NoError(t, land.CanList())
		land.ForSale = true
		assert.Equal(t, "land already for sale", dErrors.MessageOf(land.CanList()))
		require.NoError(t, land.CanDelist())
	})

	t.Run("transfer delists and keeps the deed when none is given", func(t *testing.T) {
		buyer := id.NewAccountID()
		land := &Land{Owner: id.NewAccountID(), ForSale: true, DocumentHash: "QmOld"}
		land.ApplyTransfer(buyer, "", now)
		assert.Equal(t, buyer, land.Owner)
		assert.False(t, land.ForSale)
		assert.Equal(t, "QmOld", land.DocumentHash)

		land.ApplyTransfer(id.NewAccountID(), "QmNew", now)
		assert.Equal(t, "QmNew", land.DocumentHash)
	})
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("  QmScan ", " survey ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "QmScan", doc.Hash)
	assert.Equal(t, "survey", doc.Description)

	_, err = NewDocument("QmScan", "", time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
