package source

import (
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/reqindex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() model.Record {
	return model.Record{
		Title:       "Burst pipe",
		Description: "Water everywhere",
		Category:    model.CategoryWaterAndSanitation,
		Location:    "Long Street, Gardens",
		Priority:    model.PriorityHigh,
		Status:      model.StatusSubmitted,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Record)
		field  string
	}{
		{"valid", func(*model.Record) {}, ""},
		{"missing title", func(r *model.Record) { r.Title = "" }, "Record.Title"},
		{"long title", func(r *model.Record) { r.Title = strings.Repeat("x", 101) }, "Record.Title"},
		{"long description", func(r *model.Record) { r.Description = strings.Repeat("x", 501) }, "Record.Description"},
		{"missing location", func(r *model.Record) { r.Location = "" }, "Record.Location"},
		{"bad category", func(r *model.Record) { r.Category = model.Category(42) }, "Record.Category"},
		{"zero priority", func(r *model.Record) { r.Priority = 0 }, "Record.Priority"},
		{"bad status", func(r *model.Record) { r.Status = model.Status(9) }, "Record.Status"},
		{"bad email", func(r *model.Record) { r.Contact.Email = "not-an-email" }, "Record.Contact.Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := Validate(r)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRecord)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSampleRecordsAreValid(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := SampleRecords(now)
	require.Len(t, recs, 10)

	for i, r := range recs {
		assert.Equal(t, model.ID(i+1), r.ID)
		assert.NoError(t, Validate(r), "record %d", r.ID)
		assert.True(t, r.CreatedAt.Before(now))
	}
}
