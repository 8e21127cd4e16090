package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestDate_JSON(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		var d models.Date
		require.NoError(t, json.Unmarshal([]byte(`"2026-09-10"`), &d))
		assert.Equal(t, "2026-09-10", d.String())

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2026-09-10"`, string(out))
	})

	t.Run("empty string is the zero date", func(t *testing.T) {
		var d models.Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("full timestamp tolerated", func(t *testing.T) {
		var d models.Date
		require.NoError(t, json.Unmarshal([]byte(`"2026-09-10T15:04:05Z"`), &d))
		assert.Equal(t, "2026-09-10", d.String())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var d models.Date
		assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	})
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "pending past due",
			task: models.Task{Status: models.StatusPending, DueDate: models.NewDate(2026, time.August, 30)},
			want: true,
		},
		{
			name: "completed past due",
			task: models.Task{Status: models.StatusCompleted, DueDate: models.NewDate(2026, time.August, 30)},
			want: false,
		},
		{
			name: "pending due in the future",
			task: models.Task{Status: models.StatusPending, DueDate: models.NewDate(2026, time.September, 2)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestPriorityAndStatusValid(t *testing.T) {
	assert.True(t, models.PriorityLow.Valid())
	assert.True(t, models.PriorityMedium.Valid())
	assert.True(t, models.PriorityHigh.Valid())
	assert.False(t, models.Priority("urgent").Valid())

	assert.True(t, models.StatusPending.Valid())
	assert.True(t, models.StatusCompleted.Valid())
	assert.False(t, models.Status("archived").Valid())
}
