package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"donorhub/models"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: 1, Title: "River Cleanup", Location: "Vientiane", Type: "environment", Organizer: "Green Lao", Date: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Blood Drive", Location: "Pakse", Type: "health", Organizer: "Red Cross", Date: time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "School Paint Day", Location: "Vientiane", Type: "education", Description: "repaint the river school", Date: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)},
	}
}

func TestFilterEvents(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"no filter returns everything", Filter{}, []int64{1, 2, 3}},
		{"by type", Filter{Type: "health"}, []int64{2}},
		{"by city", Filter{City: "Vientiane"}, []int64{1, 3}},
		{"by month name", Filter{Month: "March"}, []int64{1, 2}},
		{"search matches title case-insensitively", Filter{Search: "river"}, []int64{1, 3}},
		{"search matches organizer", Filter{Search: "red cross"}, []int64{2}},
		{"filters combine with AND", Filter{City: "Vientiane", Month: "March"}, []int64{1}},
		{"no match", Filter{Type: "health", City: "Vientiane"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.filter)
			var ids []int64
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGroupByMonth(t *testing.T) {
	groups := GroupByMonth(sampleEvents())

	assert.Len(t, groups, 2)
	assert.Equal(t, "March 2026", groups[0].Label)
	assert.Len(t, groups[0].Events, 2)
	assert.Equal(t, "April 2026", groups[1].Label)
	assert.Len(t, groups[1].Events, 1)
}

func TestGroupByMonthSeparatesYears(t *testing.T) {
	events := []models.Event{
		{ID: 1, Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Date: time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	groups := GroupByMonth(events)

	assert.Len(t, groups, 2)
	assert.Equal(t, "January 2026", groups[0].Label)
	assert.Equal(t, "January 2027", groups[1].Label)
}

func TestGroupByMonthEmpty(t *testing.T) {
	assert.Empty(t, GroupByMonth(nil))
}
