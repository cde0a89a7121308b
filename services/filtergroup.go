package services

import (
	"strings"
	"time"

	"donorhub/models"
)

// Filter holds the four events-page filter controls. Empty values match
// everything; set values combine with AND semantics.
type Filter struct {
	Type   string
	City   string
	Month  string // month name, e.g. "January"
	Search string
}

func (f Filter) IsZero() bool {
	return f.Type == "" && f.City == "" && f.Month == "" && f.Search == ""
}

// matchesSearch checks the free-text term against title, location,
// description and organizer, case-insensitively.
func matchesSearch(e models.Event, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{e.Title, e.Location, e.Description, e.Organizer} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (f Filter) Matches(e models.Event) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.City != "" && e.Location != f.City {
		return false
	}
	if f.Month != "" && e.Date.Format("January") != f.Month {
		return false
	}
	if f.Search != "" && !matchesSearch(e, f.Search) {
		return false
	}
	return true
}

// FilterEvents returns the events matching the filter, preserving order.
func FilterEvents(events []models.Event, f Filter) []models.Event {
	if f.IsZero() {
		return events
	}
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// MonthGroup is one "Month Year" section of the events page.
type MonthGroup struct {
	Label  string // e.g. "March 2026"
	Events []models.Event
}

// GroupByMonth buckets events under "Month Year" headers. Input order is
// preserved inside each group, and groups appear in the order their first
// event appears, so date-sorted input yields chronological groups.
func GroupByMonth(events []models.Event) []MonthGroup {
	index := make(map[string]int)
	var groups []MonthGroup
	for _, e := range events {
		label := e.Date.Format("January 2006")
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, MonthGroup{Label: label})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

// MonthLabel formats a date the way the group headers do.
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
