package api

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"liftlog/internal/constants"
	"liftlog/internal/models"
)

var emptyList = json.RawMessage("[]")

// listEnvelope covers every wrapping shape the list endpoints have been seen
// to use across backend versions. The field order below is also the fallback
// priority order; callers depend on it being fixed.
type listEnvelope struct {
	Items    json.RawMessage `json:"items"`
	Results  json.RawMessage `json:"results"`
	Data     json.RawMessage `json:"data"`
	Workouts json.RawMessage `json:"workouts"`
}

// NormalizeList reduces a list-shaped response to a plain JSON array. A raw
// array passes through unchanged; otherwise the first non-null envelope
// field wins, checked in the order items, results, data, workouts. Anything
// else normalizes to an empty list.
func NormalizeList(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return emptyList
	}
	if trimmed[0] == '[' {
		return trimmed
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return emptyList
	}
	for _, candidate := range []json.RawMessage{env.Items, env.Results, env.Data, env.Workouts} {
		if isPresent(candidate) {
			return candidate
		}
	}
	return emptyList
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// SortByRecency orders workout summaries newest first. Dates are ISO
// YYYY-MM-DD strings, so lexical comparison equals chronological order;
// created_at stands in when date is absent. The sort is stable so ties keep
// their server order.
func SortByRecency(list []models.WorkoutSummary) []models.WorkoutSummary {
	sorted := make([]models.WorkoutSummary, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return recencyKey(sorted[i]) > recencyKey(sorted[j])
	})
	return sorted
}

func recencyKey(w models.WorkoutSummary) string {
	if w.Date != "" {
		return w.Date
	}
	return w.CreatedAt
}

// ToLocalDisplayDate renders an ISO calendar date for display. The date is
// anchored to local midnight so a timezone offset can never shift the
// calendar day. Unparseable input is returned unchanged.
func ToLocalDisplayDate(isoDate string) string {
	t, err := time.ParseInLocation(constants.DateFormat, isoDate, time.Local)
	if err != nil {
		return isoDate
	}
	return t.Format("Mon, Jan 2 2006")
}
