package editor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"liftlog/internal/api"
	"liftlog/internal/session"
)

func strptr(s string) *string { return &s }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := session.NewMemoryStore()
	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}
	gate, err := session.NewGate(store)
	if err != nil {
		t.Fatal(err)
	}
	return api.NewClient(server.URL, gate), server
}

func TestDraftStartsWithTwoRows(t *testing.T) {
	d := NewDraft()
	if d.Len() != 2 {
		t.Errorf("new draft has %d rows, want 2", d.Len())
	}
	if d.Date == "" {
		t.Error("new draft should be dated today")
	}
}

func TestDraftRemoveRowRefusesLastRow(t *testing.T) {
	d := NewDraft()
	if err := d.RemoveRow(0); err != nil {
		t.Fatalf("RemoveRow(0) with two rows error = %v", err)
	}
	if err := d.RemoveRow(0); err == nil {
		t.Error("RemoveRow should refuse to drop the last row")
	}
	if d.Len() != 1 {
		t.Errorf("rows = %d, want 1", d.Len())
	}
}

func TestDraftUpdateRowIsPartial(t *testing.T) {
	d := NewDraft()
	if err := d.UpdateRow(0, RowPatch{ExerciseID: strptr("3"), Reps: strptr("8")}); err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateRow(0, RowPatch{WeightKg: strptr("60")}); err != nil {
		t.Fatal(err)
	}

	row := d.Rows()[0]
	if row.ExerciseID != "3" || row.Reps != "8" || row.WeightKg != "60" {
		t.Errorf("row = %+v; partial update clobbered a field", row)
	}

	if err := d.UpdateRow(5, RowPatch{}); err == nil {
		t.Error("UpdateRow out of range should error")
	}
}

func TestCompleteRowsFiltersIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		row      DraftRow
		complete bool
	}{
		{"all fields", DraftRow{ExerciseID: "1", Reps: "5", WeightKg: "100"}, true},
		{"zero weight ok", DraftRow{ExerciseID: "1", Reps: "12", WeightKg: "0"}, true},
		{"with rpe", DraftRow{ExerciseID: "2", Reps: "5", WeightKg: "80", RPE: "8.5"}, true},
		{"empty row", DraftRow{}, false},
		{"missing exercise", DraftRow{Reps: "5", WeightKg: "100"}, false},
		{"missing reps", DraftRow{ExerciseID: "1", WeightKg: "100"}, false},
		{"missing weight", DraftRow{ExerciseID: "1", Reps: "5"}, false},
		{"zero reps", DraftRow{ExerciseID: "1", Reps: "0", WeightKg: "100"}, false},
		{"negative reps", DraftRow{ExerciseID: "1", Reps: "-3", WeightKg: "100"}, false},
		{"fractional reps", DraftRow{ExerciseID: "1", Reps: "5.5", WeightKg: "100"}, false},
		{"negative weight", DraftRow{ExerciseID: "1", Reps: "5", WeightKg: "-10"}, false},
		{"non-numeric reps", DraftRow{ExerciseID: "1", Reps: "five", WeightKg: "100"}, false},
		{"non-numeric exercise", DraftRow{ExerciseID: "bench", Reps: "5", WeightKg: "100"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Draft{rows: []DraftRow{tt.row}}
			got := len(d.CompleteRows()) == 1
			if got != tt.complete {
				t.Errorf("row %+v complete = %v, want %v", tt.row, got, tt.complete)
			}
		})
	}
}

func TestCompleteRowsRenumbersVisualOrder(t *testing.T) {
	d := &Draft{rows: []DraftRow{
		{ExerciseID: "1", Reps: "5", WeightKg: "100"},
		{}, // incomplete, dropped
		{ExerciseID: "2", Reps: "8", WeightKg: "60"},
		{ExerciseID: "3", Reps: "10", WeightKg: "40"},
	}}

	// Removing the first row shifts everything up before numbering.
	if err := d.RemoveRow(0); err != nil {
		t.Fatal(err)
	}

	sets := d.CompleteRows()
	if len(sets) != 2 {
		t.Fatalf("complete rows = %d, want 2", len(sets))
	}
	for i, set := range sets {
		if *set.SetIndex != i+1 {
			t.Errorf("set %d has set_index %d, want dense 1..k", i, *set.SetIndex)
		}
	}
	if *sets[0].ExerciseID != 2 || *sets[1].ExerciseID != 3 {
		t.Errorf("order = %v, want current visual order", sets)
	}
}

func TestCompleteRowsDropsBadRPE(t *testing.T) {
	d := &Draft{rows: []DraftRow{
		{ExerciseID: "1", Reps: "5", WeightKg: "100", RPE: "11"},
		{ExerciseID: "1", Reps: "5", WeightKg: "100", RPE: "abc"},
	}}
	sets := d.CompleteRows()
	if len(sets) != 2 {
		t.Fatalf("rows with bad RPE should still be complete, got %d", len(sets))
	}
	for _, set := range sets {
		if set.RPE != nil {
			t.Errorf("out-of-range RPE should be dropped, got %v", *set.RPE)
		}
	}
}

func TestSubmitRejectsEmptyDraftLocally(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	d := NewDraft() // two empty rows, none complete
	_, err := d.Submit(context.Background(), client)
	if !errors.Is(err, ErrNoCompleteRows) {
		t.Fatalf("Submit() error = %v, want ErrNoCompleteRows", err)
	}
	if requests != 0 {
		t.Errorf("submit with no complete rows made %d requests, want 0", requests)
	}
}

func TestSubmitSendsFilteredSets(t *testing.T) {
	var gotBody struct {
		Date  string `json:"date"`
		Title string `json:"title"`
		Sets  []struct {
			ExerciseID int64   `json:"exercise_id"`
			SetIndex   int     `json:"set_index"`
			Reps       int     `json:"reps"`
			WeightKg   float64 `json:"weight_kg"`
		} `json:"sets"`
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/workouts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		decodeJSONBody(t, r, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"date":"2024-06-01","title":"Push day","sets":[]}`))
	})

	d := NewDraft()
	d.Title = "Push day"
	d.Date = "2024-06-01"
	_ = d.UpdateRow(0, RowPatch{ExerciseID: strptr("1"), Reps: strptr("5"), WeightKg: strptr("100")})
	// Row 1 stays empty and must be dropped.

	created, err := d.Submit(context.Background(), client)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.ID != 5 {
		t.Errorf("created.ID = %d", created.ID)
	}
	if gotBody.Title != "Push day" || gotBody.Date != "2024-06-01" {
		t.Errorf("body meta = %+v", gotBody)
	}
	if len(gotBody.Sets) != 1 {
		t.Fatalf("submitted %d sets, want 1", len(gotBody.Sets))
	}
	if gotBody.Sets[0].SetIndex != 1 || gotBody.Sets[0].Reps != 5 {
		t.Errorf("set = %+v", gotBody.Sets[0])
	}
}
