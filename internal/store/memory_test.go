package store

import (
	"fmt"
	"testing"
	"time"

	"routesolver/internal/model"
)

func seedResults(t *testing.T, m *Memory, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		res := model.SolveResult{
			ID:         fmt.Sprintf("sol_%03d", i),
			Value:      float64(i),
			Iterations: 100,
			Routes:     []model.VehicleRoute{{VehicleID: "v1", Stops: []string{"a", "b"}, Cost: float64(i)}},
			CreatedAt:  time.Now().UTC(),
		}
		if err := m.SaveResult(t.Context(), res); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}
}

func TestMemorySaveGet(t *testing.T) {
	m := NewMemory()
	seedResults(t, m, 1)
	got, err := m.GetResult(t.Context(), "sol_000")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.ID != "sol_000" || len(got.Routes) != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.GetResult(t.Context(), "nope"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemorySaveOverwrites(t *testing.T) {
	m := NewMemory()
	seedResults(t, m, 1)
	upd := model.SolveResult{ID: "sol_000", Value: 42}
	if err := m.SaveResult(t.Context(), upd); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	got, err := m.GetResult(t.Context(), "sol_000")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.Value != 42 {
		t.Fatalf("value: got %f, want 42", got.Value)
	}
	items, _, err := m.ListResults(t.Context(), "", 10)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("overwrite must not duplicate: %d items", len(items))
	}
}

func TestMemoryListPagination(t *testing.T) {
	m := NewMemory()
	seedResults(t, m, 5)
	page1, next, err := m.ListResults(t.Context(), "", 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(page1) != 2 || next == "" {
		t.Fatalf("page1: %d items, next %q", len(page1), next)
	}
	page2, next, err := m.ListResults(t.Context(), next, 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(page2) != 2 || next == "" {
		t.Fatalf("page2: %d items, next %q", len(page2), next)
	}
	page3, next, err := m.ListResults(t.Context(), next, 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(page3) != 1 || next != "" {
		t.Fatalf("page3: %d items, next %q", len(page3), next)
	}
	if page1[0].ID == page2[0].ID {
		t.Fatal("pages must not overlap")
	}
}
