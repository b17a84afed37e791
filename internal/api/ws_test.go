package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"routesolver/internal/model"
)

func TestProgressStream(t *testing.T) {
	s := newTestServer(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/solve", s.SolveHandler)
	mux.HandleFunc("/v1/solve/", s.ProgressStreamHandler)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/solve/ws1/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	// give the handler time to subscribe before the solve starts publishing
	time.Sleep(50 * time.Millisecond)

	body := solveBody(t, model.SolveRequest{
		ID:      "ws1",
		Problem: testProblem(),
		Options: model.SolveOptions{MaxIterations: 50, Seed: 3},
	})
	resp, err := http.Post(ts.URL+"/v1/solve", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("solve: %d", resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var last model.ProgressEvent
	sawProgress := false
	for {
		var evt model.ProgressEvent
		if err := conn.ReadJSON(&evt); err != nil {
			t.Fatalf("read event: %v (last %+v)", err, last)
		}
		if evt.SolveID != "ws1" {
			t.Fatalf("event for wrong solve: %+v", evt)
		}
		if !evt.Done {
			sawProgress = true
		}
		last = evt
		if evt.Done {
			break
		}
	}
	if !sawProgress {
		t.Fatal("expected at least one intermediate progress event")
	}
	if last.Iteration != 50 {
		t.Fatalf("final event iteration: got %d, want 50", last.Iteration)
	}
}

func TestProgressStreamRejectsBadPath(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.ProgressStreamHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solve/abc", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}
