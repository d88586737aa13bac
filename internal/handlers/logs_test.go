package handlers

import (
	"net/http"
	"testing"

	"optiwatt/internal/models"
)

func TestRoomLogsHandler(t *testing.T) {
	s, _ := newTestServices()
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/blocks/b1/rooms/r201/logs", "", testToken)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count int               `json:"count"`
		Logs  []models.DailyLog `json:"logs"`
	}
	decodeBody(t, w, &out)
	if out.Count != 7 || len(out.Logs) != 7 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Logs[0].Day != "Today" || out.Logs[1].Day != "Yesterday" {
		t.Fatalf("unexpected labels: %q, %q", out.Logs[0].Day, out.Logs[1].Day)
	}
	for _, l := range out.Logs {
		if l.UsageKWh < 2 || l.UsageKWh >= 17 {
			t.Fatalf("usage out of range: %+v", l)
		}
	}

	for _, path := range []string{
		"/api/v1/blocks/b1/rooms/nope/logs",
		"/api/v1/blocks/nope/rooms/r201/logs",
	} {
		w = doRequest(r, http.MethodGet, path, "", testToken)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
	}
}
