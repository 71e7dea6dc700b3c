package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAutomationOrderStatusChanged(t *testing.T) {
	got := make(chan StatusEvent, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev StatusEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Errorf("decode: %v", err)
		}
		got <- ev
	}))
	defer srv.Close()

	a := NewAutomation(srv.URL, &http.Client{Timeout: time.Second}, zap.NewNop())
	res, err := a.OrderStatusChanged(context.Background(), StatusEvent{
		OrderID:   "o-1",
		OldStatus: "PENDENTE",
		NewStatus: "EM_PREPARO",
		Timestamp: time.Now(),
	})
	if err != nil || res.Status != StatusSent {
		t.Fatalf("unexpected result %+v %v", res, err)
	}

	ev := <-got
	if ev.Event != EventOrderStatusChanged || ev.OldStatus != "PENDENTE" || ev.NewStatus != "EM_PREPARO" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestAutomationSkipsWithoutURL(t *testing.T) {
	res, err := NewAutomation("", http.DefaultClient, zap.NewNop()).OrderStatusChanged(context.Background(), StatusEvent{})
	if err != nil || !res.IsSkipped() {
		t.Fatalf("expected skip, got %+v %v", res, err)
	}
}
