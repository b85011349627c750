package handlers_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/handlers"
	"github.com/zappy-game/server/internal/world"
)

func TestConnectNbrReportsFreeSlots(t *testing.T) {
	w := world.New(10, 10, []string{"t1"}, 3, rand.New(rand.NewSource(1)))
	p := w.JoinTeam("t1", time.Now())

	h := handlers.ConnectNbrHandler{}
	result := h.Process(newTestContext(w, p, ""))
	if !result.Success {
		t.Fatalf("expected Connect_nbr to succeed, got %+v", result)
	}
	if want := "2\n"; result.Reply != want {
		t.Errorf("expected reply %q, got %q", want, result.Reply)
	}
}
