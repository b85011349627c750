package engine_test

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/zappy-game/server/internal/engine"
)

func startTestEngine(t *testing.T, cfg engine.Config) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	cfg.Listener = ln
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eng.Run(ctx)
		close(done)
	}()

	return ln.Addr().String(), func() {
		cancel()
		<-done
	}
}

func dialAndRead(t *testing.T, addr string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	return conn, bufio.NewReader(conn)
}

func TestMovementRoundTrip(t *testing.T) {
	addr, stop := startTestEngine(t, engine.Config{
		Width: 10, Height: 10, Frequency: 100,
		TeamNames: []string{"t1"}, SlotsPerTeam: 1, Seed: 1,
	})
	defer stop()

	conn, r := dialAndRead(t, addr)
	defer conn.Close()

	if line, _ := r.ReadString('\n'); line != "WELCOME\n" {
		t.Fatalf("expected WELCOME banner, got %q", line)
	}

	conn.Write([]byte("t1\n"))
	if line, _ := r.ReadString('\n'); line != "1\n" {
		t.Fatalf("expected 1 remaining slot, got %q", line)
	}
	if line, _ := r.ReadString('\n'); line != "10 10\n" {
		t.Fatalf("expected map size, got %q", line)
	}

	conn.Write([]byte("Forward\n"))
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("expected a reply to Forward, got error: %v", err)
	}
	if line != "ok\n" {
		t.Fatalf("expected ok, got %q", line)
	}
}

func TestGUIBindReceivesSyncSequence(t *testing.T) {
	addr, stop := startTestEngine(t, engine.Config{
		Width: 10, Height: 10, Frequency: 100,
		TeamNames: []string{"t1"}, SlotsPerTeam: 2, Seed: 2,
	})
	defer stop()

	conn, r := dialAndRead(t, addr)
	defer conn.Close()

	r.ReadString('\n') // WELCOME
	conn.Write([]byte("GRAPHIC\n"))

	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("expected msz as first sync line, got error: %v", err)
	}
	if line != "msz 10 10\n" {
		t.Fatalf("expected msz 10 10, got %q", line)
	}
}

func TestSecondGUIConnectionIsRejected(t *testing.T) {
	addr, stop := startTestEngine(t, engine.Config{
		Width: 10, Height: 10, Frequency: 100,
		TeamNames: []string{"t1"}, SlotsPerTeam: 1, Seed: 3,
	})
	defer stop()

	first, r1 := dialAndRead(t, addr)
	defer first.Close()
	r1.ReadString('\n')
	first.Write([]byte("GRAPHIC\n"))
	r1.ReadString('\n') // msz, enough to know the bind succeeded

	second, r2 := dialAndRead(t, addr)
	defer second.Close()
	r2.ReadString('\n') // WELCOME
	second.Write([]byte("GRAPHIC\n"))

	line, err := r2.ReadString('\n')
	if err != nil {
		t.Fatalf("expected ko before disconnect, got error: %v", err)
	}
	if line != "ko\n" {
		t.Fatalf("expected ko for a second GUI, got %q", line)
	}
}

func TestUnknownTeamNameIsRefused(t *testing.T) {
	addr, stop := startTestEngine(t, engine.Config{
		Width: 10, Height: 10, Frequency: 100,
		TeamNames: []string{"t1"}, SlotsPerTeam: 1, Seed: 4,
	})
	defer stop()

	conn, r := dialAndRead(t, addr)
	defer conn.Close()
	r.ReadString('\n') // WELCOME
	conn.Write([]byte("nosuchteam\n"))

	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("expected ko, got error: %v", err)
	}
	if line != "ko\n" {
		t.Fatalf("expected ko for an unknown team, got %q", line)
	}
}
