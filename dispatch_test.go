package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"gofeeder/indicator"
	"gofeeder/server"
	"gofeeder/servo"
)

// fakeGenerator implements pulse.Generator and records duty writes.
type fakeGenerator struct {
	duties  []uint32
	failing bool
}

func (g *fakeGenerator) SetDutyMicroseconds(us uint32) error {
	if g.failing {
		return errors.New("comparator write failed")
	}
	g.duties = append(g.duties, us)
	return nil
}

func (g *fakeGenerator) Close() error { return nil }

func testApp(t *testing.T, gen *fakeGenerator) *App {
	t.Helper()

	cfg := &Config{ResetDelayMs: 10}
	cfg.applyDefaults()

	app := &App{cfg: cfg, indicator: &indicator.Noop{}}
	if gen != nil {
		s, err := servo.New(gen, cfg.Servo)
		if err != nil {
			t.Fatalf("servo.New: %v", err)
		}
		app.servo = s
	}
	return app
}

func TestFeedResponseExactBytes(t *testing.T) {
	got := feedResponse('5', 90, time.Second)
	want := "OK: Command 5 -> Angle 90° (auto reset in 1s)\n"
	if got != want {
		t.Errorf("feedResponse = %q, want %q", got, want)
	}
}

func TestHandleCommandMovesAndResponds(t *testing.T) {
	gen := &fakeGenerator{}
	app := testApp(t, gen)

	var buf bytes.Buffer
	app.handleCommand('7', &buf)

	want := "OK: Command 7 -> Angle 126° (auto reset in 10ms)\n"
	if buf.String() != want {
		t.Errorf("response = %q, want %q", buf.String(), want)
	}

	// Init home, target, home again.
	wantDuties := []uint32{500, 1900, 500}
	if len(gen.duties) != len(wantDuties) {
		t.Fatalf("duty writes = %v, want %v", gen.duties, wantDuties)
	}
	for i := range wantDuties {
		if gen.duties[i] != wantDuties[i] {
			t.Errorf("duty[%d] = %d, want %d", i, gen.duties[i], wantDuties[i])
		}
	}
}

func TestHandleCommandServoMissing(t *testing.T) {
	app := testApp(t, nil)

	var buf bytes.Buffer
	app.handleCommand('5', &buf)

	if buf.String() != respServoNotReady {
		t.Errorf("response = %q, want %q", buf.String(), respServoNotReady)
	}
}

func TestHandleCommandHardwareFault(t *testing.T) {
	gen := &fakeGenerator{}
	app := testApp(t, gen)

	gen.failing = true
	var buf bytes.Buffer
	app.handleCommand('5', &buf)

	if buf.String() != respServoNotReady {
		t.Errorf("response = %q, want %q", buf.String(), respServoNotReady)
	}
	if !app.faulted.Load() {
		t.Error("hardware fault did not mark the app faulted")
	}

	// The actuation path stays dead; later commands get the error line
	// without touching the generator.
	gen.failing = false
	buf.Reset()
	app.handleCommand('3', &buf)

	if buf.String() != respServoNotReady {
		t.Errorf("response after fault = %q, want %q", buf.String(), respServoNotReady)
	}
	if len(gen.duties) != 1 { // only the init home write
		t.Errorf("duty writes after fault = %v, want just the init home", gen.duties)
	}
}

func TestHandleCommandInvalidByteIgnored(t *testing.T) {
	gen := &fakeGenerator{}
	app := testApp(t, gen)

	var buf bytes.Buffer
	app.handleCommand('x', &buf)

	if buf.Len() != 0 {
		t.Errorf("invalid command produced response %q", buf.String())
	}
	if len(gen.duties) != 1 { // only the init home write
		t.Errorf("invalid command moved the servo: %v", gen.duties)
	}
}

// End to end over loopback, checking exact wire bytes.
func TestFeederOverTCP(t *testing.T) {
	gen := &fakeGenerator{}
	app := testApp(t, gen)

	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("probe port: %v", err)
	}
	port := probe.Addr().(*net.TCPAddr).Port
	probe.Close()

	srv, err := server.New(server.Config{Port: port}, func(cmd byte, conn net.Conn) {
		app.handleCommand(cmd, conn)
	})
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	go srv.Serve()
	t.Cleanup(srv.Stop)

	addr := fmt.Sprintf("127.0.0.1:%d", port)

	exchange := func(payload string) string {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		if _, err := conn.Write([]byte(payload)); err != nil {
			t.Fatalf("write: %v", err)
		}
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		got, err := io.ReadAll(conn)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return string(got)
	}

	if got, want := exchange("5"), "OK: Command 5 -> Angle 90° (auto reset in 10ms)\n"; got != want {
		t.Errorf("exchange(\"5\") = %q, want %q", got, want)
	}
	if got, want := exchange("a7\n"), "OK: Command 7 -> Angle 126° (auto reset in 10ms)\n"; got != want {
		t.Errorf("exchange(\"a7\\n\") = %q, want %q", got, want)
	}
}
