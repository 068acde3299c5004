package drone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func bridgeServer(t *testing.T, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "BCITeam" || pass != "DronesRCool" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		paths = append(paths, r.URL.Path)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestLink_DispatchActuatingCommands(t *testing.T) {
	srv, paths := bridgeServer(t, http.StatusOK)
	link := NewLink(srv.URL, "BCITeam", "DronesRCool", nil)

	tests := []struct {
		cmd      Command
		wantPath string
	}{
		{CommandTakeoff, "/takeoff"},
		{CommandLand, "/land"},
		{CommandRotate, "/yaw_right"},
	}

	for _, tt := range tests {
		result, err := link.Dispatch(context.Background(), tt.cmd)
		if err != nil {
			t.Fatalf("Dispatch(%v) failed: %v", tt.cmd, err)
		}
		if !result.Sent {
			t.Errorf("Dispatch(%v).Sent = false", tt.cmd)
		}
		if result.Status != http.StatusOK {
			t.Errorf("Dispatch(%v).Status = %d", tt.cmd, result.Status)
		}
	}

	want := []string{"/takeoff", "/land", "/yaw_right"}
	if len(*paths) != len(want) {
		t.Fatalf("bridge saw %d requests, want %d", len(*paths), len(want))
	}
	for i, p := range want {
		if (*paths)[i] != p {
			t.Errorf("request %d hit %q, want %q", i, (*paths)[i], p)
		}
	}
}

func TestLink_HoldsNotDispatched(t *testing.T) {
	srv, paths := bridgeServer(t, http.StatusOK)
	link := NewLink(srv.URL, "BCITeam", "DronesRCool", nil)

	for _, cmd := range []Command{CommandHold, CommandGroundedHold} {
		result, err := link.Dispatch(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Dispatch(%v) failed: %v", cmd, err)
		}
		if result.Sent {
			t.Errorf("Dispatch(%v).Sent = true for non-actuating command", cmd)
		}
	}
	if len(*paths) != 0 {
		t.Errorf("bridge saw %d requests for holds, want 0", len(*paths))
	}
}

func TestLink_BadCredentials(t *testing.T) {
	srv, _ := bridgeServer(t, http.StatusOK)
	link := NewLink(srv.URL, "BCITeam", "wrong", nil)

	result, err := link.Dispatch(context.Background(), CommandTakeoff)
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if result.Sent {
		t.Error("Sent = true despite rejection")
	}
}

func TestLink_BridgeError(t *testing.T) {
	srv, _ := bridgeServer(t, http.StatusInternalServerError)
	link := NewLink(srv.URL, "BCITeam", "DronesRCool", nil)

	if _, err := link.Dispatch(context.Background(), CommandLand); err == nil {
		t.Fatal("expected error for bridge failure")
	}
}

func TestStore(t *testing.T) {
	s := NewStore()

	if _, ok := s.Current(); ok {
		t.Error("empty store reports a command")
	}

	s.Set(CommandRecord{
		Command:   CommandTakeoff,
		State:     ActuatorState{VerticalPosition: VerticalAirborne, Lifecycle: LifecycleIdle},
		Reasoning: []string{"all parameters good"},
	})

	rec, ok := s.Current()
	if !ok {
		t.Fatal("store empty after Set")
	}
	if rec.Command != CommandTakeoff {
		t.Errorf("Command = %v, want takeoff", rec.Command)
	}

	// Mutating the returned reasoning must not touch the stored record.
	rec.Reasoning[0] = "mutated"
	again, _ := s.Current()
	if again.Reasoning[0] != "all parameters good" {
		t.Error("Current returned shared reasoning slice")
	}
}

func TestTelemetry(t *testing.T) {
	tel := NewTelemetry()

	snap := tel.Snapshot()
	if snap.Battery > 100 || snap.Battery < 99 {
		t.Errorf("initial battery = %v, want ~100", snap.Battery)
	}
	if snap.Airborne || snap.Altitude != 0 {
		t.Errorf("initial snapshot %+v, want grounded at altitude 0", snap)
	}

	tel.Observe(ActuatorState{VerticalPosition: VerticalAirborne})
	snap = tel.Snapshot()
	if !snap.Airborne {
		t.Error("telemetry not airborne after airborne state observed")
	}
	if snap.Altitude <= 0 {
		t.Errorf("Altitude = %v while airborne, want > 0", snap.Altitude)
	}
}
