package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func etTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 8, 26, hour, min, 0, 0, eastern())
}

func TestDetermineWindow(t *testing.T) {
	tests := []struct {
		name string
		hour int
		min  int
		want Window
	}{
		{"before morning", 8, 59, WindowNone},
		{"morning start", 9, 0, WindowMorning},
		{"mid morning", 10, 30, WindowMorning},
		{"morning end", 11, 0, WindowNone},
		{"afternoon", 15, 0, WindowNone},
		{"evening start", 21, 0, WindowEvening},
		{"late evening", 22, 59, WindowEvening},
		{"evening end", 23, 0, WindowNone},
		{"midnight", 0, 0, WindowNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineWindow(etTime(t, tt.hour, tt.min)); got != tt.want {
				t.Errorf("DetermineWindow(%02d:%02d ET) = %v, want %v", tt.hour, tt.min, got, tt.want)
			}
		})
	}
}

func TestDetermineWindowConvertsZones(t *testing.T) {
	// 14:00 UTC in August is 10:00 ET (EDT), inside the morning window.
	utc := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)
	if got := DetermineWindow(utc); got != WindowMorning {
		t.Errorf("DetermineWindow(14:00 UTC) = %v, want morning", got)
	}
}

func TestNextWindow(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		wantHour   int
		wantWindow Window
		wantNext   bool // next day
	}{
		{"early morning", 5, morningStartHour, WindowMorning, false},
		{"inside morning", 10, eveningStartHour, WindowEvening, false},
		{"afternoon", 15, eveningStartHour, WindowEvening, false},
		{"inside evening", 22, morningStartHour, WindowMorning, true},
		{"late night", 23, morningStartHour, WindowMorning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := etTime(t, tt.hour, 30)
			next, window := NextWindow(now)

			if window != tt.wantWindow {
				t.Errorf("window = %v, want %v", window, tt.wantWindow)
			}
			if next.Hour() != tt.wantHour {
				t.Errorf("next hour = %d, want %d", next.Hour(), tt.wantHour)
			}
			wantDay := now.Day()
			if tt.wantNext {
				wantDay++
			}
			if next.Day() != wantDay {
				t.Errorf("next day = %d, want %d", next.Day(), wantDay)
			}
			if !next.After(now) {
				t.Errorf("next window %v is not after %v", next, now)
			}
		})
	}
}

func TestSleepUntilPastDeadlineReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := SleepUntil(context.Background(), time.Now().Add(-time.Hour), nil); err != nil {
		t.Fatalf("SleepUntil: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("SleepUntil blocked on a past deadline")
	}
}

func TestSleepUntilHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SleepUntil(ctx, time.Now().Add(time.Hour), nil)
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestFirstBootFlag(t *testing.T) {
	flag := filepath.Join(t.TempDir(), ".first_run_done")

	if !FirstBoot(flag) {
		t.Error("missing flag should report first boot")
	}
	if err := MarkFirstBoot(flag); err != nil {
		t.Fatalf("MarkFirstBoot: %v", err)
	}
	if FirstBoot(flag) {
		t.Error("flag present should not report first boot")
	}
}
