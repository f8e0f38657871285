package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Window is a daily phase window in Eastern time.
type Window string

const (
	WindowMorning Window = "morning" // 9am-11am ET, open positions
	WindowEvening Window = "evening" // 9pm-11pm ET, settle positions
	WindowNone    Window = "none"
)

// Window boundaries, ET hours.
const (
	morningStartHour = 9
	morningEndHour   = 11
	eveningStartHour = 21
	eveningEndHour   = 23
)

// eastern returns the NBA schedule timezone, falling back to fixed EST when
// the zone database is unavailable.
func eastern() *time.Location {
	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		et = time.FixedZone("ET", -5*60*60)
	}
	return et
}

// DetermineWindow reports which phase window t falls in.
func DetermineWindow(t time.Time) Window {
	hour := t.In(eastern()).Hour()
	switch {
	case hour >= morningStartHour && hour < morningEndHour:
		return WindowMorning
	case hour >= eveningStartHour && hour < eveningEndHour:
		return WindowEvening
	default:
		return WindowNone
	}
}

// NextWindow returns the start of the next phase window after t.
func NextWindow(t time.Time) (time.Time, Window) {
	et := t.In(eastern())
	morning := time.Date(et.Year(), et.Month(), et.Day(), morningStartHour, 0, 0, 0, et.Location())
	evening := time.Date(et.Year(), et.Month(), et.Day(), eveningStartHour, 0, 0, 0, et.Location())

	switch {
	case et.Before(morning):
		return morning, WindowMorning
	case et.Before(evening):
		return evening, WindowEvening
	default:
		return morning.AddDate(0, 0, 1), WindowMorning
	}
}

// SleepUntil blocks until the deadline or ctx cancellation, logging a
// countdown once an hour for long waits.
func SleepUntil(ctx context.Context, deadline time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}

		wait := remaining
		if wait > time.Hour {
			wait = time.Hour
		}
		logger.Info("sleeping", "until", deadline.Format(time.RFC3339), "remaining", remaining.Round(time.Minute))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// FirstBoot reports whether the first-boot flag file is absent.
func FirstBoot(flagPath string) bool {
	_, err := os.Stat(flagPath)
	return os.IsNotExist(err)
}

// MarkFirstBoot writes the first-boot flag file.
func MarkFirstBoot(flagPath string) error {
	if err := os.WriteFile(flagPath, []byte(time.Now().Format(time.RFC3339)+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing first-boot flag: %w", err)
	}
	return nil
}

// Run is the scheduler loop: it waits for each phase window, runs the
// phase, and sleeps to the next one. A fresh data volume triggers one
// immediate morning session so the bot is useful on day one.
func (e *Engine) Run(ctx context.Context) error {
	if FirstBoot(e.cfg.FirstRunFlag()) {
		e.log.Info("first boot, running morning session now")
		if err := e.RunMorning(ctx, time.Now().In(eastern())); err != nil {
			e.notifier.LogError("first-boot morning session", err)
		}
		if err := MarkFirstBoot(e.cfg.FirstRunFlag()); err != nil {
			return err
		}
	}

	lastRun := map[Window]string{}
	for {
		now := time.Now().In(eastern())
		today := now.Format("2006-01-02")

		if window := DetermineWindow(now); window != WindowNone && lastRun[window] != today {
			var err error
			switch window {
			case WindowMorning:
				err = e.RunMorning(ctx, now)
			case WindowEvening:
				err = e.RunEvening(ctx, now)
			}
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				e.notifier.LogError(string(window)+" session", err)
			}
			lastRun[window] = today
			e.notifier.CleanupOldAlerts()
			continue
		}

		next, _ := NextWindow(now)
		if err := SleepUntil(ctx, next, e.log); err != nil {
			e.log.Info("scheduler stopped")
			return nil
		}
	}
}
