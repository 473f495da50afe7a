package scheduler

import (
	"testing"
	"time"
)

func at(day, hour, min int) time.Time {
	// October 2024: the 14th is a Monday.
	return time.Date(2024, time.October, day, hour, min, 0, 0, time.UTC)
}

func TestDailyPrevFire(t *testing.T) {
	d := Daily{Hour: 8, Minute: 0}

	if got := d.PrevFire(at(15, 9, 0)); !got.Equal(at(15, 8, 0)) {
		t.Fatalf("after fire time: got %v", got)
	}
	if got := d.PrevFire(at(15, 7, 59)); !got.Equal(at(14, 8, 0)) {
		t.Fatalf("before fire time: got %v", got)
	}
	if got := d.PrevFire(at(15, 8, 0)); !got.Equal(at(15, 8, 0)) {
		t.Fatalf("exactly at fire time: got %v", got)
	}
}

func TestWeeklyPrevFire(t *testing.T) {
	w := Weekly{Weekday: time.Sunday, Hour: 1, Minute: 0}

	// Tuesday the 15th: the most recent Sunday 01:00 was the 13th.
	if got := w.PrevFire(at(15, 12, 0)); !got.Equal(at(13, 1, 0)) {
		t.Fatalf("midweek: got %v", got)
	}
	// Sunday before 01:00 reaches back a full week.
	if got := w.PrevFire(at(13, 0, 30)); !got.Equal(at(6, 1, 0)) {
		t.Fatalf("same weekday before fire: got %v", got)
	}
	// Sunday after 01:00 is today's occurrence.
	if got := w.PrevFire(at(13, 2, 0)); !got.Equal(at(13, 1, 0)) {
		t.Fatalf("same weekday after fire: got %v", got)
	}
}

func TestHourlyWindowPrevFire(t *testing.T) {
	h := HourlyWindow{StartHour: 8, EndHour: 18, Minute: 30}

	// Inside the window past the minute.
	if got := h.PrevFire(at(15, 10, 45)); !got.Equal(at(15, 10, 30)) {
		t.Fatalf("inside window: got %v", got)
	}
	// Inside the window before the minute: previous hour.
	if got := h.PrevFire(at(15, 10, 10)); !got.Equal(at(15, 9, 30)) {
		t.Fatalf("before minute: got %v", got)
	}
	// First window hour before the minute: yesterday's last slot.
	if got := h.PrevFire(at(15, 8, 10)); !got.Equal(at(14, 17, 30)) {
		t.Fatalf("window start before minute: got %v", got)
	}
	// Before the window opens.
	if got := h.PrevFire(at(15, 6, 0)); !got.Equal(at(14, 17, 30)) {
		t.Fatalf("before window: got %v", got)
	}
	// After the window closes.
	if got := h.PrevFire(at(15, 21, 0)); !got.Equal(at(15, 17, 30)) {
		t.Fatalf("after window: got %v", got)
	}
}

func TestMonthlyPrevFire(t *testing.T) {
	m := Monthly{Day: 1, Hour: 3, Minute: 0}

	if got := m.PrevFire(at(15, 12, 0)); !got.Equal(at(1, 3, 0)) {
		t.Fatalf("mid month: got %v", got)
	}
	// Before the fire on day 1: previous month.
	want := time.Date(2024, time.September, 1, 3, 0, 0, 0, time.UTC)
	if got := m.PrevFire(at(1, 2, 0)); !got.Equal(want) {
		t.Fatalf("day one before fire: got %v", got)
	}
}

func TestMonthlyPrevFireBeforeFireDay(t *testing.T) {
	m := Monthly{Day: 20, Hour: 3, Minute: 0}

	// October 5th precedes the 20th: the most recent occurrence is
	// September 20th, not a date several months back.
	want := time.Date(2024, time.September, 20, 3, 0, 0, 0, time.UTC)
	if got := m.PrevFire(at(5, 12, 0)); !got.Equal(want) {
		t.Fatalf("before fire day: got %v", got)
	}

	// On the fire day after the fire: this month's occurrence.
	if got := m.PrevFire(at(20, 4, 0)); !got.Equal(at(20, 3, 0)) {
		t.Fatalf("fire day after fire: got %v", got)
	}

	// January before the fire day reaches back across the year boundary.
	jan := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	wantDec := time.Date(2024, time.December, 20, 3, 0, 0, 0, time.UTC)
	if got := m.PrevFire(jan); !got.Equal(wantDec) {
		t.Fatalf("year boundary: got %v", got)
	}
}

func TestMonthlyClampsToShortMonths(t *testing.T) {
	m := Monthly{Day: 31, Hour: 0, Minute: 0}

	// April has 30 days; the day-31 schedule clamps to the 30th.
	now := time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)
	if got := m.PrevFire(now); !got.Equal(want) {
		t.Fatalf("clamp: got %v", got)
	}
}
