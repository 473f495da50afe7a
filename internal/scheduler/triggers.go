package scheduler

import "time"

// Trigger describes a recurring fire schedule. PrevFire returns the most
// recent scheduled occurrence at or before now; a job is due when that
// occurrence is later than its last run, so a delayed tick still fires
// exactly once.
type Trigger interface {
	PrevFire(now time.Time) time.Time
}

// Daily fires every day at Hour:Minute.
type Daily struct {
	Hour   int
	Minute int
}

func (d Daily) PrevFire(now time.Time) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), d.Hour, d.Minute, 0, 0, now.Location())
	if fire.After(now) {
		fire = fire.AddDate(0, 0, -1)
	}
	return fire
}

// Weekly fires once a week on Weekday at Hour:Minute.
type Weekly struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

func (w Weekly) PrevFire(now time.Time) time.Time {
	daysBack := int(now.Weekday() - w.Weekday)
	if daysBack < 0 {
		daysBack += 7
	}
	day := now.AddDate(0, 0, -daysBack)
	fire := time.Date(day.Year(), day.Month(), day.Day(), w.Hour, w.Minute, 0, 0, now.Location())
	if fire.After(now) {
		fire = fire.AddDate(0, 0, -7)
	}
	return fire
}

// HourlyWindow fires at :Minute of every hour in [StartHour, EndHour).
type HourlyWindow struct {
	StartHour int
	EndHour   int
	Minute    int
}

func (h HourlyWindow) PrevFire(now time.Time) time.Time {
	lastHour := h.EndHour - 1

	day := now
	hour := now.Hour()
	switch {
	case hour < h.StartHour:
		day = now.AddDate(0, 0, -1)
		hour = lastHour
	case hour > lastHour:
		hour = lastHour
	}

	fire := time.Date(day.Year(), day.Month(), day.Day(), hour, h.Minute, 0, 0, now.Location())
	if fire.After(now) {
		if hour == h.StartHour {
			day = day.AddDate(0, 0, -1)
			hour = lastHour
		} else {
			hour--
		}
		fire = time.Date(day.Year(), day.Month(), day.Day(), hour, h.Minute, 0, 0, now.Location())
	}
	return fire
}

// Monthly fires on calendar Day at Hour:Minute. Days past the month's end
// clamp to its last day.
type Monthly struct {
	Day    int
	Hour   int
	Minute int
}

func (m Monthly) PrevFire(now time.Time) time.Time {
	fire := monthlyFire(now.Year(), now.Month(), m, now.Location())
	if fire.After(now) {
		prev := now.AddDate(0, 0, -now.Day()) // last day of previous month
		fire = monthlyFire(prev.Year(), prev.Month(), m, now.Location())
	}
	return fire
}

func monthlyFire(year int, month time.Month, m Monthly, loc *time.Location) time.Time {
	day := m.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, m.Hour, m.Minute, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
