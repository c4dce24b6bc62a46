// Package grid projects the job collection onto calendar cells for a
// day, week, or month view. All projections are pure and total: out of
// range dates are not rejected, they just produce grids far from today.
package grid

import (
	"sort"
	"time"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

// View is the board's zoom level.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// Valid returns true if the view is a known value.
func (v View) Valid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	default:
		return false
	}
}

// Default visible hour band for day and week views.
const (
	DefaultHourStart = 6  // 06:00
	DefaultHourEnd   = 20 // rows up to 19:00-20:00
)

// Grid is a view mode plus a reference date. It is a value; navigation
// returns a new Grid.
type Grid struct {
	View      View
	Reference time.Time
	HourStart int // first visible hour row, inclusive
	HourEnd   int // hour the band ends at, exclusive
}

// New creates a grid. A zero hour band falls back to the defaults.
func New(view View, reference time.Time, hourStart, hourEnd int) Grid {
	if hourEnd <= hourStart {
		hourStart, hourEnd = DefaultHourStart, DefaultHourEnd
	}
	return Grid{
		View:      view,
		Reference: dateutil.TruncateToDay(reference),
		HourStart: hourStart,
		HourEnd:   hourEnd,
	}
}

// Days returns the displayed calendar days, in order. Month grids cover
// whole weeks, so partial weeks at month boundaries are included (35 or
// 42 days depending on alignment).
func (g Grid) Days() []time.Time {
	switch g.View {
	case ViewDay:
		return []time.Time{g.Reference}
	case ViewWeek:
		monday := dateutil.StartOfWeek(g.Reference)
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = monday.AddDate(0, 0, i)
		}
		return days
	default:
		first, last := dateutil.MonthGridRange(g.Reference)
		var days []time.Time
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
		return days
	}
}

// Hours returns the visible hour rows, or nil for month view, which has
// no hour subdivision.
func (g Grid) Hours() []int {
	if g.View == ViewMonth {
		return nil
	}
	hours := make([]int, 0, g.HourEnd-g.HourStart)
	for h := g.HourStart; h < g.HourEnd; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Next shifts the reference date forward by one unit of the current view.
func (g Grid) Next() Grid {
	return g.shift(1)
}

// Previous shifts the reference date back by one unit of the current view.
func (g Grid) Previous() Grid {
	return g.shift(-1)
}

func (g Grid) shift(direction int) Grid {
	switch g.View {
	case ViewDay:
		g.Reference = g.Reference.AddDate(0, 0, direction)
	case ViewWeek:
		g.Reference = g.Reference.AddDate(0, 0, 7*direction)
	default:
		// Day-clamped so a month-end reference shifts exactly one
		// month instead of normalizing past February.
		g.Reference = dateutil.AddMonths(g.Reference, direction)
	}
	return g
}

// Today resets the reference date to now.
func (g Grid) Today(now time.Time) Grid {
	g.Reference = dateutil.TruncateToDay(now)
	return g
}

// WithView switches the view mode, preserving the reference date.
func (g Grid) WithView(v View) Grid {
	g.View = v
	return g
}

// CellKey identifies a bucket cell. Hour is -1 for month cells, which
// have no hour subdivision.
type CellKey struct {
	Date string // "2006-01-02", local date
	Hour int
}

// DayKey returns the month-view cell key for a date.
func DayKey(t time.Time) CellKey {
	return CellKey{Date: t.Format("2006-01-02"), Hour: -1}
}

// HourKey returns the day/week-view cell key for a date and hour.
func HourKey(t time.Time, hour int) CellKey {
	return CellKey{Date: t.Format("2006-01-02"), Hour: hour}
}

// Bucket groups schedulable jobs into grid cells. Month view buckets by
// local date of the effective start; day and week views bucket by
// (date, hour of start). Jobs with no effective window are never placed.
// The input is not mutated; bucket contents are sorted by start instant.
func (g Grid) Bucket(jobs []*job.Job) map[CellKey][]*job.Job {
	buckets := make(map[CellKey][]*job.Job)
	for _, j := range jobs {
		if !j.Schedulable() {
			continue
		}
		w, ok := j.EffectiveWindow()
		if !ok {
			continue
		}

		var key CellKey
		if g.View == ViewMonth {
			key = DayKey(w.Start)
		} else {
			key = HourKey(w.Start, w.Start.Hour())
		}
		buckets[key] = append(buckets[key], j)
	}

	for key := range buckets {
		cell := buckets[key]
		sort.SliceStable(cell, func(a, b int) bool {
			wa, _ := cell[a].EffectiveWindow()
			wb, _ := cell[b].EffectiveWindow()
			return wa.Start.Before(wb.Start)
		})
	}
	return buckets
}

// ByResource groups schedulable jobs by technician, sorted by start
// instant within each group.
func ByResource(jobs []*job.Job) map[string][]*job.Job {
	groups := make(map[string][]*job.Job)
	for _, j := range jobs {
		if !j.Schedulable() {
			continue
		}
		groups[*j.ResourceID] = append(groups[*j.ResourceID], j)
	}
	for id := range groups {
		group := groups[id]
		sort.SliceStable(group, func(a, b int) bool {
			wa, _ := group[a].EffectiveWindow()
			wb, _ := group[b].EffectiveWindow()
			return wa.Start.Before(wb.Start)
		})
	}
	return groups
}
