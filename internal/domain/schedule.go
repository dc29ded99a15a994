package domain

import (
	"slices"
	"time"
)

// DaySchedule is one calendar day of a trip and the activities on it.
// Date is midnight of that day in the location used for grouping.
type DaySchedule struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// GroupByDay buckets activities into one DaySchedule per calendar day from
// the day of startsAt to the day of endsAt inclusive, as seen in loc.
// Every day is emitted, including days without activities. Within a day,
// activities are ordered by OccursAt ascending. Activities falling on a day
// outside the window are dropped.
func GroupByDay(startsAt, endsAt time.Time, activities []Activity, loc *time.Location) []DaySchedule {
	if loc == nil {
		loc = time.UTC
	}

	first := startOfDay(startsAt, loc)
	last := startOfDay(endsAt, loc)

	days := []DaySchedule{}
	index := map[time.Time]int{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		index[d] = len(days)
		days = append(days, DaySchedule{Date: d, Activities: []Activity{}})
	}

	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b Activity) int {
		return a.OccursAt.Compare(b.OccursAt)
	})

	for _, a := range sorted {
		i, ok := index[startOfDay(a.OccursAt, loc)]
		if !ok {
			continue
		}
		days[i].Activities = append(days[i].Activities, a)
	}
	return days
}

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
