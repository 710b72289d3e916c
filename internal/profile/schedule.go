package profile

import (
	"time"

	"github.com/gorhill/cronexpr"
)

// CronFor maps a task schedule to its cron expression. All recurring work
// fires at 09:00 local time.
func CronFor(schedule string) string {
	switch schedule {
	case ScheduleWeekdays:
		return "0 9 * * 1-5"
	case ScheduleWeekly:
		return "0 9 * * 1"
	default:
		return "0 9 * * *"
	}
}

// IsDue reports whether a task with the given schedule should run at now,
// given when it last ran. A task that never ran is always due.
func IsDue(schedule string, last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	expr, err := cronexpr.Parse(CronFor(schedule))
	if err != nil {
		return now.Sub(*last) >= 24*time.Hour
	}
	next := expr.Next(*last)
	return !next.After(now)
}

// DueTasks returns the indexes of enabled tasks whose schedule has come due.
func DueTasks(plan *DailyPlan, now time.Time) []int {
	var due []int
	for i, t := range plan.Tasks {
		if !t.Enabled {
			continue
		}
		if IsDue(t.Schedule, t.LastRun, now) {
			due = append(due, i)
		}
	}
	return due
}
