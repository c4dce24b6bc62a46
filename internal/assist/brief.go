package assist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

// ErrNoJobs is returned when a technician has nothing scheduled on the day.
var ErrNoJobs = errors.New("nothing scheduled for this day")

const briefSystemPrompt = `You are a dispatcher assistant for a field-service company.
Given a technician's schedule for one day, write a short morning brief:
the order of visits, travel-relevant locations, and anything urgent.
Keep it under 120 words. Plain text only.`

// DayJobs returns the technician's jobs on the given date, ordered by
// start time.
func DayJobs(jobs []*job.Job, resourceID string, date time.Time) []*job.Job {
	var out []*job.Job
	for _, j := range jobs {
		if !j.Schedulable() || *j.ResourceID != resourceID {
			continue
		}
		w, ok := j.EffectiveWindow()
		if !ok || !dateutil.SameDay(w.Start, date) {
			continue
		}
		out = append(out, j)
	}
	sort.SliceStable(out, func(a, b int) bool {
		wa, _ := out[a].EffectiveWindow()
		wb, _ := out[b].EffectiveWindow()
		return wa.Start.Before(wb.Start)
	})
	return out
}

// BuildPrompt renders the schedule into the user message sent to the
// model.
func BuildPrompt(tech *job.Resource, jobs []*job.Job, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Technician: %s\nDate: %s\n\nSchedule:\n", tech.Name, date.Format("Monday, January 2 2006"))
	for _, j := range jobs {
		w, _ := j.EffectiveWindow()
		fmt.Fprintf(&b, "- %s-%s %s", w.Start.Format("15:04"), w.End.Format("15:04"), j.Title)
		if j.Location != "" {
			fmt.Fprintf(&b, " at %s", j.Location)
		}
		if j.Priority == job.PriorityUrgent || j.Priority == job.PriorityHigh {
			fmt.Fprintf(&b, " [%s]", j.Priority)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DayBrief generates the brief for one technician and date.
func DayBrief(ctx context.Context, client Client, tech *job.Resource, jobs []*job.Job, date time.Time) (string, error) {
	dayJobs := DayJobs(jobs, tech.ID, date)
	if len(dayJobs) == 0 {
		return "", ErrNoJobs
	}

	resp, err := client.Chat(ctx, []Message{
		{Role: "system", Content: briefSystemPrompt},
		{Role: "user", Content: BuildPrompt(tech, dayJobs, date)},
	})
	if err != nil {
		return "", fmt.Errorf("generating brief: %w", err)
	}
	return strings.TrimSpace(resp), nil
}
