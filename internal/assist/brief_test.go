package assist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pablosanchis/dispatchr/internal/job"
)

type fakeClient struct {
	lastMessages []Message
	reply        string
	err          error
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.lastMessages = messages
	return f.reply, f.err
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func fixture() ([]*job.Job, *job.Resource, time.Time) {
	date := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)
	at := func(h, m int) *time.Time {
		return timePtr(time.Date(2025, time.March, 12, h, m, 0, 0, time.Local))
	}

	jobs := []*job.Job{
		{ID: "b", Title: "Boiler service", Location: "Oak Ave", ResourceID: strPtr("t1"), ScheduledStart: at(13, 0), ScheduledEnd: at(14, 0), Priority: job.PriorityLow, Status: job.StatusScheduled},
		{ID: "a", Title: "Burst pipe", Location: "14 Elm St", ResourceID: strPtr("t1"), ScheduledStart: at(8, 30), ScheduledEnd: at(10, 0), Priority: job.PriorityUrgent, Status: job.StatusScheduled},
		{ID: "c", Title: "Other tech", ResourceID: strPtr("t2"), ScheduledStart: at(9, 0), Status: job.StatusScheduled},
		{ID: "d", Title: "Next day", ResourceID: strPtr("t1"), ScheduledStart: timePtr(time.Date(2025, time.March, 13, 9, 0, 0, 0, time.Local)), Status: job.StatusScheduled},
	}
	return jobs, &job.Resource{ID: "t1", Name: "Dana"}, date
}

func TestDayJobs(t *testing.T) {
	jobs, tech, date := fixture()

	got := DayJobs(jobs, tech.ID, date)
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got))
	}
	for _, j := range got {
		if j.ID == "c" || j.ID == "d" {
			t.Errorf("job %s does not belong in the day", j.ID)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	jobs, tech, date := fixture()
	prompt := BuildPrompt(tech, DayJobs(jobs, tech.ID, date), date)

	for _, want := range []string{"Dana", "Burst pipe", "14 Elm St", "[urgent]", "13:00-14:00"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "[low]") {
		t.Error("low priority should not be flagged")
	}
}

func TestDayBrief(t *testing.T) {
	jobs, tech, date := fixture()

	t.Run("sends system and schedule messages", func(t *testing.T) {
		client := &fakeClient{reply: "  Start with the burst pipe.  "}
		got, err := DayBrief(context.Background(), client, tech, jobs, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Start with the burst pipe." {
			t.Errorf("got %q", got)
		}
		if len(client.lastMessages) != 2 || client.lastMessages[0].Role != "system" {
			t.Errorf("messages = %+v", client.lastMessages)
		}
	})

	t.Run("empty day", func(t *testing.T) {
		client := &fakeClient{}
		_, err := DayBrief(context.Background(), client, &job.Resource{ID: "t9"}, jobs, date)
		if !errors.Is(err, ErrNoJobs) {
			t.Errorf("got %v, want ErrNoJobs", err)
		}
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		client := &fakeClient{err: errors.New("connection refused")}
		if _, err := DayBrief(context.Background(), client, tech, jobs, date); err == nil {
			t.Error("expected error")
		}
	})
}
