package domain

import (
	"testing"
	"time"
)

func futureClass(current, max int) *LiveClass {
	start := time.Now().Add(48 * time.Hour)
	return &LiveClass{
		Date:                start.Format("2006-01-02"),
		Time:                start.Format("15:04"),
		MaxParticipants:     max,
		CurrentParticipants: current,
	}
}

func TestLiveClass_State_Open(t *testing.T) {
	c := futureClass(3, 10)
	if got := c.State(time.Now()); got != ClassOpen {
		t.Fatalf("State = %v; want open", got)
	}
}

func TestLiveClass_State_Full(t *testing.T) {
	c := futureClass(10, 10)
	if got := c.State(time.Now()); got != ClassFull {
		t.Fatalf("State = %v; want full", got)
	}
}

func TestLiveClass_State_ExpiredBeatsCapacity(t *testing.T) {
	c := &LiveClass{
		Date:                "2020-01-01",
		Time:                "10:00",
		MaxParticipants:     10,
		CurrentParticipants: 0,
	}
	if got := c.State(time.Now()); got != ClassExpired {
		t.Fatalf("State = %v; want expired even with free seats", got)
	}

	// A full class in the past is also expired, not full.
	c.CurrentParticipants = 10
	if got := c.State(time.Now()); got != ClassExpired {
		t.Fatalf("State = %v; want expired", got)
	}
}

func TestLiveClass_State_MalformedScheduleIsExpired(t *testing.T) {
	c := &LiveClass{Date: "soon", Time: "later", MaxParticipants: 5}
	if got := c.State(time.Now()); got != ClassExpired {
		t.Fatalf("State = %v; want expired for unparseable schedule", got)
	}
}

func TestLiveClass_StartsAt(t *testing.T) {
	c := &LiveClass{Date: "2025-10-01", Time: "18:30"}
	got := c.StartsAt(time.UTC)
	want := time.Date(2025, 10, 1, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartsAt = %v; want %v", got, want)
	}
}
