package domain

import "testing"

func TestParseTicketStatus(t *testing.T) {
	t.Parallel()

	valid := []string{"OPEN", "REOPENED", "IN_PROGRESS", "CLOSED"}
	for _, value := range valid {
		status, err := ParseTicketStatus(value)
		if err != nil {
			t.Fatalf("ParseTicketStatus(%q) returned error: %v", value, err)
		}
		if string(status) != value {
			t.Errorf("ParseTicketStatus(%q) = %q, want %q", value, status, value)
		}
	}

	for _, value := range []string{"", "open", "PENDING", "CANCELLED"} {
		if _, err := ParseTicketStatus(value); err == nil {
			t.Errorf("ParseTicketStatus(%q) accepted invalid status", value)
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current TicketStatus
		next    TicketStatus
		want    bool
	}{
		{TicketStatusOpen, TicketStatusInProgress, true},
		{TicketStatusReopened, TicketStatusInProgress, true},
		{TicketStatusInProgress, TicketStatusClosed, true},
		{TicketStatusClosed, TicketStatusReopened, true},
		{TicketStatusOpen, TicketStatusClosed, false},
		{TicketStatusOpen, TicketStatusReopened, false},
		{TicketStatusClosed, TicketStatusInProgress, false},
		{TicketStatusClosed, TicketStatusOpen, false},
		{TicketStatusInProgress, TicketStatusOpen, false},
		{TicketStatusInProgress, TicketStatusReopened, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.current, tt.next); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
		}
	}
}
