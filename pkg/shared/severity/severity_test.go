package severity

import "testing"

func TestLevel_Priority(t *testing.T) {
	tests := []struct {
		level    Level
		priority int
	}{
		{Critical, 3},
		{Warning, 2},
		{Info, 1},
		{Unknown, 0},
		{Level("bogus"), 0},
	}

	for _, tt := range tests {
		if got := tt.level.Priority(); got != tt.priority {
			t.Errorf("Priority(%q) = %d, want %d", tt.level, got, tt.priority)
		}
	}
}

func TestLevel_Comparisons(t *testing.T) {
	if !Critical.IsHigherThan(Warning) {
		t.Error("Critical should be higher than Warning")
	}
	if Warning.IsHigherThan(Warning) {
		t.Error("Warning should not be higher than itself")
	}
	if !Warning.IsAtLeast(Warning) {
		t.Error("Warning should be at least Warning")
	}
	if Info.IsAtLeast(Critical) {
		t.Error("Info should not be at least Critical")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"critical", Critical},
		{"CRITICAL", Critical},
		{"  warn  ", Warning},
		{"medium", Warning},
		{"info", Info},
		{"low", Info},
		{"note", Info},
		{"garbage", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := FromString(tt.in); got != tt.want {
			t.Errorf("FromString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEventFromString_DefaultsToMedium(t *testing.T) {
	tests := []struct {
		in   string
		want EventLevel
	}{
		{"critical", EventCritical},
		{"High", EventHigh},
		{"medium", EventMedium},
		{"low", EventLow},
		{"catastrophic", EventMedium},
		{"", EventMedium},
	}

	for _, tt := range tests {
		if got := EventFromString(tt.in); got != tt.want {
			t.Errorf("EventFromString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEventLevel_Finding(t *testing.T) {
	tests := []struct {
		event EventLevel
		want  Level
	}{
		{EventCritical, Critical},
		{EventHigh, Warning},
		{EventMedium, Warning},
		{EventLow, Info},
	}

	for _, tt := range tests {
		if got := tt.event.Finding(); got != tt.want {
			t.Errorf("%q.Finding() = %q, want %q", tt.event, got, tt.want)
		}
	}
}
