package schedule

import (
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		minute *int
		hour   *int
	}{
		{name: "daily at 02:00", expr: "0 2 * * *", minute: intPtr(0), hour: intPtr(2)},
		{name: "all wildcards", expr: "* * * * *"},
		{name: "minute only", expr: "30 * * * *", minute: intPtr(30)},
		{name: "hour only", expr: "* 14 * * *", hour: intPtr(14)},
		{name: "day month weekday literals", expr: "0 6 1 6 1", minute: intPtr(0), hour: intPtr(6)},
		{name: "surrounding whitespace", expr: "  15 8 * * *  ", minute: intPtr(15), hour: intPtr(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.expr, err)
			}
			assertField(t, "minute", expr.Minute, tt.minute)
			assertField(t, "hour", expr.Hour, tt.hour)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "whitespace only", expr: "   "},
		{name: "garbage", expr: "invalid-cron"},
		{name: "four fields", expr: "0 2 * *"},
		{name: "six fields", expr: "0 0 2 * * *"},
		{name: "step not allowed", expr: "*/5 * * * *"},
		{name: "range not allowed", expr: "0 9-17 * * *"},
		{name: "list not allowed", expr: "0 2,14 * * *"},
		{name: "minute out of range", expr: "60 2 * * *"},
		{name: "hour out of range", expr: "0 24 * * *"},
		{name: "negative minute", expr: "-1 2 * * *"},
		{name: "descriptor", expr: "@hourly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.expr); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.expr)
			}
		})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		expr string
		now  time.Time
		want time.Time
	}{
		{
			name: "time already passed today advances one day",
			expr: "0 2 * * *",
			now:  time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "time still ahead today stays today",
			expr: "30 14 * * *",
			now:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "exact boundary advances one day",
			expr: "0 2 * * *",
			now:  time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "seconds zeroed with literal minute",
			expr: "30 14 * * *",
			now:  time.Date(2024, 1, 1, 10, 0, 45, 123, time.UTC),
			want: time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "minute literal with wildcard hour stays within current hour",
			expr: "45 * * * *",
			now:  time.Date(2024, 1, 1, 10, 10, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC),
		},
		{
			name: "minute literal with wildcard hour already passed advances a full day",
			expr: "45 * * * *",
			now:  time.Date(2024, 1, 1, 10, 50, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 10, 45, 0, 0, time.UTC),
		},
		{
			name: "all wildcards advance one day",
			expr: "* * * * *",
			now:  time.Date(2024, 1, 1, 10, 10, 5, 0, time.UTC),
			want: time.Date(2024, 1, 2, 10, 10, 5, 0, time.UTC),
		},
		{
			name: "day and weekday literals ignored",
			expr: "0 6 15 6 3",
			now:  time.Date(2024, 1, 1, 4, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary rollover",
			expr: "0 2 * * *",
			now:  time.Date(2024, 1, 31, 3, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 1, 2, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.expr, err)
			}
			got := expr.Next(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.now, got, tt.want)
			}
			if got.Before(tt.now) {
				t.Errorf("Next(%v) = %v is earlier than now", tt.now, got)
			}
		})
	}
}

func TestNext_NeverEarlierThanNow(t *testing.T) {
	expr, err := Parse("0 2 * * *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 48; i++ {
		next := expr.Next(now)
		if !next.After(now) {
			t.Fatalf("Next(%v) = %v is not strictly after now", now, next)
		}
		if next.Hour() != 2 || next.Minute() != 0 {
			t.Fatalf("Next(%v) = %v does not match schedule", now, next)
		}
		now = now.Add(time.Hour)
	}
}

func TestString(t *testing.T) {
	expr, err := Parse("0 2 * * *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if expr.String() != "0 2 * * *" {
		t.Errorf("String() = %q, want %q", expr.String(), "0 2 * * *")
	}
}

func assertField(t *testing.T, name string, got, want *int) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s field = %d, want wildcard", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s field is wildcard, want %d", name, *want)
		return
	}
	if *got != *want {
		t.Errorf("%s field = %d, want %d", name, *got, *want)
	}
}

func intPtr(n int) *int {
	return &n
}
