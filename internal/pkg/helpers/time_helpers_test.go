package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", time.Minute},
		{"10s", 10 * time.Second},
		{"soon", time.Minute},
		{"-5s", time.Minute},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in, time.Minute); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
