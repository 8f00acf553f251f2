package bidsheet

import (
	"testing"
	"time"
)

func TestDueLabel(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected string
	}{
		{name: "due today", due: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), expected: "Due today"},
		{name: "three days out", due: time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), expected: "3 days remaining"},
		{name: "yesterday", due: time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC), expected: "Overdue"},
		{name: "time of day ignored", due: time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC), expected: "1 days remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueLabel(tt.due, now); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDueUrgency(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected Urgency
	}{
		{name: "overdue", due: now.AddDate(0, 0, -1), expected: UrgencyOverdue},
		{name: "today is critical", due: now, expected: UrgencyCritical},
		{name: "three days is critical", due: now.AddDate(0, 0, 3), expected: UrgencyCritical},
		{name: "week is warning", due: now.AddDate(0, 0, 7), expected: UrgencyWarning},
		{name: "beyond a week", due: now.AddDate(0, 0, 8), expected: UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueUrgency(tt.due, now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{amount: 0, expected: "$0.00"},
		{amount: 35, expected: "$35.00"},
		{amount: 12500.75, expected: "$12,500.75"},
		{amount: 1234567.8, expected: "$1,234,567.80"},
		{amount: -750, expected: "-$750.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatCurrency(tt.amount); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
