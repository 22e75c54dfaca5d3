package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       bool
	}{
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"contained", "10:00", "11:00", "10:15", "10:45", true},
		{"spills past the end", "10:00", "11:00", "10:30", "11:30", true},
		{"starts before", "10:00", "11:00", "09:30", "10:30", true},
		{"back to back after", "10:00", "11:00", "11:00", "12:00", false},
		{"back to back before", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "10:00", "11:00", "13:00", "14:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IntervalsOverlap(tc.startA, tc.endA, tc.startB, tc.endB))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, IntervalsOverlap(tc.startB, tc.endB, tc.startA, tc.endA))
		})
	}
}
