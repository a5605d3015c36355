package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusPending},
		{StatusInProgress, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{"unknown", StatusPending},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestStatsAdd(t *testing.T) {
	var s Stats
	s.Add(StatusPending, 2)
	s.Add(StatusInProgress, 1)
	s.Add(StatusCancelled, 3)
	assert.Equal(t, Stats{Total: 6, Pending: 2, InProgress: 1, Cancelled: 3}, s)
}
