package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   ItemStatus
		expected bool
	}{
		{ItemStatusPending, false},
		{ItemStatusDownloading, true},
		{ItemStatusCompleted, false},
		{ItemStatusError, false},
		{ItemStatusSkipped, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.status.IsActive(), "ItemStatus(%s).IsActive()", test.status)
	}
}

func TestItemStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   ItemStatus
		expected bool
	}{
		{ItemStatusPending, false},
		{ItemStatusDownloading, false},
		{ItemStatusCompleted, true},
		{ItemStatusError, true},
		{ItemStatusSkipped, true},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.status.IsFinished(), "ItemStatus(%s).IsFinished()", test.status)
	}
}

func TestItemStatus_String(t *testing.T) {
	assert.Equal(t, "downloading", ItemStatusDownloading.String())
}
