package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionMismatchError(t *testing.T) {
	err := dimensionMismatchError("medical-vectors", 1536, 3072)

	assert.Contains(t, err.Error(), "medical-vectors")
	assert.Contains(t, err.Error(), "1536")
	assert.Contains(t, err.Error(), "3072")
	// The message must name the remediations.
	assert.Contains(t, err.Error(), "different index name")
	assert.Contains(t, err.Error(), "Delete the existing index")
	assert.Contains(t, err.Error(), "embedding model that matches")
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		region   string
		expected string
	}{
		{"us-east-1", "us-east-1"},
		{"eu-west-1", "eu-west-1"},
		{"ap-southeast-1", "ap-southeast-1"},
		{"mars-central-1", "us-east-1"},
		{"", "us-east-1"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveRegion(tt.region))
		})
	}
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "clean text", sanitizeUTF8("clean text"))
	assert.Equal(t, "brokentext", sanitizeUTF8("broken\xfftext"))
}
