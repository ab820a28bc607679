package infoparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected map[string]string
	}{
		{
			name:     "two pairs",
			raw:      "a=1;b=2",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "empty input",
			raw:      "",
			expected: map[string]string{},
		},
		{
			name:     "chunk without equals dropped",
			raw:      "a=1;garbage;b=2",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "trailing separator",
			raw:      "a=1;b=2;",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "value containing equals",
			raw:      "expr=a=b;b=2",
			expected: map[string]string{"expr": "a=b", "b": "2"},
		},
		{
			name:     "later duplicate wins",
			raw:      "a=1;a=2",
			expected: map[string]string{"a": "2"},
		},
		{
			name:     "whitespace trimmed",
			raw:      " a = 1 ; b = 2 ",
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "empty value kept",
			raw:      "a=;b=2",
			expected: map[string]string{"a": "", "b": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Flat(tt.raw))
		})
	}
}

func TestMulti(t *testing.T) {
	entities := Multi("ns=test:set=users:objects=10;ns=test:set=events:objects=3")
	require.Len(t, entities, 2)

	assert.Equal(t, map[string]string{"ns": "test", "set": "users", "objects": "10"}, entities[0])
	assert.Equal(t, map[string]string{"ns": "test", "set": "events", "objects": "3"}, entities[1])
}

func TestMultiBlank(t *testing.T) {
	assert.Empty(t, Multi(""))
	assert.Empty(t, Multi("   "))
}

func TestMultiDropsEmptyChunks(t *testing.T) {
	entities := Multi("ns=test:set=users;;ns=test:set=events;")
	require.Len(t, entities, 2)
}

func TestMultiMalformedPairsDropped(t *testing.T) {
	entities := Multi("ns=test:noise:set=users")
	require.Len(t, entities, 1)
	assert.Equal(t, map[string]string{"ns": "test", "set": "users"}, entities[0])
}
