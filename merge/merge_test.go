package merge

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infomerge/descriptor"
	"infomerge/policy"
)

type nodeStats struct {
	Build      string `merge:"mustmatch"`
	Objects    int64  `merge:"aggregate"`
	MinUptime  int64  `info:"uptime" merge:"minimum"`
	Migrations bool   `info:"migrations-active" merge:"or"`
	FreePct    float64
	Memory     memoryStats
	Label      string
}

type memoryStats struct {
	UsedBytes  uint64 `merge:"aggregate"`
	CapacityGB int    `merge:"mustmatch"`
}

func instances(t *testing.T, in ...nodeStats) (*descriptor.Descriptor, []reflect.Value) {
	t.Helper()

	d, err := descriptor.Of(nodeStats{})
	require.NoError(t, err)

	vals := make([]reflect.Value, 0, len(in))
	for _, s := range in {
		vals = append(vals, reflect.ValueOf(s))
	}

	return d, vals
}

func TestInstances(t *testing.T) {
	d, vals := instances(t,
		nodeStats{Build: "7.1.0", Objects: 10, MinUptime: 400, FreePct: 80, Label: "a",
			Memory: memoryStats{UsedBytes: 100, CapacityGB: 8}},
		nodeStats{Build: "7.1.0", Objects: 15, MinUptime: 200, Migrations: true, FreePct: 60, Label: "b",
			Memory: memoryStats{UsedBytes: 50, CapacityGB: 8}},
	)

	out, err := Instances(d, vals)
	require.NoError(t, err)

	merged := out.Interface().(nodeStats)

	assert.Equal(t, "7.1.0", merged.Build)
	assert.Equal(t, int64(25), merged.Objects)
	assert.Equal(t, int64(200), merged.MinUptime)
	assert.True(t, merged.Migrations)

	// Float default is average.
	assert.InDelta(t, 70.0, merged.FreePct, 1e-9)

	// Nested struct merges under its own policies.
	assert.Equal(t, uint64(150), merged.Memory.UsedBytes)
	assert.Equal(t, 8, merged.Memory.CapacityGB)

	// No policy, not numeric: arbitrary representative (first instance).
	assert.Equal(t, "a", merged.Label)
}

func TestInstancesMustMatchFailure(t *testing.T) {
	d, vals := instances(t,
		nodeStats{Build: "7.1.0"},
		nodeStats{Build: "7.2.0"},
	)

	_, err := Instances(d, vals)
	require.Error(t, err)

	var mismatch *policy.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Build", mismatch.Field)
	assert.ElementsMatch(t, []any{"7.1.0", "7.2.0"}, mismatch.Values)
}

func TestInstancesNestedMustMatchFailure(t *testing.T) {
	d, vals := instances(t,
		nodeStats{Build: "7.1.0", Memory: memoryStats{CapacityGB: 8}},
		nodeStats{Build: "7.1.0", Memory: memoryStats{CapacityGB: 16}},
	)

	_, err := Instances(d, vals)
	require.Error(t, err)

	var mismatch *policy.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "CapacityGB", mismatch.Field)
}

func TestInstancesSingle(t *testing.T) {
	d, vals := instances(t, nodeStats{Build: "7.1.0", Objects: 7})

	out, err := Instances(d, vals)
	require.NoError(t, err)

	merged := out.Interface().(nodeStats)
	assert.Equal(t, int64(7), merged.Objects)
	assert.Equal(t, "7.1.0", merged.Build)
}

func TestInstancesEmpty(t *testing.T) {
	d, err := descriptor.Of(nodeStats{})
	require.NoError(t, err)

	_, err = Instances(d, nil)
	assert.ErrorIs(t, err, ErrNoInstances)
}

type withPointer struct {
	Name   string
	Extras *memoryStats
}

func TestInstancesPointerField(t *testing.T) {
	d, err := descriptor.Of(withPointer{})
	require.NoError(t, err)

	vals := []reflect.Value{
		reflect.ValueOf(withPointer{Name: "n1", Extras: &memoryStats{UsedBytes: 5, CapacityGB: 4}}),
		reflect.ValueOf(withPointer{Name: "n2"}),
		reflect.ValueOf(withPointer{Name: "n3", Extras: &memoryStats{UsedBytes: 7, CapacityGB: 4}}),
	}

	out, err := Instances(d, vals)
	require.NoError(t, err)

	merged := out.Interface().(withPointer)
	require.NotNil(t, merged.Extras)
	assert.Equal(t, uint64(12), merged.Extras.UsedBytes)
}
