package descriptor

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infomerge/policy"
)

type engineKind string

func (k *engineKind) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	default:
		return fmt.Errorf("unknown engine kind %q", s)
	case "MEMORY", "DEVICE", "KV_STORE":
		*k = engineKind(s)
		return nil
	}
}

type namespaceStats struct {
	Name          string  `info:"ns,key"`
	Objects       int64   `merge:"aggregate"`
	ReplFactor    int     `info:"repl-factor" merge:"mustmatch"`
	AvailPct      float64 `info:"available_pct" merge:"minimum"`
	StopWrites    bool    `merge:"or"`
	Engine        engineKind
	MasterObjects int64
	Internal      string `info:"-"`

	hidden string
}

func mustFor(t *testing.T, target any) *Descriptor {
	t.Helper()

	d, err := Of(target)
	require.NoError(t, err)

	return d
}

func TestBuildAliases(t *testing.T) {
	d := mustFor(t, &namespaceStats{})

	// Explicit alias registers only itself.
	f, ok := d.Lookup("ns")
	require.True(t, ok)
	assert.Equal(t, "Name", f.Name)

	// Generated aliases accept both naming conventions.
	dash, ok := d.Lookup("master-objects")
	require.True(t, ok)
	under, ok2 := d.Lookup("master_objects")
	require.True(t, ok2)
	assert.Same(t, dash, under)

	// Excluded and unexported fields never resolve.
	_, ok = d.Lookup("internal")
	assert.False(t, ok)
	_, ok = d.Lookup("hidden")
	assert.False(t, ok)
}

func TestLookupFallback(t *testing.T) {
	d := mustFor(t, &namespaceStats{})

	// No alias matches "avail-pct" (the declared one is "available_pct"),
	// but naive conversion still reaches the field.
	f, ok := d.Lookup("avail-pct")
	require.True(t, ok)
	assert.Equal(t, "AvailPct", f.Name)

	_, ok = d.Lookup("no-such-metric")
	assert.False(t, ok)
}

func TestDeclaredAndDefaultPolicies(t *testing.T) {
	d := mustFor(t, &namespaceStats{})

	byName := map[string]*Field{}
	for _, f := range d.Fields {
		byName[f.Name] = f
	}

	assert.Equal(t, policy.PolicyAggregate, byName["Objects"].Policy)
	assert.Equal(t, policy.PolicyMustMatch, byName["ReplFactor"].Policy)
	assert.Equal(t, policy.PolicyMinimum, byName["AvailPct"].Policy)
	assert.Equal(t, policy.PolicyOr, byName["StopWrites"].Policy)

	// Type-based defaults.
	assert.Equal(t, policy.PolicyAggregate, byName["MasterObjects"].Policy)
	assert.Equal(t, policy.PolicyMostCommon, byName["Engine"].Policy)
	assert.True(t, byName["Engine"].Enum)

	// Key fields pass through rather than summing with themselves.
	assert.Equal(t, policy.PolicyEnum(0), byName["Name"].Policy)
	require.Len(t, d.Keys, 1)
	assert.Equal(t, "Name", d.Keys[0].Name)
}

type badPolicy struct {
	Objects int64 `merge:"sideways"`
}

func TestBuildRejectsUnknownPolicy(t *testing.T) {
	_, err := Of(&badPolicy{})
	assert.ErrorIs(t, err, policy.ErrUnknownPolicy)
}

func TestForRejectsNonStruct(t *testing.T) {
	_, err := For(reflect.TypeOf(42))
	assert.ErrorIs(t, err, ErrNotStruct)
}

type rewritten struct {
	Engine string `info:"storage-engine"`
}

func (rewritten) RewriteRules() []RewriteRule {
	return []RewriteRule{
		{From: `storage-engine\.file\[(\d+)\]`, To: `storage-engine.files[$1].file-path`},
		{From: `device\[(\d+)\]`, To: `devices[$1]`},
	}
}

func TestRewrite(t *testing.T) {
	d := mustFor(t, rewritten{})

	assert.Equal(t, "storage-engine.files[3].file-path", d.Rewrite("storage-engine.file[3]"))
	assert.Equal(t, "devices[0]", d.Rewrite("device[0]"))

	// No full match: pass through unchanged, even on a partial match.
	assert.Equal(t, "storage-engine", d.Rewrite("storage-engine"))
	assert.Equal(t, "xx-device[0]", d.Rewrite("xx-device[0]"))
}

type badRule struct{}

func (badRule) RewriteRules() []RewriteRule {
	return []RewriteRule{{From: `broken(`, To: `x`}}
}

func TestRewriteRejectsBadPattern(t *testing.T) {
	_, err := Of(badRule{})
	assert.Error(t, err)
}

type overridden struct {
	Name    string
	Objects int64
}

func TestRegisterOverride(t *testing.T) {
	err := RegisterOverride(&overridden{}, Override{
		Rules: []RewriteRule{{From: `objects\{(\w+)\}`, To: `objects`}},
		Fields: map[string]FieldOverride{
			"Name":    {Alias: "set", Key: true},
			"Objects": {Policy: policy.PolicyMustMatch},
		},
	})
	require.NoError(t, err)

	d := mustFor(t, &overridden{})

	f, ok := d.Lookup("set")
	require.True(t, ok)
	assert.True(t, f.Key)
	require.Len(t, d.Keys, 1)

	obj, ok := d.Lookup("objects")
	require.True(t, ok)
	assert.Equal(t, policy.PolicyMustMatch, obj.Policy)

	assert.Equal(t, "objects", d.Rewrite("objects{a}"))

	// The descriptor exists now, late overrides must be refused.
	err = RegisterOverride(&overridden{}, Override{})
	assert.ErrorIs(t, err, ErrDescribed)
}

func TestForConcurrentFirstUse(t *testing.T) {
	type fresh struct {
		Objects int64
	}

	var wg sync.WaitGroup

	results := make([]*Descriptor, 16)

	for i := range results {
		i := i

		wg.Add(1)

		go func() {
			defer wg.Done()

			d, err := For(reflect.TypeOf(fresh{}))
			assert.NoError(t, err)
			results[i] = d
		}()
	}

	wg.Wait()

	for _, d := range results[1:] {
		assert.Same(t, results[0], d)
	}
}
