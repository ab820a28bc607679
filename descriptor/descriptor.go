package descriptor

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"infomerge/internal/ident"
	"infomerge/policy"
)

var (
	ErrNotStruct = errors.New("target type is not a struct")
	ErrDescribed = errors.New("type descriptor already built")
)

// Field is the reflective handle of one target struct field.
type Field struct {
	Name       string       // Go field name
	Index      int          // struct field index
	Type       reflect.Type // field type
	Alias      string       // explicit raw key, empty when aliases are generated
	Key        bool         // participates in record correlation
	Enum       bool         // coerced through encoding.TextUnmarshaler
	Policy     policy.PolicyEnum
	Priorities []string // PolicyFirstOf ranking
}

// Descriptor is the immutable per-type table driving raw key lookup,
// rewriting and merging. Build one through For or Of, never directly.
type Descriptor struct {
	Type   reflect.Type
	Fields []*Field
	Keys   []*Field

	aliases map[string]*Field
	rules   []compiledRule
}

// Lookup resolves one canonical path token to a field. It tries the alias
// table first and falls back to a naive token-to-camelCase conversion
// matched case-insensitively against field names, to stay tolerant of
// minor metric-name drift.
func (d *Descriptor) Lookup(token string) (*Field, bool) {
	if f, ok := d.aliases[token]; ok {
		return f, true
	}

	name := ident.FieldName(token)
	for _, f := range d.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}

	return nil, false
}

func build(t reflect.Type, o *Override) (*Descriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	d := &Descriptor{
		Type:    t,
		aliases: map[string]*Field{},
	}

	rules := typeRules(t)
	if o != nil {
		rules = append(rules, o.Rules...)
	}

	compiled, err := compileRules(rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}

	d.rules = compiled

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		alias, key, skip := parseInfoTag(sf.Tag.Get("info"))
		if skip {
			continue
		}

		f := &Field{
			Name:  sf.Name,
			Index: i,
			Type:  sf.Type,
			Alias: alias,
			Key:   key,
			Enum:  IsEnum(sf.Type),
		}

		if tag := sf.Tag.Get("merge"); tag != "" {
			f.Policy, f.Priorities, err = policy.Parse(tag)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
			}
		}

		if o != nil {
			applyFieldOverride(f, o)
		}

		if f.Policy == 0 {
			f.Policy, f.Priorities = defaultPolicy(f), nil
		}

		if f.Alias != "" {
			d.aliases[f.Alias] = f
		} else {
			// Accept both raw naming conventions without configuration.
			d.aliases[ident.DashAlias(f.Name)] = f
			d.aliases[ident.UnderscoreAlias(f.Name)] = f
		}

		d.Fields = append(d.Fields, f)

		if f.Key {
			d.Keys = append(d.Keys, f)
		}
	}

	return d, nil
}

// parseInfoTag splits an `info` tag into its explicit alias and options.
// "-" excludes the field, ",key" marks a correlation key.
func parseInfoTag(tag string) (alias string, key, skip bool) {
	if tag == "-" {
		return "", false, true
	}

	alias, opts, _ := strings.Cut(tag, ",")

	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "key" {
			key = true
		}
	}

	return alias, key, false
}

// defaultPolicy picks the type-based default for a field with no declared
// policy: enums take the most common member, integer kinds sum, float
// kinds average. Key fields pass through; group membership already
// guarantees their equality.
func defaultPolicy(f *Field) policy.PolicyEnum {
	if f.Key {
		return 0
	}

	if f.Enum {
		return policy.PolicyMostCommon
	}

	k := f.Type.Kind()

	switch {
	default:
		return 0
	case policy.IsInteger(k):
		return policy.PolicyAggregate
	case policy.IsFloat(k):
		return policy.PolicyAverage
	}
}

func applyFieldOverride(f *Field, o *Override) {
	fo, ok := o.Fields[f.Name]
	if !ok {
		return
	}

	if fo.Alias != "" {
		f.Alias = fo.Alias
	}

	if fo.Key {
		f.Key = true
	}

	if fo.Policy != 0 {
		f.Policy, f.Priorities = fo.Policy, fo.Priorities
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// IsEnum reports whether t is treated as an enum: a named string or
// integer type that unmarshals itself from text. Enum raw values are
// normalized (upper-cased, dashes to underscores) before unmarshaling.
func IsEnum(t reflect.Type) bool {
	if t.Name() == "" || t.PkgPath() == "" {
		return false
	}

	switch k := t.Kind(); {
	default:
		return false
	case k == reflect.String, policy.IsInteger(k):
		return reflect.PointerTo(t).Implements(textUnmarshalerType)
	}
}
