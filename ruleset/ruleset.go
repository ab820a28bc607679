package ruleset

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"infomerge/descriptor"
	"infomerge/policy"
)

const currentVersion = "1"

var (
	ErrUnsupportedVersion = errors.New("unsupported ruleset version")
	ErrUnknownType        = errors.New("ruleset has no entry for type")
)

// File is a parsed ruleset document.
type File struct {
	Version string      `yaml:"version"`
	Types   []TypeRules `yaml:"types"`
}

// TypeRules carries one target type's rewrite rules and field overrides.
type TypeRules struct {
	Type   string      `yaml:"type"`
	Rules  []Rule      `yaml:"rules"`
	Fields []FieldRule `yaml:"fields"`
}

// Rule is one raw-key rewrite, same semantics as descriptor.RewriteRule.
type Rule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// FieldRule overrides one field's declaration, referencing the Go field
// name.
type FieldRule struct {
	Field  string `yaml:"field"`
	Alias  string `yaml:"alias"`
	Key    bool   `yaml:"key"`
	Policy string `yaml:"policy"`
}

// Parse unmarshals and validates a ruleset document.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *File) validate() error {
	if f.Version != "" && f.Version != currentVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, f.Version)
	}

	seen := map[string]struct{}{}

	for _, tr := range f.Types {
		if tr.Type == "" {
			return errors.New("ruleset entry without a type name")
		}

		if _, dup := seen[tr.Type]; dup {
			return fmt.Errorf("duplicate ruleset entry for type %q", tr.Type)
		}

		seen[tr.Type] = struct{}{}

		for _, r := range tr.Rules {
			if _, err := regexp.Compile(r.From); err != nil {
				return fmt.Errorf("type %q rule %q: %w", tr.Type, r.From, err)
			}

			if r.To == "" {
				return fmt.Errorf("type %q rule %q: empty replacement", tr.Type, r.From)
			}
		}

		for _, fr := range tr.Fields {
			if fr.Field == "" {
				return fmt.Errorf("type %q: field entry without a field name", tr.Type)
			}

			if fr.Policy != "" {
				if _, _, err := policy.Parse(fr.Policy); err != nil {
					return fmt.Errorf("type %q field %q: %w", tr.Type, fr.Field, err)
				}
			}
		}
	}

	return nil
}

// Lookup finds the entry for a type name.
func (f *File) Lookup(typeName string) (*TypeRules, bool) {
	for i := range f.Types {
		if f.Types[i].Type == typeName {
			return &f.Types[i], true
		}
	}

	return nil, false
}

// Register binds the named entry to target's type via a descriptor
// override. It must run before the type's first descriptor use.
func (f *File) Register(typeName string, target any) error {
	tr, ok := f.Lookup(typeName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	o := descriptor.Override{
		Fields: make(map[string]descriptor.FieldOverride, len(tr.Fields)),
	}

	for _, r := range tr.Rules {
		o.Rules = append(o.Rules, descriptor.RewriteRule{From: r.From, To: r.To})
	}

	for _, fr := range tr.Fields {
		fo := descriptor.FieldOverride{
			Alias: fr.Alias,
			Key:   fr.Key,
		}

		if fr.Policy != "" {
			p, order, err := policy.Parse(fr.Policy)
			if err != nil {
				return fmt.Errorf("type %q field %q: %w", typeName, fr.Field, err)
			}

			fo.Policy, fo.Priorities = p, order
		}

		o.Fields[fr.Field] = fo
	}

	return descriptor.RegisterOverride(target, o)
}
