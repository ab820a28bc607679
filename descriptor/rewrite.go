package descriptor

import (
	"fmt"
	"reflect"
	"regexp"
)

// RewriteRule rewrites raw keys fully matching the From pattern into the
// To template, with $1-style back-references to the pattern's capture
// groups. Rules run in declaration order; the first full match wins.
type RewriteRule struct {
	From string
	To   string
}

// Rewriter is implemented by target types whose raw keys need rewriting
// into canonical dotted/indexed paths before field resolution, e.g. a flat
// "storage-engine.file[0]" re-expressed as "storage-engine.files[0].path".
type Rewriter interface {
	RewriteRules() []RewriteRule
}

type compiledRule struct {
	re       *regexp.Regexp
	template string
}

func compileRules(rules []RewriteRule) ([]compiledRule, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	out := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		// Anchor so that only a full-key match rewrites.
		re, err := regexp.Compile(`\A(?:` + r.From + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("rewrite rule %q: %w", r.From, err)
		}

		out = append(out, compiledRule{re: re, template: r.To})
	}

	return out, nil
}

// Rewrite converts one raw key into its canonical path. A key no rule
// fully matches passes through unchanged.
func (d *Descriptor) Rewrite(raw string) string {
	for _, r := range d.rules {
		m := r.re.FindStringSubmatchIndex(raw)
		if m == nil {
			continue
		}

		return string(r.re.ExpandString(nil, r.template, raw, m))
	}

	return raw
}

// typeRules collects the rewrite rules a type declares via the Rewriter
// interface, on either receiver.
func typeRules(t reflect.Type) []RewriteRule {
	if rw, ok := reflect.New(t).Interface().(Rewriter); ok {
		return rw.RewriteRules()
	}

	return nil
}
