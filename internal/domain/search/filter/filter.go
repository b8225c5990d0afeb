package filter

import (
	"fmt"
	"strings"
)

// MaxValuesPerCondition is the maximum number of comma-separated values per filter parameter.
const MaxValuesPerCondition = 32

// Kind selects how a filter parameter matches a record attribute.
type Kind int

const (
	// Exact matches when the attribute equals a value, case-insensitively.
	Exact Kind = iota
	// Substring matches when a value is contained in the attribute, case-insensitively.
	Substring
	// Duration matches a minutes attribute against named buckets.
	Duration
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Substring:
		return "substring"
	case Duration:
		return "duration"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec declares a recognized filter parameter.
type Spec struct {
	Key  string
	Kind Kind
}

// Condition is a single filter parameter: OR across its values.
type Condition struct {
	key     string
	kind    Kind
	values  []string // as supplied, trimmed
	folded  []string // lowercased, for matching
	buckets []Bucket
}

// NewCondition parses a comma list for spec. Empty values are dropped; a list that
// ends up empty yields ok=false. Unknown duration buckets are an error in strict
// mode and are dropped otherwise.
func NewCondition(spec Spec, raw string, strict bool) (Condition, bool, error) {
	if spec.Key == "" {
		return Condition{}, false, fmt.Errorf("filter key is required")
	}
	values := splitList(raw)
	if len(values) > MaxValuesPerCondition {
		return Condition{}, false, fmt.Errorf("too many values for %s (max %d)", spec.Key, MaxValuesPerCondition)
	}

	c := Condition{key: spec.Key, kind: spec.Kind}
	for _, v := range values {
		if spec.Kind == Duration {
			b, err := ParseBucket(v)
			if err != nil {
				if strict {
					return Condition{}, false, fmt.Errorf("%s: %w", spec.Key, err)
				}
				continue
			}
			c.buckets = append(c.buckets, b)
			v = string(b)
		}
		c.values = append(c.values, v)
		c.folded = append(c.folded, strings.ToLower(v))
	}
	if len(c.values) == 0 {
		return Condition{}, false, nil
	}
	return c, true, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Key returns the parameter name.
func (c Condition) Key() string { return c.key }

// Kind returns the match kind.
func (c Condition) Kind() Kind { return c.kind }

// Values returns the normalized values.
func (c Condition) Values() []string { return c.values }

// MatchText reports whether attr matches any of the values.
func (c Condition) MatchText(attr string) bool {
	a := strings.ToLower(attr)
	for _, v := range c.folded {
		switch c.kind {
		case Exact:
			if a == v {
				return true
			}
		case Substring:
			if strings.Contains(a, v) {
				return true
			}
		}
	}
	return false
}

// MatchMinutes reports whether minutes falls in any of the buckets.
func (c Condition) MatchMinutes(minutes int) bool {
	for _, b := range c.buckets {
		if b.Contains(minutes) {
			return true
		}
	}
	return false
}

// Expression is the AND of all supplied filter conditions.
type Expression struct {
	conditions []Condition
}

// NewExpression creates an Expression from already-built conditions.
func NewExpression(conditions ...Condition) Expression {
	return Expression{conditions: conditions}
}

// Parse builds an Expression from raw parameters, in spec order. Parameters not
// listed in specs are ignored.
func Parse(params map[string]string, specs []Spec, strict bool) (Expression, error) {
	var conds []Condition
	for _, s := range specs {
		raw, ok := params[s.Key]
		if !ok {
			continue
		}
		c, ok, err := NewCondition(s, raw, strict)
		if err != nil {
			return Expression{}, err
		}
		if ok {
			conds = append(conds, c)
		}
	}
	return Expression{conditions: conds}, nil
}

// Conditions returns the conditions in parameter order.
func (e Expression) Conditions() []Condition { return e.conditions }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Echo returns each condition's normalized comma list keyed by parameter name.
func (e Expression) Echo() map[string]string {
	out := make(map[string]string, len(e.conditions))
	for _, c := range e.conditions {
		out[c.key] = strings.Join(c.values, ",")
	}
	return out
}
