// Package rules evaluates declarative booking rules attached to a property.
//
// A rule is a condition tree plus an event. Conditions are either a group
// (all / any / not) or a leaf comparing a fact with a value:
//
//	{"all": [
//	    {"fact": "guests", "operator": "greaterThan", "value": 6},
//	    {"fact": "pets", "operator": "greaterThan", "value": 0}
//	]}
//
// Run returns the events of every rule whose conditions hold.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

var (
	ErrUndefinedFact    = errors.New("undefined fact")
	ErrInvalidCondition = errors.New("invalid condition")
)

// Facts là tập giá trị được đưa vào khi đánh giá rule
type Facts map[string]any

// Condition là một nút trong cây điều kiện
type Condition struct {
	All []Condition `json:"all,omitempty"`
	Any []Condition `json:"any,omitempty"`
	Not *Condition  `json:"not,omitempty"`

	Fact     string   `json:"fact,omitempty"`
	Operator Operator `json:"operator,omitempty"`
	Value    any      `json:"value,omitempty"`
}

// Event được phát ra khi rule thỏa mãn
type Event struct {
	Type    string         `json:"type"`
	Message string         `json:"message,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// Rule gắn một cây điều kiện với event tương ứng
type Rule struct {
	Name       string    `json:"name"`
	Priority   int       `json:"priority,omitempty"`
	Conditions Condition `json:"conditions"`
	Event      Event     `json:"event"`
}

func (c Condition) isLeaf() bool {
	return c.Fact != "" || c.Operator != ""
}

func (c Condition) kinds() int {
	n := 0
	if c.All != nil {
		n++
	}
	if c.Any != nil {
		n++
	}
	if c.Not != nil {
		n++
	}
	if c.isLeaf() {
		n++
	}
	return n
}

// Validate kiểm tra cấu trúc cây mà không cần facts
func (c Condition) Validate() error {
	if c.kinds() != 1 {
		return fmt.Errorf("%w: exactly one of all, any, not or fact must be set", ErrInvalidCondition)
	}
	switch {
	case c.All != nil:
		return validateAll(c.All)
	case c.Any != nil:
		return validateAll(c.Any)
	case c.Not != nil:
		return c.Not.Validate()
	}
	if c.Fact == "" {
		return fmt.Errorf("%w: missing fact", ErrInvalidCondition)
	}
	if !c.Operator.Valid() {
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, c.Operator)
	}
	return nil
}

func validateAll(conditions []Condition) error {
	for i := range conditions {
		if err := conditions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate đánh giá cây điều kiện với facts
func (c Condition) Evaluate(facts Facts) (bool, error) {
	switch {
	case c.All != nil:
		for _, child := range c.All {
			ok, err := child.Evaluate(facts)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case c.Any != nil:
		for _, child := range c.Any {
			ok, err := child.Evaluate(facts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case c.Not != nil:
		ok, err := c.Not.Evaluate(facts)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}

	if c.Fact == "" {
		return false, fmt.Errorf("%w: missing fact", ErrInvalidCondition)
	}
	value, ok := facts[c.Fact]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUndefinedFact, c.Fact)
	}
	return c.Operator.Apply(value, c.Value)
}

// Validate kiểm tra một rule
func (r Rule) Validate() error {
	if r.Event.Type == "" {
		return fmt.Errorf("%w: rule %q has no event type", ErrInvalidCondition, r.Name)
	}
	if err := r.Conditions.Validate(); err != nil {
		return fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return nil
}

// Parse đọc danh sách rule từ JSON; rỗng trả về nil
func Parse(data []byte) ([]Rule, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var list []Rule
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	for _, r := range list {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Run đánh giá tất cả rule theo priority giảm dần và trả về các event đã phát
func Run(list []Rule, facts Facts) ([]Event, error) {
	ordered := make([]Rule, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var events []Event
	for _, r := range ordered {
		ok, err := r.Conditions.Evaluate(facts)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		if ok {
			events = append(events, r.Event)
		}
	}
	return events, nil
}
