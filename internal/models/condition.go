package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Achievement conditions are structured predicates, never code. Admin input
// like "level >= 25 and prestige >= 1" is parsed into clauses at definition
// time and interpreted against a user snapshot at evaluation time.

var ErrInvalidCondition = errors.New("invalid condition")

var conditionVariables = map[string]bool{
	"level":    true,
	"prestige": true,
	"coins":    true,
}

var conditionOps = map[string]bool{
	">=": true,
	">":  true,
	"==": true,
	"<=": true,
	"<":  true,
}

var clausePattern = regexp.MustCompile(`^([a-z_]+)\s*(>=|<=|==|>|<)\s*(-?[0-9]+)$`)

type ConditionClause struct {
	Variable string `json:"variable"`
	Op       string `json:"op"`
	Value    int64  `json:"value"`
}

type Condition struct {
	Clauses []ConditionClause `json:"clauses"`
}

// ParseCondition accepts a conjunction of comparison clauses joined by
// "and". Unknown variables, operators and non-integer literals are rejected
// here so a malformed predicate never reaches evaluation.
func ParseCondition(input string) (*Condition, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidCondition)
	}

	parts := strings.Split(input, " and ")
	condition := &Condition{Clauses: make([]ConditionClause, 0, len(parts))}

	for _, part := range parts {
		m := clausePattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, fmt.Errorf("%w: malformed clause %q", ErrInvalidCondition, part)
		}

		variable, op := m[1], m[2]
		if !conditionVariables[variable] {
			return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidCondition, variable)
		}

		value, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: literal %q out of range", ErrInvalidCondition, m[3])
		}

		condition.Clauses = append(condition.Clauses, ConditionClause{
			Variable: variable,
			Op:       op,
			Value:    value,
		})
	}

	return condition, nil
}

// Validate re-checks a stored condition, for rows written before the
// grammar was introduced or edited out of band.
func (c *Condition) Validate() error {
	if c == nil || len(c.Clauses) == 0 {
		return fmt.Errorf("%w: no clauses", ErrInvalidCondition)
	}

	for _, clause := range c.Clauses {
		if !conditionVariables[clause.Variable] {
			return fmt.Errorf("%w: unknown variable %q", ErrInvalidCondition, clause.Variable)
		}
		if !conditionOps[clause.Op] {
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, clause.Op)
		}
	}

	return nil
}

// Eval interprets the conjunction against a snapshot. A variable missing
// from the snapshot fails the clause instead of erroring, so adding a new
// whitelisted variable never breaks existing rows.
func (c *Condition) Eval(snapshot map[string]int64) bool {
	if c == nil || len(c.Clauses) == 0 {
		return false
	}

	for _, clause := range c.Clauses {
		actual, ok := snapshot[clause.Variable]
		if !ok || !compare(actual, clause.Op, clause.Value) {
			return false
		}
	}

	return true
}

func (c *Condition) String() string {
	parts := make([]string, 0, len(c.Clauses))
	for _, clause := range c.Clauses {
		parts = append(parts, fmt.Sprintf("%s %s %d", clause.Variable, clause.Op, clause.Value))
	}
	return strings.Join(parts, " and ")
}

func compare(actual int64, op string, expected int64) bool {
	switch op {
	case ">=":
		return actual >= expected
	case ">":
		return actual > expected
	case "==":
		return actual == expected
	case "<=":
		return actual <= expected
	case "<":
		return actual < expected
	default:
		return false
	}
}
