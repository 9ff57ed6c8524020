package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	condition, err := ParseCondition("level >= 25 and prestige >= 1")
	require.NoError(t, err)
	require.Len(t, condition.Clauses, 2)
	assert.Equal(t, ConditionClause{Variable: "level", Op: ">=", Value: 25}, condition.Clauses[0])
	assert.Equal(t, ConditionClause{Variable: "prestige", Op: ">=", Value: 1}, condition.Clauses[1])
}

func TestParseConditionNormalizesInput(t *testing.T) {
	condition, err := ParseCondition("  LEVEL>=10  ")
	require.NoError(t, err)
	require.Len(t, condition.Clauses, 1)
	assert.Equal(t, "level", condition.Clauses[0].Variable)
	assert.Equal(t, "level >= 10", condition.String())
}

func TestParseConditionRejects(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown variable", "mana >= 10"},
		{"unknown operator", "level != 10"},
		{"free text", "user.delete()"},
		{"missing literal", "level >="},
		{"non-integer literal", "level >= ten"},
		{"float literal", "coins >= 10.5"},
		{"or conjunction", "level >= 10 or coins >= 5"},
		{"nested call", "len(level) >= 10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCondition(tc.input)
			require.ErrorIs(t, err, ErrInvalidCondition)
		})
	}
}

func TestConditionEval(t *testing.T) {
	condition, err := ParseCondition("level >= 25 and coins > 100")
	require.NoError(t, err)

	assert.True(t, condition.Eval(map[string]int64{"level": 25, "coins": 101}))
	assert.False(t, condition.Eval(map[string]int64{"level": 24, "coins": 101}))
	assert.False(t, condition.Eval(map[string]int64{"level": 25, "coins": 100}))
}

func TestConditionEvalMissingVariableFailsClause(t *testing.T) {
	condition := &Condition{Clauses: []ConditionClause{{Variable: "level", Op: ">=", Value: 1}}}
	assert.False(t, condition.Eval(map[string]int64{"coins": 5}))
}

func TestConditionEvalOperators(t *testing.T) {
	snapshot := map[string]int64{"level": 10}

	cases := []struct {
		input string
		want  bool
	}{
		{"level >= 10", true},
		{"level > 10", false},
		{"level == 10", true},
		{"level <= 10", true},
		{"level < 10", false},
	}

	for _, tc := range cases {
		condition, err := ParseCondition(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, condition.Eval(snapshot), tc.input)
	}
}

func TestConditionValidate(t *testing.T) {
	valid, err := ParseCondition("coins >= 500")
	require.NoError(t, err)
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, (&Condition{}).Validate(), ErrInvalidCondition)
	assert.ErrorIs(t, (&Condition{Clauses: []ConditionClause{{Variable: "mana", Op: ">=", Value: 1}}}).Validate(), ErrInvalidCondition)
	assert.ErrorIs(t, (&Condition{Clauses: []ConditionClause{{Variable: "level", Op: "!=", Value: 1}}}).Validate(), ErrInvalidCondition)
}
