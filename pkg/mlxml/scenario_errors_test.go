package mlxml_test

import (
	"testing"

	"github.com/shapestone/mlxml/pkg/mlxml"
	"github.com/stretchr/testify/require"
)

// choiceRootSchema builds spec.md §8 scenario 4's root: a choice of two
// self-closing children, a and b.
func choiceRootSchema() mlxml.ElementSchema {
	return mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Choice,
		Children: []mlxml.ElementSchema{
			{Name: "a", MinOccur: 0, MaxOccur: 4294967295},
			{Name: "b", MinOccur: 0, MaxOccur: 4294967295},
		},
	}
}

func TestParse_ChoiceViolation(t *testing.T) {
	err := mlxml.Parse(choiceRootSchema(), []byte(`<root><a/><b/></root>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrChoiceElement)
}

func TestParse_ChoiceRepeatedSingleChildIsFine(t *testing.T) {
	err := mlxml.Parse(choiceRootSchema(), []byte(`<root><a/><a/><a/></root>`), nil, nil)
	require.NoError(t, err)
}

func TestParse_EndTagMismatch(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:     "a",
		MinOccur: 1, MaxOccur: 1,
		Content: mlxml.StringOwned{MinLen: 0, MaxLen: 100},
	}
	err := mlxml.Parse(schema, []byte(`<a>text</b>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrEndTagNotFound)
}

func TestParse_DuplicateAttribute(t *testing.T) {
	var s string
	schema := mlxml.ElementSchema{
		Name:     "root",
		MinOccur: 1, MaxOccur: 1,
		Attributes: []mlxml.AttributeSchema{
			{Name: "id", Use: mlxml.Optional,
				Destination: mlxml.Static(func(uint32) any { return &s }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 10}},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root id="1" id="2"/>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrDuplicateAttribute)
}

func TestParse_UnknownAttribute(t *testing.T) {
	schema := mlxml.ElementSchema{Name: "root", MinOccur: 1, MaxOccur: 1}
	err := mlxml.Parse(schema, []byte(`<root bogus="1"/>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrAttributeNotFound)
}

func TestParse_ProhibitedAttributePresent(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:     "root",
		MinOccur: 1, MaxOccur: 1,
		Attributes: []mlxml.AttributeSchema{
			{Name: "legacy", Use: mlxml.Prohibited, Content: mlxml.StringOwned{MinLen: 0, MaxLen: 10}},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root legacy="1"/>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrAttributeNotFound)
}

func TestParse_SelfCloseWithRequiredChildFails(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{Name: "must", MinOccur: 1, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root/>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrElementMinOccurrence)
}

func TestParse_SelfCloseWithOnlyOptionalChildrenSucceeds(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{Name: "maybe", MinOccur: 0, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root/>`), nil, nil)
	require.NoError(t, err)
}

func TestParse_MaxOccurrenceExceeded(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{Name: "once", MinOccur: 1, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root><once/><once/></root>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrElementMaxOccurrence)
}

func TestParse_SequenceOutOfOrderSkipsUnsatisfiedMandatorySlot(t *testing.T) {
	// "second" cannot satisfy the "first" slot it's searched against, and
	// "first" has not yet met its MinOccur of 1 when the cursor tries to
	// advance past it — per spec.md §4.6 this is ElementMinOccurrenceError,
	// not ElementNotFound (that's reserved for running past the last slot).
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{Name: "first", MinOccur: 1, MaxOccur: 1},
			{Name: "second", MinOccur: 1, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root><second/><first/></root>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrElementMinOccurrence)
}

func TestParse_SequenceUnknownNamePastOptionalSlotsIsElementNotFound(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{Name: "first", MinOccur: 0, MaxOccur: 1},
			{Name: "second", MinOccur: 0, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root><bogus/></root>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrElementNotFound)
}

func TestParse_AllOrderAcceptsAnySequence(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:       "root",
		MinOccur:   1,
		MaxOccur:   1,
		ChildOrder: mlxml.All,
		Children: []mlxml.ElementSchema{
			{Name: "first", MinOccur: 1, MaxOccur: 1},
			{Name: "second", MinOccur: 1, MaxOccur: 1},
		},
	}
	err := mlxml.Parse(schema, []byte(`<root><second/><first/></root>`), nil, nil)
	require.NoError(t, err)
}
