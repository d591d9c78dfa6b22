package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCriteriaPasses(t *testing.T) {
	item := ToolItem{
		Name:         "EM 1/2 Carbide",
		EssaiPart:    "E-100",
		HolderName:   "CAT40-ER32",
		Manufacturer: "Harvey",
	}
	family := FamilyFilter("E-100")
	otherFamily := FamilyFilter("E-200")
	class := ClassFilter("E-100", "CAT40-ER32")
	otherClass := ClassFilter("E-100", "HSK63")

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{name: "no constraints", criteria: Criteria{}, want: true},
		{name: "search case insensitive", criteria: Criteria{Search: "carbide"}, want: true},
		{name: "search miss", criteria: Criteria{Search: "drill"}, want: false},
		{name: "manufacturer match", criteria: Criteria{Manufacturer: "Harvey"}, want: true},
		{name: "manufacturer mismatch", criteria: Criteria{Manufacturer: "Sandvik"}, want: false},
		{name: "family match", criteria: Criteria{Tool: &family}, want: true},
		{name: "family mismatch", criteria: Criteria{Tool: &otherFamily}, want: false},
		{name: "class match", criteria: Criteria{Tool: &class}, want: true},
		{name: "class holder mismatch", criteria: Criteria{Tool: &otherClass}, want: false},
		{name: "tool filter ignores search", criteria: Criteria{Tool: &family, Search: "no such name"}, want: true},
		{name: "manufacturer rejects before tool filter", criteria: Criteria{Manufacturer: "Sandvik", Tool: &family}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.criteria.Passes(item))
		})
	}
}

func TestCriteriaFilterKeepsOrder(t *testing.T) {
	items := []ToolItem{{Name: "Drill A"}, {Name: "Mill B"}, {Name: "drill C"}}
	require.Equal(t, []int{0, 2}, Criteria{Search: "DRILL"}.Filter(items))
	require.Equal(t, []int{0, 1, 2}, Criteria{}.Filter(items))
}

func TestNameMatches_UnicodeFolding(t *testing.T) {
	require.True(t, NameMatches("Fräser ÜBERLANG", "überlang"))
	require.True(t, NameMatches("anything", ""))
	require.False(t, NameMatches("", "x"))
}

func TestFilterFromItemRequiresEssaiPart(t *testing.T) {
	_, ok := FamilyFilterFor(ToolItem{Name: "no part"})
	require.False(t, ok)
	_, ok = ClassFilterFor(ToolItem{Name: "no part", HolderName: "H"})
	require.False(t, ok)

	filter, ok := ClassFilterFor(ToolItem{EssaiPart: "P1", HolderName: "H1"})
	require.True(t, ok)
	require.Equal(t, ClassFilter("P1", "H1"), filter)
}

func TestToolFilterLabel(t *testing.T) {
	require.Equal(t, "Family: P1", FamilyFilter("P1").Label())
	require.Equal(t, "Class: P1 | H1", ClassFilter("P1", "H1").Label())
	require.Equal(t, "", ToolFilter{}.Label())
}

func TestParseClassFilter(t *testing.T) {
	filter, err := ParseClassFilter(" P1 , H1 ")
	require.NoError(t, err)
	require.Equal(t, ClassFilter("P1", "H1"), filter)

	_, err = ParseClassFilter("P1")
	require.ErrorIs(t, err, ErrInvalidFilter)
	_, err = ParseClassFilter(",H1")
	require.ErrorIs(t, err, ErrInvalidFilter)
}
