package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaipanel/internal/domain"
)

func TestParseDocument(t *testing.T) {
	data := []byte(`{
  "tools": [
    {
      "tool_name": "T1",
      "sc_tool_type": "drilling",
      "Solfex": {"Z": 1, "A": "x"},
      "drilling_tool": {"Length": "10"},
      "milling_tool": {"HolderName": "H1"}
    },
    {
      "tool_name": "T2",
      "sc_tool_type": "milling",
      "Solfex": null,
      "milling_tool": [1, 2]
    }
  ]
}`)

	records, err := ParseDocument(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "T1", first.Name)
	assert.Equal(t, domain.ToolTypeDrilling, first.ToolType)
	assert.Equal(t, []string{"Z", "A"}, first.Solfex.Keys())
	assert.Equal(t, "10", first.Drilling.Value("Length"))
	assert.Equal(t, "H1", first.Milling.Value("HolderName"))

	second := records[1]
	assert.Nil(t, second.Solfex)
	assert.Nil(t, second.Milling)
	assert.Nil(t, second.Drilling)
}

func TestParseDocument_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{name: "empty", data: "  \n", want: domain.ErrEmptyDocument},
		{name: "not json", data: "not json", want: domain.ErrParseFailed},
		{name: "missing tools", data: `{"items":[]}`, want: domain.ErrSchemaMismatch},
		{name: "tools not array", data: `{"tools":{}}`, want: domain.ErrSchemaMismatch},
		{name: "missing tool name", data: `{"tools":[{"sc_tool_type":"milling"}]}`, want: domain.ErrSchemaMismatch},
		{name: "numeric tool type", data: `{"tools":[{"tool_name":"a","sc_tool_type":3}]}`, want: domain.ErrSchemaMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := ParseDocument([]byte(tc.data))
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, records)
		})
	}
}

func TestParseDocument_EmptyToolList(t *testing.T) {
	records, err := ParseDocument([]byte(`{"tools":[]}`))
	require.NoError(t, err)
	require.Empty(t, records)
}
