package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStored(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   SelectionKind
		stored string
	}{
		{"text", `"red"`, SelectionText, "red"},
		{"integer", `3`, SelectionNumber, "3"},
		{"decimal", `2.5`, SelectionNumber, "2.5"},
		{"negative", `-4`, SelectionNumber, "-4"},
		{"negative zero", `-0`, SelectionNumber, "0"},
		{"large integer", `100000000000000000000`, SelectionNumber, "100000000000000000000"},
		{"exponent", `1e21`, SelectionNumber, "1e+21"},
		{"large exponent", `-2.5e30`, SelectionNumber, "-2.5e+30"},
		{"small decimal", `0.000001`, SelectionNumber, "0.000001"},
		{"tiny", `1.5e-7`, SelectionNumber, "1.5e-7"},
		{"bool", `true`, SelectionBool, "true"},
		{"list", `[ "a", "b" ]`, SelectionList, `["a","b"]`},
		{"object", `{ "x": 1 }`, SelectionObject, `{"x":1}`},
		{"empty text", `""`, SelectionText, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.stored, s.Stored())
			assert.False(t, s.IsZero())
		})
	}
}

func TestSelectionStoredTextRebuildsShape(t *testing.T) {
	var list, object Selection
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &list))
	require.NoError(t, json.Unmarshal([]byte(`{"x":1}`), &object))

	var gotList []string
	require.NoError(t, json.Unmarshal([]byte(list.Stored()), &gotList))
	assert.Equal(t, []string{"a", "b"}, gotList)

	var gotObject map[string]int
	require.NoError(t, json.Unmarshal([]byte(object.Stored()), &gotObject))
	assert.Equal(t, map[string]int{"x": 1}, gotObject)
}

func TestSelectionNullAndMissing(t *testing.T) {
	var req OrderItemOptionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"productOptionId": 1, "selection": null}`), &req))
	assert.True(t, req.Selection.IsZero())

	req = OrderItemOptionRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"productOptionId": 1}`), &req))
	assert.True(t, req.Selection.IsZero())
	assert.Equal(t, "none", req.Selection.Kind.String())
}

func TestSelectionRejectsMalformed(t *testing.T) {
	var s Selection
	assert.Error(t, s.UnmarshalJSON([]byte(`[1,`)))
	assert.Error(t, s.UnmarshalJSON([]byte(`{"a":`)))
	assert.Error(t, s.UnmarshalJSON([]byte(`abc`)))
}

func TestSelectionMarshal(t *testing.T) {
	for _, s := range []Selection{
		TextSelection("red"),
		NumberSelection(3),
		BoolSelection(false),
		ListSelection([]byte(`[1, 2]`)),
		ObjectSelection([]byte(`{"a": "b"}`)),
	} {
		data, err := json.Marshal(s)
		require.NoError(t, err)

		var back Selection
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s.Kind, back.Kind)
		assert.Equal(t, s.Stored(), back.Stored())
	}
}
