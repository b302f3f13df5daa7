// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package value

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Object {
	site := NewObject()
	site.Set("name", String("Default"))
	site.Set("id", String("a1"))

	root := NewObject()
	root.Set("version", String("3.4"))
	root.Set("sites", Single("site", Array{site}))
	return Single("tsResponse", root)
}

func TestObject_InsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", String("1"))
	o.Set("a", String("2"))
	o.Set("m", String("3"))
	o.Set("z", String("4"))

	assert.Equal(t, []string{"z", "a", "m"}, o.Keys())
	assert.Equal(t, 3, o.Len())

	v, ok := o.Get("z")
	require.True(t, ok)
	assert.Equal(t, String("4"), v, "overwrite replaces the value in place")

	_, ok = o.Get("missing")
	assert.False(t, ok)
}

func TestObject_Range(t *testing.T) {
	o := NewObject()
	o.Set("a", String("1"))
	o.Set("b", String("2"))
	o.Set("c", String("3"))

	var seen []string
	o.Range(func(k string, _ Value) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestWriteJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTree()))

	want := `{
  "tsResponse": {
    "version": "3.4",
    "sites": {
      "site": [
        {
          "name": "Default",
          "id": "a1"
        }
      ]
    }
  }
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_Options(t *testing.T) {
	tests := []struct {
		name string
		opts []EncodeOption
		want string
	}{
		{
			name: "compact",
			opts: []EncodeOption{Indent("")},
			want: `{"tsResponse":{"version":"3.4","sites":{"site":[{"name":"Default","id":"a1"}]}}}` + "\n",
		},
		{
			name: "compact sorted",
			opts: []EncodeOption{Indent(""), SortedKeys(true)},
			want: `{"tsResponse":{"sites":{"site":[{"id":"a1","name":"Default"}]},"version":"3.4"}}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteJSON(&buf, sampleTree(), tt.opts...))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSON_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	v := Single("q", String(`a < b && "c" > d`))
	require.NoError(t, WriteJSON(&buf, v, Indent("")))
	assert.Equal(t, `{"q":"a < b && \"c\" > d"}`+"\n", buf.String())
}

func TestWriteJSON_EmptyAndNull(t *testing.T) {
	var buf bytes.Buffer
	v := NewObject()
	v.Set("doc", NewObject())
	v.Set("nothing", Null{})
	require.NoError(t, WriteJSON(&buf, v, Indent("")))
	assert.Equal(t, `{"doc":{},"nothing":null}`+"\n", buf.String())
}

func TestSortKeys_DoesNotMutate(t *testing.T) {
	tree := sampleTree()
	sorted := SortKeys(tree).(*Object)

	inner, _ := tree.Get("tsResponse")
	assert.Equal(t, []string{"version", "sites"}, inner.(*Object).Keys())

	sortedInner, _ := sorted.Get("tsResponse")
	assert.Equal(t, []string{"sites", "version"}, sortedInner.(*Object).Keys())
}

func TestObject_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]any{"wrapped": sampleTree()})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	resp := decoded["wrapped"].(map[string]any)["tsResponse"].(map[string]any)
	assert.Equal(t, "3.4", resp["version"])
}

func TestWriteYAML(t *testing.T) {
	tree := NewObject()
	tree.Set("count", String("12"))
	tree.Set("enabled", String("true"))
	tree.Set("items", Array{String("a"), String("b")})
	tree.Set("empty", NewObject())

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Single("doc", tree)))

	want := `doc:
  count: "12"
  enabled: "true"
  items:
    - a
    - b
  empty: {}
`
	assert.Equal(t, want, buf.String())
}
