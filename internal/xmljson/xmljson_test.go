// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xmljson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ollyswanson/fixture-converter/internal/markup"
	"github.com/ollyswanson/fixture-converter/internal/plural"
	"github.com/ollyswanson/fixture-converter/internal/value"
	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// configs covers every list detection strategy.
var configs = map[string]*Config{
	"none":       NewConfig(nil, nil),
	"stem":       NewConfig(nil, plural.StemEquality{}),
	"suffix":     NewConfig(nil, plural.SuffixStrip{}),
	"inflection": NewConfig(nil, plural.Inflection{}),
}

// convertString parses src and returns the converted document as compact JSON.
func convertString(t *testing.T, src string, cfg *Config) string {
	t.Helper()
	root, err := markup.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, value.WriteJSON(&buf, ConvertDocument(root, cfg), value.Indent("")))
	return strings.TrimSuffix(buf.String(), "\n")
}

func TestConvert_AllConfigs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "leaf collapses to string",
			src:  `<name>Bob</name>`,
			want: `{"name":"Bob"}`,
		},
		{
			name: "leaf collapse drops element siblings",
			src:  `<p><b>bold</b>text<i>italic</i></p>`,
			want: `{"p":"text"}`,
		},
		{
			name: "attributes and children merge",
			src:  `<e a="1"><b>x</b></e>`,
			want: `{"e":{"a":"1","b":"x"}}`,
		},
		{
			name: "duplicate names always become an array",
			src:  `<items><item/><item/></items>`,
			want: `{"items":{"item":[{},{}]}}`,
		},
		{
			name: "duplicate strings become an array",
			src:  `<list><tag>a</tag><tag>b</tag><tag>c</tag></list>`,
			want: `{"list":{"tag":["a","b","c"]}}`,
		},
		{
			name: "root is always wrapped",
			src:  `<doc/>`,
			want: `{"doc":{}}`,
		},
		{
			name: "text beside attributes uses the value key",
			src:  `<e id="7">hello</e>`,
			want: `{"e":{"id":"7","value":"hello"}}`,
		},
		{
			name: "child overwrites attribute of the same name",
			src:  `<e name="attr" id="1"><name>child</name></e>`,
			want: `{"e":{"name":"child","id":"1"}}`,
		},
		{
			name: "document order is preserved",
			src:  `<r z="0"><b/><a/><c>x</c></r>`,
			want: `{"r":{"z":"0","b":{},"a":{},"c":"x"}}`,
		},
		{
			name: "comments produce nothing",
			src:  `<r><!-- ignored --><a>1</a></r>`,
			want: `{"r":{"a":"1"}}`,
		},
		{
			name: "scalars stay strings",
			src:  `<r><n>42</n><b>true</b></r>`,
			want: `{"r":{"n":"42","b":"true"}}`,
		},
	}

	for cfgName, cfg := range configs {
		for _, tt := range tests {
			t.Run(cfgName+"/"+tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, convertString(t, tt.src, cfg))
			})
		}
	}
}

func TestConvert_ListDetection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string]string
	}{
		{
			name: "regular plural",
			src:  `<groups><group id="g1"/></groups>`,
			want: map[string]string{
				"none":       `{"groups":{"group":{"id":"g1"}}}`,
				"stem":       `{"groups":{"group":[{"id":"g1"}]}}`,
				"suffix":     `{"groups":{"group":[{"id":"g1"}]}}`,
				"inflection": `{"groups":{"group":[{"id":"g1"}]}}`,
			},
		},
		{
			name: "ies plural",
			src:  `<categories><category>books</category></categories>`,
			want: map[string]string{
				"none":       `{"categories":{"category":"books"}}`,
				"stem":       `{"categories":{"category":["books"]}}`,
				"suffix":     `{"categories":{"category":"books"}}`,
				"inflection": `{"categories":{"category":["books"]}}`,
			},
		},
		{
			name: "irregular plural",
			src:  `<people><person>ann</person></people>`,
			want: map[string]string{
				"none":       `{"people":{"person":"ann"}}`,
				"stem":       `{"people":{"person":"ann"}}`,
				"suffix":     `{"people":{"person":"ann"}}`,
				"inflection": `{"people":{"person":["ann"]}}`,
			},
		},
		{
			name: "unrelated names",
			src:  `<config><item/></config>`,
			want: map[string]string{
				"none":       `{"config":{"item":{}}}`,
				"stem":       `{"config":{"item":{}}}`,
				"suffix":     `{"config":{"item":{}}}`,
				"inflection": `{"config":{"item":{}}}`,
			},
		},
		{
			name: "detected list keeps growing",
			src:  `<groups><group id="1"/><group id="2"/><group id="3"/></groups>`,
			want: map[string]string{
				"none":       `{"groups":{"group":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`,
				"stem":       `{"groups":{"group":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`,
				"suffix":     `{"groups":{"group":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`,
				"inflection": `{"groups":{"group":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`,
			},
		},
	}

	for _, tt := range tests {
		for cfgName, want := range tt.want {
			t.Run(tt.name+"/"+cfgName, func(t *testing.T) {
				assert.Equal(t, want, convertString(t, tt.src, configs[cfgName]))
			})
		}
	}
}

func TestConvert_IgnoredAttributes(t *testing.T) {
	src := `<e schemaLocation="x.xsd" a="1" b="2" c="3"/>`

	got := convertString(t, src, NewConfig([]string{"schemaLocation"}, nil))
	assert.Equal(t, `{"e":{"a":"1","b":"2","c":"3"}}`, got)

	forward := convertString(t, src, NewConfig([]string{"a", "c"}, nil))
	backward := convertString(t, src, NewConfig([]string{"c", "a"}, nil))
	assert.Equal(t, forward, backward, "ignore list order must not matter")
	assert.Equal(t, `{"e":{"schemaLocation":"x.xsd","b":"2"}}`, forward)
}

func TestConvert_IgnoredAttributesDoNotEnableLeafCollapse(t *testing.T) {
	// The element still has an attribute, so it becomes an object even though
	// the attribute itself is dropped.
	got := convertString(t, `<e schemaLocation="x.xsd">hi</e>`, NewConfig([]string{"schemaLocation"}, nil))
	assert.Equal(t, `{"e":{"value":"hi"}}`, got)
}

func TestConvert_TableauFixture(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<tsResponse xmlns="http://tableau.com/api"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xsi:schemaLocation="http://tableau.com/api https://help.tableau.com/samples/en-us/rest_api/ts-api_3_4.xsd">
  <pagination pageNumber="1" pageSize="100" totalAvailable="1"/>
  <users>
    <user id="dd2239f6" name="alice@example.com" siteRole="Creator">
      <domain name="local"/>
    </user>
  </users>
</tsResponse>`

	root, err := markup.Parse(strings.NewReader(src))
	require.NoError(t, err)

	cfg, err := ConfigFrom(types.DefaultEngineConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, value.WriteJSON(&buf, ConvertDocument(root, cfg)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	want := map[string]any{
		"tsResponse": map[string]any{
			"pagination": map[string]any{
				"pageNumber":     "1",
				"pageSize":       "100",
				"totalAvailable": "1",
			},
			"users": map[string]any{
				"user": []any{
					map[string]any{
						"id":       "dd2239f6",
						"name":     "alice@example.com",
						"siteRole": "Creator",
						"domain":   map[string]any{"name": "local"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("converted fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertNode(t *testing.T) {
	cfg := NewConfig(nil, nil)

	key, v, ok := ConvertNode(markup.Text{Content: "loose"}, cfg)
	require.True(t, ok)
	assert.Equal(t, TextKey, key)
	assert.Equal(t, value.String("loose"), v)

	_, _, ok = ConvertNode(markup.Other{Kind: "comment"}, cfg)
	assert.False(t, ok)

	el := &markup.Element{
		Name:     "title",
		Children: []markup.Node{markup.Other{Kind: "comment"}, markup.Text{Content: "Dune"}},
	}
	key, v, ok = ConvertNode(el, cfg)
	require.True(t, ok)
	assert.Equal(t, "title", key)
	assert.Equal(t, value.String("Dune"), v)
}

func TestAggregate(t *testing.T) {
	children := []markup.Node{
		&markup.Element{Name: "site", Attrs: []markup.Attr{{Name: "id", Value: "1"}}},
		markup.Other{Kind: "comment"},
		&markup.Element{Name: "owner", Children: []markup.Node{markup.Text{Content: "bob"}}},
	}

	got := Aggregate("sites", children, NewConfig(nil, plural.SuffixStrip{}))
	assert.Equal(t, []string{"site", "owner"}, got.Keys())

	site, _ := got.Get("site")
	require.IsType(t, value.Array{}, site)
	assert.Len(t, site, 1)

	owner, _ := got.Get("owner")
	assert.Equal(t, value.String("bob"), owner)
}

func TestIsIgnored(t *testing.T) {
	cfg := NewConfig([]string{"schemaLocation", "noNamespaceSchemaLocation"}, nil)
	assert.True(t, cfg.IsIgnored("schemaLocation"))
	assert.True(t, cfg.IsIgnored("noNamespaceSchemaLocation"))
	assert.False(t, cfg.IsIgnored("id"))
	assert.False(t, cfg.IsIgnored("SchemaLocation"))
}

func TestConfigFrom(t *testing.T) {
	cfg, err := ConfigFrom(types.DefaultEngineConfig())
	require.NoError(t, err)
	assert.Equal(t, plural.StemEquality{}, cfg.heuristic)
	assert.True(t, cfg.IsIgnored("schemaLocation"))

	_, err = ConfigFrom(types.EngineConfig{ListDetection: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown list detection strategy")

	cfg, err = ConfigFrom(types.EngineConfig{ListDetection: types.ListDetectionNone})
	require.NoError(t, err)
	assert.Nil(t, cfg.heuristic)

	cfg, err = ConfigFrom(types.EngineConfig{})
	require.NoError(t, err)
	assert.Equal(t, plural.StemEquality{}, cfg.heuristic, "empty strategy defaults to stem")
}
