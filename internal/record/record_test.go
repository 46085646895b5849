package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFromValues(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"id", "name"}, []string{"1", "pencil"})
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"id", "name"}, r.Keys())

	v, ok := r.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "pencil", v)
	assert.Empty(t, r.Missing())
}

func TestFromValuesMoreTitles(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"id", "name", "price"}, []string{"1"})
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Has("price"))

	_, ok := r.Get("price")
	assert.False(t, ok, "trailing title should be missing")
	assert.Equal(t, []string{"name", "price"}, r.Missing())
	assert.Equal(t, []string{"1", "", ""}, r.Values())
	assert.Equal(t, map[string]string{"id": "1"}, r.Map())
}

func TestFromValuesMoreValues(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"id"}, []string{"1", "pencil", "0.5"})
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, map[string]string{"id": "1"}, r.Map())
}

func TestFromValuesDuplicateTitles(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"a", "b", "a"}, []string{"1", "2", "3"})
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"a", "b"}, r.Keys(), "key keeps its first position")
	v, _ := r.Get("a")
	assert.Equal(t, "3", v, "last write wins")

	// A later occurrence without a value leaves the key missing.
	r = FromValues([]string{"a", "b", "a"}, []string{"1", "2"})
	_, ok := r.Get("a")
	assert.False(t, ok)
	assert.True(t, r.Has("a"))
}

func TestLenMatchesDistinctTitles(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		nil,
		{""},
		{"a", "a", "a"},
		{"x", "y", "x", "z"},
	}
	for _, titles := range cases {
		distinct := map[string]struct{}{}
		for _, tt := range titles {
			distinct[tt] = struct{}{}
		}
		for _, values := range [][]string{nil, {"1"}, {"1", "2", "3", "4", "5"}} {
			assert.Equal(t, len(distinct), FromValues(titles, values).Len(), "titles %v values %v", titles, values)
		}
	}
}

func TestFromValuesStrict(t *testing.T) {
	t.Parallel()

	_, err := FromValuesStrict([]string{"id", "name", "id"}, []string{"1", "2", "3"})
	var derr *DuplicateTitleError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "id", derr.Title)
	assert.Equal(t, 0, derr.First)
	assert.Equal(t, 2, derr.Again)
	assert.Contains(t, err.Error(), "columns 1 and 3")

	r, err := FromValuesStrict([]string{"id", "name"}, []string{"1", "pencil"})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestKeysIsACopy(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"id"}, []string{"1"})
	keys := r.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"id"}, r.Keys())
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"name", "id", "price"}, []string{"pencil", "1"})
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"pencil","id":"1","price":null}`, string(b))
	assert.Equal(t, string(b), r.String())

	b, err = json.Marshal(FromValues(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestMarshalJSONEscapes(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{`say "hi"`}, []string{"a\\b"})
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, map[string]string{`say "hi"`: "a\\b"}, back)
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	r := FromValues([]string{"id", "name", "price"}, []string{"1", "pencil"})
	b, err := yaml.Marshal(r)
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(b, &node))
	m := node.Content[0]
	require.Len(t, m.Content, 6)
	assert.Equal(t, "id", m.Content[0].Value)
	assert.Equal(t, "name", m.Content[2].Value)
	assert.Equal(t, "price", m.Content[4].Value)

	var back map[string]*string
	require.NoError(t, yaml.Unmarshal(b, &back))
	require.NotNil(t, back["id"])
	assert.Equal(t, "1", *back["id"], "numeric-looking values stay strings")
	assert.Equal(t, "pencil", *back["name"])
	assert.Nil(t, back["price"])
}
