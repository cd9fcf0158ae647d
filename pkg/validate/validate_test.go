package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestList_PreservesOrder(t *testing.T) {
	const n = 25
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf(`{"id":%d,"name":"entry-%d"}`, i, i))
	}
	raw := json.RawMessage("[" + strings.Join(parts, ",") + "]")

	got, err := List[entry](raw)
	require.NoError(t, err)
	require.Len(t, got, n)
	for i, e := range got {
		assert.Equal(t, i, e.ID)
		assert.Equal(t, fmt.Sprintf("entry-%d", i), e.Name)
	}
}

func TestList_EmptyInputs(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]", "{}"} {
		got, err := List[entry](json.RawMessage(in))
		require.NoError(t, err, "input %q", in)
		assert.NotNil(t, got, "input %q must yield an empty slice, not nil", in)
		assert.Empty(t, got)
	}
}

func TestList_SingleObject(t *testing.T) {
	got, err := List[entry](json.RawMessage(`{"id":7,"name":"solo"}`))
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 7, Name: "solo"}}, got)
}

func TestList_WrongShape(t *testing.T) {
	got, err := List[entry](json.RawMessage(`"text"`))
	require.Error(t, err)
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "[]validate.entry", vErr.Target)
	assert.Empty(t, got)
}

func TestOne(t *testing.T) {
	got, err := One[entry](json.RawMessage(`{"id":1,"name":"first"}`))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)

	for _, in := range []string{"", "null", "{}"} {
		got, err := One[entry](json.RawMessage(in))
		require.NoError(t, err, "input %q", in)
		assert.Nil(t, got, "input %q", in)
	}
}

func TestOne_TypeMismatch(t *testing.T) {
	_, err := One[entry](json.RawMessage(`{"id":"not-a-number"}`))
	require.Error(t, err)
	var vErr *Error
	assert.True(t, errors.As(err, &vErr))

	_, err = One[entry](json.RawMessage(`[{"id":1}]`))
	assert.Error(t, err)
}

type animeShape struct {
	ID       int `json:"id"`
	Episodes int `json:"episodes"`
}

type mangaShape struct {
	ID      int    `json:"id"`
	Volumes int    `json:"volumes"`
	Kind    string `json:"kind"`
}

type clubShape struct {
	ID         int    `json:"id"`
	JoinPolicy string `json:"join_policy"`
}

func candidates() []Candidate {
	return []Candidate{
		{Name: "Club", Required: []string{"join_policy"}, New: func() any { return new(clubShape) }},
		{Name: "Anime", Required: []string{"episodes"}, New: func() any { return new(animeShape) }},
		{Name: "Ranobe", Required: []string{"volumes"}, Match: func(f Fields) bool {
			k := f.Text("kind")
			return k == "light_novel" || k == "novel"
		}, New: func() any { return new(mangaShape) }},
		{Name: "Manga", Required: []string{"volumes"}, New: func() any { return new(mangaShape) }},
	}
}

func TestUnion_Structural(t *testing.T) {
	tests := []struct {
		raw  string
		name string
	}{
		{`{"id":1,"episodes":12}`, "Anime"},
		{`{"id":2,"volumes":3,"kind":"manga"}`, "Manga"},
		{`{"id":3,"volumes":3,"kind":"light_novel"}`, "Ranobe"},
		{`{"id":4,"join_policy":"free"}`, "Club"},
	}
	for _, tt := range tests {
		name, v, err := Union(json.RawMessage(tt.raw), candidates()...)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.name, name, tt.raw)
		assert.NotNil(t, v)
	}

	_, v, err := Union(json.RawMessage(`{"id":1,"episodes":12}`), candidates()...)
	require.NoError(t, err)
	anime, ok := v.(*animeShape)
	require.True(t, ok)
	assert.Equal(t, 12, anime.Episodes)
}

func TestUnion_NullMemberDoesNotMatch(t *testing.T) {
	name, _, err := Union(json.RawMessage(`{"id":1,"episodes":null,"volumes":2}`), candidates()...)
	require.NoError(t, err)
	assert.Equal(t, "Manga", name)
}

func TestUnion_NoMatch(t *testing.T) {
	_, _, err := Union(json.RawMessage(`{"id":1}`), candidates()...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCandidate))
}

func TestUnion_Empty(t *testing.T) {
	name, v, err := Union(nil, candidates()...)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Nil(t, v)
}

func TestTagged(t *testing.T) {
	// The tag wins over structure.
	name, v, err := Tagged("Ranobe", json.RawMessage(`{"id":5,"volumes":1,"kind":"manga"}`), candidates()...)
	require.NoError(t, err)
	assert.Equal(t, "Ranobe", name)
	assert.IsType(t, &mangaShape{}, v)

	// Unknown tag falls back to structural matching.
	name, _, err = Tagged("Character", json.RawMessage(`{"id":6,"episodes":1}`), candidates()...)
	require.NoError(t, err)
	assert.Equal(t, "Anime", name)
}
