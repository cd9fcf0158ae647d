package shikimori

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/shiki/pkg/enums"
)

func TestAnimeFilterQuery(t *testing.T) {
	q := AnimeFilter{
		Page:       Page{Limit: 500},
		Order:      enums.AnimeOrderRanked,
		Kind:       []enums.AnimeKind{enums.AnimeKindTV, enums.Not(enums.AnimeKindMovie)},
		Score:      12,
		Genre:      []int{1, 22},
		ExcludeIDs: []int{5},
		Search:     "bebop",
	}.query().values()

	assert.Equal(t, "50", q.Get("limit"))
	assert.Empty(t, q.Get("page"))
	assert.Equal(t, "ranked", q.Get("order"))
	assert.Equal(t, "tv,!movie", q.Get("kind"))
	assert.Equal(t, "9", q.Get("score"))
	assert.Equal(t, "1,22", q.Get("genre"))
	assert.Equal(t, "5", q.Get("exclude_ids"))
	assert.Equal(t, "bebop", q.Get("search"))
	assert.NotContains(t, q, "status")
}

func TestEmptyFilterSendsNoQuery(t *testing.T) {
	assert.Nil(t, AnimeFilter{}.query().values())
}

func TestPageClamping(t *testing.T) {
	tests := []struct {
		name      string
		page      Page
		wantPage  string
		wantLimit string
	}{
		{"zero", Page{}, "", ""},
		{"negative", Page{Page: -3, Limit: -1}, "1", "1"},
		{"too large", Page{Page: MaxPage + 1, Limit: 51}, "100000", "50"},
		{"in range", Page{Page: 2, Limit: 10}, "2", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.page.apply(newQuery(), MaxLimit)
			assert.Equal(t, tt.wantPage, q.Get("page"))
			assert.Equal(t, tt.wantLimit, q.Get("limit"))
		})
	}
}

func TestQueryFlag(t *testing.T) {
	q := newQuery().flag("desc", Bool(true)).flag("censored", Bool(false)).flag("unset", nil)
	assert.Equal(t, "1", q.Get("desc"))
	assert.Equal(t, "0", q.Get("censored"))
	assert.NotContains(t, q.Values, "unset")
}

func TestUserRateInputClampsScore(t *testing.T) {
	assert.Equal(t, 10, UserRateInput{Score: 10}.normalized().Score, "ten is a valid rating")
	assert.Equal(t, MaxRateScore, UserRateInput{Score: 15}.normalized().Score)
	assert.Equal(t, 1, UserRateInput{Score: -2}.normalized().Score)
	assert.Equal(t, 0, UserRateInput{}.normalized().Score)
}
