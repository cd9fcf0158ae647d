package shikimori

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/shiki/pkg/models"
)

func rejectToken(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="Doorkeeper", error="invalid_token", error_description="The access token expired"`)
	w.WriteHeader(http.StatusUnauthorized)
}

func TestRequest_RefreshesOnceOnInvalidToken(t *testing.T) {
	api := newFakeAPI(t,
		tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"},
		tokenPair{Access: "T2", Refresh: "R2", Scope: "user_rates comments"},
	)
	var hits atomic.Int32
	api.handle("GET /api/users/whoami", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			rejectToken(w)
			return
		}
		w.Write([]byte(whoamiBody))
	})
	st := openMemoryStore(t)
	c := openTestClient(t, api, testConfig(), WithStore(st))

	user, err := c.Users.WhoAmI(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)

	calls := api.apiCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer T1", calls[0].Auth)
	assert.Equal(t, "Bearer T2", calls[1].Auth)

	tokenCalls := api.tokenRequests()
	require.Len(t, tokenCalls, 2)
	assert.Equal(t, "refresh_token", tokenCalls[1].Get("grant_type"))
	assert.Equal(t, "R1", tokenCalls[1].Get("refresh_token"))

	rec, err := st.FetchByAccessToken(context.Background(), "TestApp", "T2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "R2", rec.RefreshToken)
}

func TestRequest_SecondInvalidTokenIsNotRetried(t *testing.T) {
	for _, strict := range []bool{false, true} {
		name := "lenient"
		if strict {
			name = "strict"
		}
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI(t,
				tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"},
				tokenPair{Access: "T2", Refresh: "R2", Scope: "user_rates comments"},
			)
			api.handle("GET /api/users/whoami", func(w http.ResponseWriter, r *http.Request) {
				rejectToken(w)
			})
			var opts []Option
			if strict {
				opts = append(opts, WithStrictErrors())
			}
			c := openTestClient(t, api, testConfig(), opts...)

			user, err := c.Users.WhoAmI(context.Background())
			assert.Nil(t, user)
			if strict {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.True(t, apiErr.InvalidToken())
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, api.apiCalls(), 2)
			assert.Len(t, api.tokenRequests(), 2)
		})
	}
}

func TestRequest_ServerErrorIsNotRetried(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("GET /api/animes/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})
	c := openTestClient(t, api, Config{AppName: "TestApp"}, WithStrictErrors())

	anime, err := c.Animes.Get(context.Background(), 1)
	assert.Nil(t, anime)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Code)
	assert.Len(t, api.apiCalls(), 1)
}

func TestRequest_LenientFallbacks(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("GET /api/animes/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	api.reply("GET /api/genres", `{"unexpected": "shape", "id": "not a number"}`)
	c := openTestClient(t, api, Config{AppName: "TestApp"})

	anime, err := c.Animes.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, anime)

	genres, err := c.Catalog.Genres(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)
}

func TestRequest_ClosedSessionReturnsNil(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api, Config{AppName: "TestApp"})

	res, err := c.Request(context.Background(), Request{URL: c.Endpoints().Genres()})
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.False(t, res.OK())
	assert.Nil(t, res.Raw())

	genres, err := c.Catalog.Genres(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []models.Genre{}, genres)
	assert.Empty(t, api.apiCalls())
}

func TestRequest_NonJSONAndEmptyBodies(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("GET /api/text", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Signed out"))
	})
	api.handle("GET /api/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := openTestClient(t, api, Config{AppName: "TestApp"})

	res, err := c.Request(context.Background(), Request{URL: c.Endpoints().Base() + "/text"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.False(t, res.JSON)
	assert.Nil(t, res.Raw())
	assert.Equal(t, "Signed out", res.Text())

	res, err = c.Request(context.Background(), Request{URL: c.Endpoints().Base() + "/empty"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.False(t, res.JSON)
	assert.Empty(t, res.Body)
}

func TestRequest_SendsJSONBody(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"})
	var got map[string]map[string]any
	api.handle("POST /api/v2/user_rates", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":7,"score":9,"status":"watching"}`))
	})
	c := openTestClient(t, api, testConfig())

	rate, err := c.UserRates.Create(context.Background(), UserRateInput{
		UserID:     1,
		TargetID:   5114,
		TargetType: "Anime",
		Status:     "watching",
		Score:      42,
	})
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 7, rate.ID)

	body := got["user_rate"]
	require.NotNil(t, body)
	assert.EqualValues(t, MaxRateScore, body["score"], "score is clamped")
	assert.EqualValues(t, 5114, body["target_id"])
	assert.NotContains(t, body, "episodes", "zero fields are omitted")
}

func TestRequest_TopRatingIsSentUnchanged(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"})
	var got map[string]map[string]any
	api.handle("POST /api/v2/user_rates", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":8,"score":10,"status":"completed"}`))
	})
	c := openTestClient(t, api, testConfig())

	rate, err := c.UserRates.Create(context.Background(), UserRateInput{TargetID: 5, TargetType: "Anime", Score: 10})
	require.NoError(t, err)
	require.NotNil(t, rate)
	require.NotNil(t, got["user_rate"])
	assert.EqualValues(t, 10, got["user_rate"]["score"])
}

func TestRequest_MultipartUpload(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"})
	api.handle("POST /api/user_images", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Comment", r.FormValue("linked_type"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cat.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("PNGDATA"), data)

		w.Write([]byte(`{"id":3,"preview":"/p.png","url":"/u.png","bbcode":"[image=3]"}`))
	})
	c := openTestClient(t, api, testConfig())

	img, err := c.UserImages.Create(context.Background(), File{
		Name:        "cat.png",
		ContentType: "image/png",
		Data:        []byte("PNGDATA"),
	}, "Comment")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "[image=3]", img.BBCode)
}

func TestRequest_TooManyRequests(t *testing.T) {
	newAPI := func() (*fakeAPI, *atomic.Int32) {
		api := newFakeAPI(t)
		hits := new(atomic.Int32)
		api.handle("GET /api/genres", func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`[{"id":1,"name":"Action"}]`))
		})
		return api, hits
	}

	t.Run("off by default", func(t *testing.T) {
		api, hits := newAPI()
		c := openTestClient(t, api, Config{AppName: "TestApp"}, WithStrictErrors())
		_, err := c.Catalog.Genres(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.EqualValues(t, 1, hits.Load())
	})

	t.Run("retried with backoff", func(t *testing.T) {
		api, hits := newAPI()
		c := openTestClient(t, api, Config{AppName: "TestApp"},
			WithStrictErrors(), WithTooManyRequestsRetry(10*time.Millisecond, 5*time.Second))
		genres, err := c.Catalog.Genres(context.Background())
		require.NoError(t, err)
		assert.Len(t, genres, 1)
		assert.EqualValues(t, 3, hits.Load())
	})
}

func TestRequest_RateLimitedAcrossConcurrentCalls(t *testing.T) {
	if testing.Short() {
		t.Skip("paces requests for about two seconds")
	}
	api := newFakeAPI(t)
	api.reply("GET /api/genres", `[]`)
	c := openTestClient(t, api, Config{AppName: "TestApp"}, WithRateLimit(5, 90))

	calls := make([]Call[[]models.Genre], 10)
	for i := range calls {
		calls[i] = c.Catalog.Genres
	}
	for _, o := range Gather(context.Background(), calls...) {
		assert.NoError(t, o.Err)
	}

	seen := api.apiCalls()
	require.Len(t, seen, 10)
	for i := 0; i+5 < len(seen); i++ {
		gap := seen[i+5].At.Sub(seen[i].At)
		assert.GreaterOrEqual(t, gap, 900*time.Millisecond, "six requests inside one second at index %d", i)
	}
}

func TestFlattenForm(t *testing.T) {
	got := flattenForm("", map[string]any{
		"comment": map[string]any{
			"body":        "hi",
			"is_offtopic": false,
			"ids":         []any{float64(1), float64(2)},
		},
		"broadcast": true,
		"skip":      nil,
	})
	assert.Equal(t, [][2]string{
		{"broadcast", "1"},
		{"comment[body]", "hi"},
		{"comment[ids][]", "1"},
		{"comment[ids][]", "2"},
		{"comment[is_offtopic]", "0"},
	}, got)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		header string
		want   string
	}{
		{"json body", `{"error":"invalid_grant"}`, "", "invalid_grant"},
		{"challenge", "", `Bearer realm="Doorkeeper", error="invalid_token", error_description="expired"`, "invalid_token"},
		{"body wins", `{"error":"forbidden"}`, `Bearer error="invalid_token"`, "forbidden"},
		{"plain text", "Not found", "", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode([]byte(tt.body), tt.header))
		})
	}
}
