package relations_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opyruso/nw-leaderboard-sub000/core"
	"github.com/opyruso/nw-leaderboard-sub000/relations"
)

const p1Body = `{
  "origin": {"playerId": 1001, "playerName": "Ada", "runCount": 0, "origin": true},
  "alternates": [{"playerId": "1002", "playerName": "Ada Alt", "alternate": true}],
  "relatedPlayers": [
    {"playerId": 2001, "playerName": "Bob", "runCount": 5},
    {"playerId": null, "playerName": "ghost"},
    "not-an-object"
  ],
  "edges": [
    {"sourcePlayerId": 1001, "targetPlayerId": "1002", "alternateLink": true},
    {"sourcePlayerId": "2001", "targetPlayerId": 1001, "runCount": "5"}
  ]
}`

func newBackend(t *testing.T, handler http.HandlerFunc) *relations.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := relations.New(srv.URL + "/api/")
	require.NoError(t, err)

	return c
}

func TestClient_Relationships(t *testing.T) {
	var gotPath, gotAccept string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(p1Body))
	})

	p, err := c.Relationships(context.Background(), " 1001 ")
	require.NoError(t, err)

	assert.Equal(t, "/api/player/1001/relationships", gotPath)
	assert.Equal(t, "application/json", gotAccept)

	require.NotNil(t, p.Origin)
	assert.Equal(t, core.PlayerEntry{PlayerID: "1001", PlayerName: "Ada", Origin: true}, *p.Origin)
	require.Len(t, p.Alternates, 1)
	assert.Equal(t, "1002", p.Alternates[0].PlayerID)
	require.Len(t, p.RelatedPlayers, 2, "non-object entry dropped, id-less entry kept for merge to skip")
	assert.Equal(t, int64(5), p.RelatedPlayers[0].RunCount)
	assert.Equal(t, "", p.RelatedPlayers[1].PlayerID)
	require.Len(t, p.Edges, 2)
	assert.Nil(t, p.Edges[0].RunCount)
	assert.True(t, p.Edges[0].AlternateLink)
	require.NotNil(t, p.Edges[1].RunCount)
	assert.Equal(t, int64(5), *p.Edges[1].RunCount)

	s := core.Merge(core.NewStore(core.WithOrigin("1001")), "1001", p)
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, 2, s.EdgeCount())
}

func TestClient_StatusErrors(t *testing.T) {
	cases := []struct {
		name     string
		code     int
		notFound bool
	}{
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, false},
		{"unavailable", http.StatusServiceUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
			})

			_, err := c.Relationships(context.Background(), "42")
			require.ErrorIs(t, err, relations.ErrUnexpectedStatus)
			assert.Equal(t, tc.notFound, errors.Is(err, relations.ErrPlayerNotFound))

			var se *relations.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.code, se.Code)
			assert.Equal(t, "42", se.PlayerID)
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})

	_, err := c.Relationships(context.Background(), "42")
	require.ErrorIs(t, err, relations.ErrMalformedResponse)
}

func TestClient_EscapesPlayerID(t *testing.T) {
	var gotRaw string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Relationships(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/api/player/a%2Fb%20c/relationships", gotRaw)
}

func TestClient_EmptyPlayerID(t *testing.T) {
	c := newBackend(t, func(http.ResponseWriter, *http.Request) {
		t.Error("backend must not be called")
	})

	_, err := c.Relationships(context.Background(), "  ")
	require.ErrorIs(t, err, relations.ErrEmptyPlayerID)
}

func TestClient_CallerContextCancelled(t *testing.T) {
	release := make(chan struct{})
	c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{}`))
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Relationships(ctx, "42")
	require.ErrorIs(t, err, context.Canceled)
}

// gatedBackend serves p1Body once release is closed and counts requests.
func gatedBackend(t *testing.T, opts ...relations.Option) (*relations.Client, *atomic.Int32, chan struct{}) {
	t.Helper()
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(p1Body))
	}))
	t.Cleanup(srv.Close)

	c, err := relations.New(srv.URL, opts...)
	require.NoError(t, err)

	return c, &hits, release
}

func TestClient_DeduplicatesConcurrentCalls(t *testing.T) {
	const callers = 8
	c, hits, release := gatedBackend(t)

	var wg sync.WaitGroup
	payloads := make([]*core.Payload, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payloads[i], errs[i] = c.Relationships(context.Background(), "7")
		}()
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, 2*time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond) // let every caller join the in-flight request
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		require.NotNil(t, payloads[i])
		assert.Equal(t, payloads[0], payloads[i])
	}
	assert.Equal(t, "1001", payloads[0].Origin.PlayerID)
}

func TestClient_SharedFetchOutlivesFirstCaller(t *testing.T) {
	c, hits, release := gatedBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.Relationships(ctx, "7")
		first <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, 2*time.Second, time.Millisecond)

	type result struct {
		p   *core.Payload
		err error
	}
	second := make(chan result, 1)
	go func() {
		p, err := c.Relationships(context.Background(), "7")
		second <- result{p, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-first, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	require.NotNil(t, got.p.Origin)
	assert.Equal(t, "1001", got.p.Origin.PlayerID)
	assert.Equal(t, int32(1), hits.Load(), "cancelling the first caller must not abort the shared request")
}

// countingTransport counts round trips before delegating.
type countingTransport struct {
	n atomic.Int32
}

func (ct *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ct.n.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestClient_HTTPClientOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	rt := &countingTransport{}
	shared := &http.Client{Transport: rt}

	c, err := relations.New(srv.URL,
		relations.WithTimeout(time.Second),
		relations.WithHTTPClient(shared),
		relations.WithHTTPClient(nil),
	)
	require.NoError(t, err)

	_, err = c.Relationships(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, int32(1), rt.n.Load(), "requests go through the supplied transport")
	assert.Zero(t, shared.Timeout, "the caller's client is not modified")
}

func TestClient_Timeout(t *testing.T) {
	c, _, release := gatedBackend(t, relations.WithTimeout(20*time.Millisecond))
	defer close(release)

	_, err := c.Relationships(context.Background(), "7")
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	_, err := relations.New("")
	require.ErrorIs(t, err, relations.ErrEmptyBaseURL)

	_, err = relations.New("localhost:8080")
	require.Error(t, err)

	_, err = relations.New("https://nw.example.com/api")
	require.NoError(t, err)
}

func TestDecodePayload_Tolerance(t *testing.T) {
	cases := []struct {
		name string
		body string
		check func(t *testing.T, p *core.Payload)
	}{
		{
			name: "empty object",
			body: `{}`,
			check: func(t *testing.T, p *core.Payload) {
				assert.Nil(t, p.Origin)
				assert.Empty(t, p.Edges)
			},
		},
		{
			name: "wrongly shaped list is ignored",
			body: `{"alternates": {"playerId": 1}, "relatedPlayers": [{"playerId": 7}]}`,
			check: func(t *testing.T, p *core.Payload) {
				assert.Empty(t, p.Alternates)
				require.Len(t, p.RelatedPlayers, 1)
				assert.Equal(t, "7", p.RelatedPlayers[0].PlayerID)
			},
		},
		{
			name: "float and string counts",
			body: `{"relatedPlayers": [{"playerId": 1, "runCount": 3.9}, {"playerId": 2, "runCount": "12"}, {"playerId": 3, "runCount": "lots"}]}`,
			check: func(t *testing.T, p *core.Payload) {
				require.Len(t, p.RelatedPlayers, 3)
				assert.Equal(t, int64(3), p.RelatedPlayers[0].RunCount)
				assert.Equal(t, int64(12), p.RelatedPlayers[1].RunCount)
				assert.Equal(t, int64(0), p.RelatedPlayers[2].RunCount)
			},
		},
		{
			name: "out of range counts are clamped",
			body: `{"relatedPlayers": [{"playerId": 1, "runCount": 1e300}, {"playerId": 2, "runCount": -1e300}, {"playerId": 3, "runCount": 1e400}]}`,
			check: func(t *testing.T, p *core.Payload) {
				require.Len(t, p.RelatedPlayers, 3)
				assert.Equal(t, int64(math.MaxInt64), p.RelatedPlayers[0].RunCount)
				assert.Equal(t, int64(math.MinInt64), p.RelatedPlayers[1].RunCount)
				assert.Equal(t, int64(0), p.RelatedPlayers[2].RunCount)
			},
		},
		{
			name: "numeric ids are normalized",
			body: `{"relatedPlayers": [{"playerId": 1e3}, {"playerId": 1000.0}, {"playerId": 1000}, {"playerId": 2.5}, {"playerId": 123456789012345678901234}]}`,
			check: func(t *testing.T, p *core.Payload) {
				ids := make([]string, 0, len(p.RelatedPlayers))
				for _, e := range p.RelatedPlayers {
					ids = append(ids, e.PlayerID)
				}
				assert.Equal(t, []string{"1000", "1000", "1000", "2.5", "123456789012345678901234"}, ids)
			},
		},
		{
			name: "string and numeric flags",
			body: `{"alternates": [{"playerId": 1, "alternate": "true"}], "edges": [{"sourcePlayerId": 1, "targetPlayerId": 2, "alternateLink": 1, "runCount": null}]}`,
			check: func(t *testing.T, p *core.Payload) {
				require.Len(t, p.Alternates, 1)
				assert.True(t, p.Alternates[0].Alternate)
				require.Len(t, p.Edges, 1)
				assert.True(t, p.Edges[0].AlternateLink)
				assert.Nil(t, p.Edges[0].RunCount)
			},
		},
		{
			name: "null origin",
			body: `{"origin": null}`,
			check: func(t *testing.T, p *core.Payload) {
				assert.Nil(t, p.Origin)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := relations.DecodePayload([]byte(tc.body))
			require.NoError(t, err)
			tc.check(t, p)
		})
	}

	_, err := relations.DecodePayload([]byte(`"nope"`))
	require.ErrorIs(t, err, relations.ErrMalformedResponse)
}
