package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palette-studio/internal/colorspace"
	"palette-studio/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testState struct {
	Base struct {
		colorspace.Color
		Formats colorspace.Formats `json:"formats"`
	} `json:"base"`
	Palette []struct {
		colorspace.Color
		Formats colorspace.Formats `json:"formats"`
	} `json:"palette"`
	Selection struct {
		PaletteIndex *int `json:"palette_index"`
		Shade        *struct {
			Row   int `json:"row"`
			Index int `json:"index"`
		} `json:"shade"`
	} `json:"selection"`
	Shades        [][]colorspace.Color `json:"shades"`
	SelectedColor *colorspace.Formats  `json:"selected_color"`
	SelectedShade *colorspace.Formats  `json:"selected_shade"`
	Accepted      *bool                `json:"accepted"`
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.DefaultBase = "#ff0000"
	cfg.Env = &config.EnvConfig{Env: config.Development, AllowedOrigin: "*", SessionSecret: "test-secret"}
	return cfg
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, ts *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body interface{}) (int, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, raw
}

func (c *client) state(method, path string, body interface{}) testState {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	require.Equal(c.t, http.StatusOK, status, string(raw))
	var st testState
	require.NoError(c.t, json.Unmarshal(raw, &st))
	return st
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func hueList(st testState) []int {
	out := make([]int, len(st.Palette))
	for i, c := range st.Palette {
		out[i] = c.H
	}
	return out
}

func TestStudioFlow(t *testing.T) {
	_, ts := newTestServer(t, testConfig())
	c := newClient(t, ts)

	st := c.state("GET", "/api/state", nil)
	assert.Equal(t, colorspace.Color{H: 0, S: 100, L: 50}, st.Base.Color)
	assert.Equal(t, "#ff0000", st.Base.Formats.Hex)
	require.Len(t, st.Palette, 8)
	assert.Nil(t, st.Selection.PaletteIndex)
	assert.Nil(t, st.Shades)

	st = c.state("PUT", "/api/base", map[string]int{"h": 45, "s": 70, "l": 60})
	assert.Equal(t, []int{45, 75, 165, 195, 225, 255, 285, 315}, hueList(st))
	require.NotNil(t, st.Accepted)
	assert.True(t, *st.Accepted)

	st = c.state("POST", "/api/palette/3", nil)
	require.NotNil(t, st.Selection.PaletteIndex)
	assert.Equal(t, 3, *st.Selection.PaletteIndex)
	require.Len(t, st.Shades, 3)
	assert.Equal(t, colorspace.Color{H: 195, S: 90, L: 80}, st.Shades[1][0])
	require.NotNil(t, st.SelectedColor)
	assert.Equal(t, "hsl(195, 70%, 60%)", st.SelectedColor.HSL)

	st = c.state("POST", "/api/shades/1/2", nil)
	require.NotNil(t, st.Selection.Shade)
	assert.Equal(t, 1, st.Selection.Shade.Row)
	assert.Equal(t, 2, st.Selection.Shade.Index)
	require.NotNil(t, st.SelectedShade)
	assert.Equal(t, "hsl(195, 90%, 60%)", st.SelectedShade.HSL)

	status, raw := c.do("GET", "/api/copy?target=shade&format=hsl", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"text":"hsl(195, 90%, 60%)","target":"shade","format":"hsl"}`, string(raw))

	st = c.state("PUT", "/api/base", map[string]int{"h": 100, "s": 70, "l": 60})
	assert.Nil(t, st.Selection.Shade)
	assert.Nil(t, st.SelectedShade)
	require.NotNil(t, st.Selection.PaletteIndex)
	assert.Equal(t, 3, *st.Selection.PaletteIndex)
	assert.Len(t, st.Palette, 8)
	assert.Equal(t, "hsl(250, 70%, 60%)", st.SelectedColor.HSL)

	status, _ = c.do("GET", "/api/copy?target=shade&format=hex", nil)
	assert.Equal(t, http.StatusNotFound, status)

	st = c.state("DELETE", "/api/selection", nil)
	assert.Nil(t, st.Selection.PaletteIndex)
	assert.Nil(t, st.Shades)
}

func TestPutBaseHex(t *testing.T) {
	_, ts := newTestServer(t, testConfig())
	c := newClient(t, ts)

	before := testutil.ToFloat64(MetricHexRejected)
	for _, bad := range []string{"GGGGGG", "#12345", "1234567"} {
		st := c.state("PUT", "/api/base", map[string]string{"hex": bad})
		require.NotNil(t, st.Accepted)
		assert.False(t, *st.Accepted)
		assert.Equal(t, colorspace.Color{H: 0, S: 100, L: 50}, st.Base.Color)
	}
	assert.Equal(t, before+3, testutil.ToFloat64(MetricHexRejected))

	withHash := c.state("PUT", "/api/base", map[string]string{"hex": "#aabbcc"})
	without := c.state("PUT", "/api/base", map[string]string{"hex": "aabbcc"})
	assert.Equal(t, colorspace.Color{H: 210, S: 25, L: 73}, withHash.Base.Color)
	assert.Equal(t, withHash.Base.Color, without.Base.Color)

	status, _ := c.do("PUT", "/api/base", map[string]int{"h": 10})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSelectionErrors(t *testing.T) {
	_, ts := newTestServer(t, testConfig())
	c := newClient(t, ts)

	status, _ := c.do("POST", "/api/shades/0/0", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = c.do("POST", "/api/palette/8", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do("POST", "/api/palette/x", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do("GET", "/api/copy?target=color&format=hex", nil)
	assert.Equal(t, http.StatusNotFound, status)

	c.state("POST", "/api/palette/0", nil)
	status, _ = c.do("POST", "/api/shades/3/0", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do("GET", "/api/copy?target=color&format=cmyk", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do("GET", "/api/copy?target=base&format=hex", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := c.do("GET", "/api/copy?target=color&format=rgb", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "rgb(255, 0, 0)")
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, ts := newTestServer(t, testConfig())
	a := newClient(t, ts)
	b := newClient(t, ts)

	a.state("PUT", "/api/base", map[string]int{"h": 200, "s": 50, "l": 50})
	a.state("POST", "/api/palette/2", nil)

	st := b.state("GET", "/api/state", nil)
	assert.Equal(t, 0, st.Base.H)
	assert.Nil(t, st.Selection.PaletteIndex)

	st = a.state("GET", "/api/state", nil)
	assert.Equal(t, 200, st.Base.H)
	assert.Equal(t, 2, srv.Store().Len())
}

func TestSessionCookieRefreshed(t *testing.T) {
	srv, ts := newTestServer(t, testConfig())

	get := func(cookies []*http.Cookie) *http.Response {
		req, err := http.NewRequest("GET", ts.URL+"/api/state", nil)
		require.NoError(t, err)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return resp
	}

	first := get(nil).Cookies()
	require.Len(t, first, 1)
	assert.Equal(t, sessionName, first[0].Name)
	assert.Equal(t, 3600, first[0].MaxAge)

	second := get(first).Cookies()
	require.Len(t, second, 1, "an active session re-issues its cookie")
	assert.Equal(t, sessionName, second[0].Name)
	assert.Equal(t, 3600, second[0].MaxAge)

	get(second)
	assert.Equal(t, 1, srv.Store().Len(), "refreshed cookie keeps the same studio")
}

func TestSessionCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSessions = 1
	_, ts := newTestServer(t, cfg)

	newClient(t, ts).state("GET", "/api/state", nil)
	status, _ := newClient(t, ts).do("GET", "/api/state", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestSessionRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.SessionsPerMin = 6
	_, ts := newTestServer(t, cfg)

	for i := 0; i < 5; i++ {
		newClient(t, ts).state("GET", "/api/state", nil)
	}
	status, _ := newClient(t, ts).do("GET", "/api/state", nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestPublicEndpoints(t *testing.T) {
	_, ts := newTestServer(t, testConfig())
	c := newClient(t, ts)

	status, raw := c.do("GET", "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Palette Studio")

	status, raw = c.do("GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	c.state("GET", "/api/state", nil)
	c.state("POST", "/api/palette/1", nil)
	status, raw = c.do("GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.EqualValues(t, 1, stats.PalettesGenerated)
	assert.EqualValues(t, 1, stats.ShadeSets)

	status, _ = c.do("OPTIONS", "/api/base", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Listen = "127.0.0.1:0"
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 10*time.Millisecond)
	resp, err := http.Get("http://" + srv.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
