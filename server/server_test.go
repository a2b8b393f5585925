package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cwbudde/algo-guitar/guitar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, params *guitar.Params) *httptest.Server {
	synth := guitar.NewSynthesizer(guitar.NewCatalog(), guitar.NewSeededNoise(1), params)
	ts := httptest.NewServer(New(synth, zaptest.NewLogger(t)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func smallParams() *guitar.Params {
	p := guitar.NewDefaultParams()
	p.NumSamples = 500
	return p
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestIndexEmbedsTableAndSong(t *testing.T) {
	ts := newTestServer(t, smallParams())
	resp, body := get(t, ts.URL+"/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `var strings = [["a","C",[`)
	assert.Contains(t, body, `var song = [[`)
	assert.Contains(t, body, `/ 256.0`)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	start := strings.Index(body, "var song = ") + len("var song = ")
	end := strings.Index(body[start:], ";\n")
	require.Positive(t, end)
	var song [][]int
	require.NoError(t, json.Unmarshal([]byte(body[start:start+end]), &song))
	assert.Len(t, song, 7)
}

func TestStringsEndpoint(t *testing.T) {
	ts := newTestServer(t, smallParams())
	resp, body := get(t, ts.URL+"/strings")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var table []guitar.KeyString
	require.NoError(t, json.Unmarshal([]byte(body), &table))
	require.Len(t, table, 13)
	assert.Equal(t, "a", table[0].Key)
	assert.Equal(t, "high_C", table[12].Note)
	for _, ks := range table {
		assert.Len(t, ks.Samples, 500)
	}
}

func TestSongEndpoint(t *testing.T) {
	ts := newTestServer(t, smallParams())
	_, body := get(t, ts.URL+"/song")

	var song [][]int
	require.NoError(t, json.Unmarshal([]byte(body), &song))
	require.Len(t, song, 7)
	for _, item := range song {
		assert.Len(t, item, 500)
	}
	assert.NotContains(t, body, ".", "wire form must be integers only")
}

func TestUnknownPathIsEmpty(t *testing.T) {
	ts := newTestServer(t, smallParams())
	resp, body := get(t, ts.URL+"/favicon.ico")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := newTestServer(t, smallParams())
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/song", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, smallParams())
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/strings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSynthesisFailureIs500(t *testing.T) {
	p := smallParams()
	p.SampleRate = 100
	ts := newTestServer(t, p)

	for _, path := range []string{"/", "/strings", "/song"} {
		resp, body := get(t, ts.URL+path)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
		assert.Contains(t, body, "invalid delay length", path)
	}
}
