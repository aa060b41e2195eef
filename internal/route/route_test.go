package route

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/testable"
)

var (
	from = orb.Point{-118.25, 34.05}
	to   = orb.Point{-118.30, 34.10}
)

func TestStraightLine(t *testing.T) {
	path, err := StraightLine{}.Route(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{from, to}, path)
}

func TestOSRM_Route(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"code":"Ok","routes":[{"distance":812.4,"geometry":{"type":"LineString","coordinates":[[-118.25,34.05],[-118.27,34.07],[-118.3,34.1]]}}]}`)
	}))
	defer srv.Close()

	o := NewOSRM(srv.URL+"/", 2*time.Second)
	path, err := o.Route(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, "/route/v1/driving/-118.250000,34.050000;-118.300000,34.100000", gotPath)
	assert.Equal(t, "overview=full&geometries=geojson", gotQuery)
	require.Len(t, path, 3)
	assert.InDelta(t, -118.27, path[1].Lon(), 1e-9)
}

func TestOSRM_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusBadGateway, ``, "unexpected status 502"},
		{"code", http.StatusOK, `{"code":"NoRoute","message":"Impossible route"}`, "NoRoute"},
		{"no routes", http.StatusOK, `{"code":"Ok","routes":[]}`, "no geometry"},
		{"bad json", http.StatusOK, `{"code":`, "osrm decode"},
		{"point geometry", http.StatusOK, `{"code":"Ok","routes":[{"geometry":{"type":"Point","coordinates":[1,2]}}]}`, "expected LineString"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &OSRM{BaseURL: "http://osrm.test", Client: testable.HTTPDoerFunc(func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: tt.status, Body: io.NopCloser(bytes.NewBufferString(tt.body))}, nil
			})}
			_, err := o.Route(context.Background(), from, to)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

type failingRouter struct{ err error }

func (f failingRouter) Name() string { return "failing" }

func (f failingRouter) Route(context.Context, orb.Point, orb.Point) (orb.LineString, error) {
	return nil, f.err
}

func TestFallback(t *testing.T) {
	ctx := context.Background()

	res := Fallback{}.Resolve(ctx, from, to)
	assert.Equal(t, "straight line", res.Provider)
	assert.NoError(t, res.Err)

	boom := errors.New("connection refused")
	res = Fallback{Primary: failingRouter{err: boom}}.Resolve(ctx, from, to)
	assert.Equal(t, "straight line", res.Provider)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, orb.LineString{from, to}, res.Path)

	res = Fallback{Primary: failingRouter{}}.Resolve(ctx, from, to)
	assert.ErrorIs(t, res.Err, errEmptyRoute)

	res = Fallback{Primary: StraightLine{}}.Resolve(ctx, from, to)
	assert.NoError(t, res.Err)
}
