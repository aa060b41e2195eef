package loader

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collisionmap/collisionmap/internal/collision"
	"github.com/collisionmap/collisionmap/internal/testable"
)

func writeFixtures(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}
	return Sources{
		Collisions: write("collisions.csv", collisionsCSV),
		Regions:    write("regions.geojson", regionsJSON),
		Schools:    write("schools.csv", schoolsCSV),
	}
}

func TestLoader_LoadFiles(t *testing.T) {
	src := writeFixtures(t)

	ds, results, err := (&Loader{}).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
	assert.Len(t, ds.Regions, 2)
	assert.Len(t, ds.Schools, 3)

	require.Len(t, results, 3)
	assert.Equal(t, "collisions", results[0].Name)
	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, 1, results[0].Unlocated)
	assert.Equal(t, "regions", results[1].Name)
	assert.Equal(t, "schools", results[2].Name)
	assert.Equal(t, 1, results[2].Unlocated)
}

func TestLoader_SchoolsOptional(t *testing.T) {
	src := writeFixtures(t)
	src.Schools = ""

	ds, results, err := (&Loader{}).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, ds.Schools)
	assert.Len(t, results, 2)
}

func TestLoader_MissingFile(t *testing.T) {
	src := writeFixtures(t)
	src.Regions = filepath.Join(t.TempDir(), "missing.geojson")

	_, _, err := (&Loader{}).Load(context.Background(), src)
	var le *collision.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, collision.StageRead, le.Stage)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_MockFileSystem(t *testing.T) {
	files := map[string]string{
		"c.csv":     collisionsCSV,
		"r.geojson": regionsJSON,
	}
	mock := &testable.MockFileSystem{
		OpenFn: func(name string) (io.ReadCloser, error) {
			data, ok := files[name]
			if !ok {
				return nil, fs.ErrNotExist
			}
			return io.NopCloser(strings.NewReader(data)), nil
		},
		ReadFileFn: func(name string) ([]byte, error) {
			data, ok := files[name]
			if !ok {
				return nil, fs.ErrNotExist
			}
			return []byte(data), nil
		},
	}

	ds, _, err := (&Loader{FS: mock}).Load(context.Background(), Sources{Collisions: "c.csv", Regions: "r.geojson"})
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
}

func TestLoader_HTTPSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collisions.csv":
			_, _ = io.WriteString(w, collisionsCSV)
		case "/regions.geojson":
			_, _ = io.WriteString(w, regionsJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := &Loader{}
	ds, _, err := l.Load(context.Background(), Sources{
		Collisions: srv.URL + "/collisions.csv",
		Regions:    srv.URL + "/regions.geojson",
	})
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
	assert.Len(t, ds.Regions, 2)

	_, _, err = l.Load(context.Background(), Sources{
		Collisions: srv.URL + "/collisions.csv",
		Regions:    srv.URL + "/nope.geojson",
	})
	var le *collision.LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, err.Error(), "404")
}

func TestLoader_HTTPClientInjected(t *testing.T) {
	var requested []string
	client := testable.HTTPDoerFunc(func(req *http.Request) (*http.Response, error) {
		requested = append(requested, req.URL.String())
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(bytes.NewBufferString(regionsJSON)),
		}, nil
	})
	src := writeFixtures(t)
	src.Regions = "https://data.example.com/regions.geojson"

	ds, _, err := (&Loader{HTTP: client}).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, ds.Regions, 2)
	assert.Equal(t, []string{"https://data.example.com/regions.geojson"}, requested)
}

func TestLoader_SchemaFailureIsFatal(t *testing.T) {
	src := writeFixtures(t)
	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Foo,Bar\n1,2\n"), 0o600))
	src.Collisions = bad

	ds, results, err := (&Loader{}).Load(context.Background(), src)
	assert.Nil(t, ds)
	assert.Nil(t, results)
	var le *collision.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, collision.StageSchema, le.Stage)
}
