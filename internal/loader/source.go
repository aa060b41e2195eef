package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/collisionmap/collisionmap/internal/collision"
)

// isURL reports whether src names a remote source.
func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// open returns a reader for a local path or an http(s) URL.
func (l *Loader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !isURL(src) {
		f, err := l.fs().Open(src)
		if err != nil {
			return nil, &collision.LoadError{Source: src, Stage: collision.StageRead, Err: err}
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &collision.LoadError{Source: src, Stage: collision.StageRead, Err: err}
	}
	resp, err := l.httpClient().Do(req)
	if err != nil {
		return nil, &collision.LoadError{Source: src, Stage: collision.StageRead, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck,gosec // discarding body
		return nil, &collision.LoadError{
			Source: src,
			Stage:  collision.StageRead,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return resp.Body, nil
}

// readAll reads a whole source into memory.
func (l *Loader) readAll(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		data, err := l.fs().ReadFile(src)
		if err != nil {
			return nil, &collision.LoadError{Source: src, Stage: collision.StageRead, Err: err}
		}
		return data, nil
	}
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &collision.LoadError{Source: src, Stage: collision.StageRead, Err: err}
	}
	return data, nil
}
