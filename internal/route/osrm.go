package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/collisionmap/collisionmap/internal/testable"
)

var errEmptyRoute = errors.New("route has no geometry")

// maxResponseBytes caps the size of a routing response.
const maxResponseBytes = 8 << 20

// OSRM queries an OSRM HTTP service for a driving route.
type OSRM struct {
	BaseURL string
	Client  testable.HTTPDoer
}

// NewOSRM returns an OSRM router with an HTTP client using timeout.
func NewOSRM(baseURL string, timeout time.Duration) *OSRM {
	return &OSRM{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  testable.DefaultHTTPClient(timeout),
	}
}

// Name returns "osrm".
func (o *OSRM) Name() string { return "osrm" }

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry json.RawMessage `json:"geometry"`
		Distance float64         `json:"distance"`
	} `json:"routes"`
}

// Route requests /route/v1/driving/{lon,lat;lon,lat} with GeoJSON geometry.
func (o *OSRM) Route(ctx context.Context, from, to orb.Point) (orb.LineString, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%s;%s?overview=full&geometries=geojson",
		o.BaseURL, coord(from), coord(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm: unexpected status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("osrm decode: %w", err)
	}
	if body.Code != "Ok" {
		return nil, fmt.Errorf("osrm: %s %s", body.Code, body.Message)
	}
	if len(body.Routes) == 0 {
		return nil, errEmptyRoute
	}

	g, err := geojson.UnmarshalGeometry(body.Routes[0].Geometry)
	if err != nil {
		return nil, fmt.Errorf("osrm geometry: %w", err)
	}
	ls, ok := g.Coordinates.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("osrm geometry: expected LineString, got %s", g.Type)
	}
	return ls, nil
}

func coord(p orb.Point) string {
	return strconv.FormatFloat(p.Lon(), 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat(), 'f', 6, 64)
}
