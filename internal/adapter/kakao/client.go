// Package kakao implements address geocoding against the Kakao local API.
package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

// Client implements domain.Geocoder using the Kakao local address-search API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Kakao geocoding client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://dapi.kakao.com/v2/local/search/address.json",
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves an address to WGS-84 coordinates. Returns
// domain.ErrAddressNotFound when the API has no match.
func (c *Client) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	params := url.Values{"query": {address}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("kakao API error: status %d: %s", resp.StatusCode, body)
	}

	var kakaoResp response
	if err := json.NewDecoder(resp.Body).Decode(&kakaoResp); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(kakaoResp.Documents) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return domain.GeocodeResult{}, domain.ErrAddressNotFound
	}

	result, err := kakaoResp.Documents[0].toResult()
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, err
	}
	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return result, nil
}

// Kakao API response types. Coordinates arrive as strings: x is longitude,
// y is latitude.

type response struct {
	Documents []document `json:"documents"`
}

type document struct {
	AddressName string   `json:"address_name"`
	X           string   `json:"x"`
	Y           string   `json:"y"`
	Address     *address `json:"address"`
	RoadAddress *address `json:"road_address"`
}

type address struct {
	AddressName  string `json:"address_name"`
	Region1Depth string `json:"region_1depth_name"`
	Region2Depth string `json:"region_2depth_name"`
	X            string `json:"x"`
	Y            string `json:"y"`
}

// toResult extracts coordinates, preferring the lot-number address block and
// falling back to the document-level fields (road-address-only matches).
func (d document) toResult() (domain.GeocodeResult, error) {
	x, y := d.X, d.Y
	if d.Address != nil && d.Address.X != "" && d.Address.Y != "" {
		x, y = d.Address.X, d.Address.Y
	}

	lon, errX := strconv.ParseFloat(x, 64)
	lat, errY := strconv.ParseFloat(y, 64)
	if errX != nil || errY != nil {
		return domain.GeocodeResult{}, fmt.Errorf("malformed coordinates in response: x=%q y=%q", x, y)
	}

	result := domain.GeocodeResult{
		Lat:         lat,
		Lon:         lon,
		AddressName: d.AddressName,
	}
	if d.Address != nil {
		result.RegionDepth1 = d.Address.Region1Depth
		result.RegionDepth2 = d.Address.Region2Depth
	}
	if d.RoadAddress != nil {
		result.RoadAddress = d.RoadAddress.AddressName
	}
	return result, nil
}
