package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanriverlabs/riskzone-map/internal/dataset"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

type stubGeocoder struct {
	result domain.GeocodeResult
	err    error
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (domain.GeocodeResult, error) {
	return s.result, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadedStore(t *testing.T) *dataset.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.csv")
	csv := "DST_RSK_DSTRCT_NM,DST_RSK_DSTRCTCD,DST_RSK_DSTRCT_TYPE_CD,DST_RSK_DSTRCT_GRD_CD,DST_RSK_DSTRCT_RGN_CD,FCLT_NM,DSGN_YMD,DSGN_RSN,RSK_FACTR_CN,DSGN_AREA,x,y\n" +
		"학산지구,D-001,2,나,46170,펌프장,20190321,상습침수,하천 범람,2500,126.8412,35.0721\n" +
		"금천지구,D-002,1,가,46170,,20200107,급경사지,낙석,900,126.9001,35.0102\n" +
		"결측지구,D-003,3,나,46170,,,,,1200,,35.0\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	store := dataset.NewStore(path, nil, testLogger(), observability.NewMetricsForTesting())
	require.NoError(t, store.Load())
	return store
}

func newTestServer(t *testing.T, geocoder domain.Geocoder) *Server {
	t.Helper()
	return NewServer(":0", Deps{
		Store:          loadedStore(t),
		Geocoder:       geocoder,
		Metrics:        observability.NewMetricsForTesting(),
		Logger:         testLogger(),
		DefaultAddress: "전남 나주시 노안면 학산길 70-17",
	})
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Zones(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(t, srv, "/api/zones")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var fc domain.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2, "skipped row must not be served")
	assert.Equal(t, "학산지구", fc.Features[0].Properties["district_name"])
	assert.Equal(t, "purple", fc.Features[0].Properties["color"])
}

func TestServer_Parcels(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(t, srv, "/api/parcels")

	require.Equal(t, http.StatusOK, rec.Code)
	var fc domain.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Empty(t, fc.Features, "no parcel manifest configured")
}

func TestServer_Summary(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(t, srv, "/api/summary")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ZoneCount   int    `json:"zone_count"`
		SkippedRows int    `json:"skipped_rows"`
		LoadedAt    string `json:"loaded_at"`
		GradeByType []struct {
			TypeCode  int    `json:"type_code"`
			GradeCode string `json:"grade_code"`
			Count     int    `json:"count"`
		} `json:"grade_by_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ZoneCount)
	assert.Equal(t, 1, resp.SkippedRows)
	assert.NotEmpty(t, resp.LoadedAt)
	require.Len(t, resp.GradeByType, 2)
	assert.Equal(t, 1, resp.GradeByType[0].TypeCode)
}

func TestServer_Geocode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(t, &stubGeocoder{
			result: domain.GeocodeResult{Lat: 35.0721, Lon: 126.8412, AddressName: "전라남도 나주시"},
		})
		rec := get(t, srv, "/api/geocode?address=%EB%82%98%EC%A3%BC")

		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.GeocodeResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 35.0721, result.Lat)
	})

	t.Run("missing address", func(t *testing.T) {
		srv := newTestServer(t, &stubGeocoder{})
		rec := get(t, srv, "/api/geocode")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		srv := newTestServer(t, &stubGeocoder{err: domain.ErrAddressNotFound})
		rec := get(t, srv, "/api/geocode?address=x")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	})

	t.Run("provider failure", func(t *testing.T) {
		srv := newTestServer(t, &stubGeocoder{err: assert.AnError})
		rec := get(t, srv, "/api/geocode?address=x")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("geocoding disabled", func(t *testing.T) {
		srv := newTestServer(t, nil)
		rec := get(t, srv, "/api/geocode?address=x")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_IndexPage(t *testing.T) {
	srv := newTestServer(t, &stubGeocoder{})
	rec := get(t, srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "재해위험지구")
	assert.Contains(t, body, "전남 나주시 노안면 학산길 70-17")
	assert.Contains(t, body, "/api/zones")
}

func TestServer_HealthAndReadiness(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/metrics").Code)
}

func TestServer_NotReadyBeforeLoad(t *testing.T) {
	store := dataset.NewStore(filepath.Join(t.TempDir(), "missing.csv"), nil,
		testLogger(), observability.NewMetricsForTesting())
	srv := NewServer(":0", Deps{
		Store:   store,
		Metrics: observability.NewMetricsForTesting(),
		Logger:  testLogger(),
	})

	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/readyz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/api/zones").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/api/summary").Code)
}
