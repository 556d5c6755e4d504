package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/hanriverlabs/riskzone-map/internal/domain"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Fallback center over the Korean peninsula for an empty dataset.
var defaultCenter = domain.Geo{Lat: 36.5, Lon: 127.8}

// pageData parameterizes the map page.
type pageData struct {
	DefaultAddress string
	GeocodeEnabled bool
	CenterLat      float64
	CenterLon      float64
	Zoom           int
}

func (h *handlers) handleIndex(w http.ResponseWriter, _ *http.Request) {
	center := defaultCenter
	zoom := 8
	if snap := h.store.Snapshot(); snap != nil {
		if c, ok := snap.Center(); ok {
			center = c
		}
	}

	data := pageData{
		DefaultAddress: h.defaultAddress,
		GeocodeEnabled: h.geocoder != nil,
		CenterLat:      center.Lat,
		CenterLon:      center.Lon,
		Zoom:           zoom,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		h.logger.Error("render page failed", "error", err)
	}
}
