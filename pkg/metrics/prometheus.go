package metrics

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetgrid/fleet-sdk/pkg/application"
)

var (
	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_import_runs_total",
		Help: "Vehicle import runs by terminal outcome.",
	}, []string{"outcome"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_import_rows_total",
		Help: "Vehicle import rows by per-row status.",
	}, []string{"status"})

	StickerIssuances = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_sticker_issuances_total",
		Help: "Stickers issued.",
	})
)

type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) application.Controller {
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, promhttp.Handler())
}
