package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/vehicleimport"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/configuration"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

type importRequest struct {
	Mode       string    `form:"import_mode"`
	ClientID   uuid.UUID `form:"client_id"`
	References string    `form:"references"`
}

type ImportResponse struct {
	Total   int                   `json:"total"`
	Success int                   `json:"success"`
	Failed  int                   `json:"failed"`
	Errors  []string              `json:"errors"`
	Summary vehicleimport.Summary `json:"summary"`
}

type VehicleImportController struct {
	app      application.Application
	service  *services.VehicleImportService
	basePath string
}

func NewVehicleImportController(app application.Application) application.Controller {
	return &VehicleImportController{
		app:      app,
		service:  app.Service(services.VehicleImportService{}).(*services.VehicleImportService),
		basePath: "/fleet/vehicles/import",
	}
}

func (c *VehicleImportController) Key() string {
	return c.basePath
}

// Register deliberately omits the per-request transaction middleware:
// import writes run concurrently, each on its own connection.
func (c *VehicleImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())

	router.HandleFunc("", c.Import).Methods(http.MethodPost)
	router.HandleFunc("/template", c.Template).Methods(http.MethodGet)
}

func (c *VehicleImportController) Import(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed multipart request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("file field is required"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("file could not be read"))
		return
	}

	// client_id is the only field the decoder can reject.
	form, err := composables.UseForm(&importRequest{}, r)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("client_id must be a uuid"))
		return
	}

	mode, ok := vehicleimport.ParseMode(form.Mode)
	if !ok {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("import_mode must be names or ids"))
		return
	}

	cmd := &services.ImportCommand{
		Data:     data,
		Filename: header.Filename,
		Mode:     mode,
		OwnerID:  form.ClientID,
	}

	if form.References != "" {
		if err := json.Unmarshal([]byte(form.References), &cmd.References); err != nil {
			shared.WriteAPIError(w, http.StatusBadRequest, errors.New("references must be a JSON object"))
			return
		}
	}

	summary, err := c.service.Import(r.Context(), cmd)
	if err != nil {
		c.writeImportError(w, err)
		return
	}

	errorMessages := summary.ErrorMessages()
	if errorMessages == nil {
		errorMessages = []string{}
	}
	shared.WriteJSON(w, http.StatusOK, ImportResponse{
		Total:   summary.Total,
		Success: summary.Succeeded,
		Failed:  summary.Failed,
		Errors:  errorMessages,
		Summary: summary,
	})
}

// Only whole-run failures reach here; anything row-scoped is already in
// the ledger and reported with a 200.
func (c *VehicleImportController) writeImportError(w http.ResponseWriter, err error) {
	var missing *vehicleimport.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		shared.WriteAPIError(w, http.StatusBadRequest,
			serrors.NewError("IMPORT_MISSING_COLUMNS", missing.Error()))
	case errors.Is(err, tabular.ErrDecode),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, client.ErrNotFound):
		shared.WriteAPIError(w, http.StatusBadRequest, err)
	case errors.Is(err, composables.ErrNoUser):
		shared.WriteAPIError(w, http.StatusUnauthorized, err)
	default:
		var base *serrors.Base
		if errors.As(err, &base) && base.Code == "IMPORT_BAD_REFERENCES" {
			shared.WriteAPIError(w, http.StatusBadRequest, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
	}
}

func (c *VehicleImportController) Template(w http.ResponseWriter, r *http.Request) {
	f, err := c.service.Template(r.Context())
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vehicle_import_template.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		logger := composables.UseLogger(r.Context())
		logger.WithError(err).Error("failed to stream import template")
	}
}
