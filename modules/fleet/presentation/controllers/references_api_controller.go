package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type ReferenceResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
}

func toReferenceResponse(v reference.Value) ReferenceResponse {
	return ReferenceResponse{
		ID:        v.ID().String(),
		Kind:      string(v.Kind()),
		Name:      v.Name(),
		IsDefault: v.IsDefault(),
		IsActive:  v.IsActive(),
	}
}

type ReferencesAPIController struct {
	app      application.Application
	service  *services.ReferenceService
	basePath string
}

func NewReferencesAPIController(app application.Application) application.Controller {
	return &ReferencesAPIController{
		app:      app,
		service:  app.Service(services.ReferenceService{}).(*services.ReferenceService),
		basePath: "/fleet/references",
	}
}

func (c *ReferencesAPIController) Key() string {
	return c.basePath
}

func (c *ReferencesAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())
	router.Use(middleware.WithTransaction())

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{kind:[a-z_]+}", c.ListByKind).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9a-fA-F]{8}-[0-9a-fA-F-]+}", c.Update).Methods(http.MethodPut)
}

func (c *ReferencesAPIController) ListByKind(w http.ResponseWriter, r *http.Request) {
	kind, ok := reference.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("unknown reference kind"))
		return
	}

	values, err := c.service.GetAllByKind(r.Context(), kind)
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]ReferenceResponse, 0, len(values))
	for _, v := range values {
		items = append(items, toReferenceResponse(v))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *ReferencesAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &reference.CreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		shared.WriteValidationErrors(w, fields)
		return
	}

	created, err := c.service.Create(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, reference.ErrNameTaken):
			shared.WriteAPIError(w, http.StatusConflict, err)
		case errors.Is(err, composables.ErrNoUser):
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toReferenceResponse(created))
}

func (c *ReferencesAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, reference.ErrNotFound)
		return
	}

	dto := &reference.UpdateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		shared.WriteValidationErrors(w, fields)
		return
	}

	updated, err := c.service.Update(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, reference.ErrNotFound):
			shared.WriteAPIError(w, http.StatusNotFound, err)
		case errors.Is(err, reference.ErrNameTaken):
			shared.WriteAPIError(w, http.StatusConflict, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusOK, toReferenceResponse(updated))
}
