package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/insurer"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type InsurerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func toInsurerResponse(i insurer.Insurer) InsurerResponse {
	return InsurerResponse{
		ID:       i.ID().String(),
		Name:     i.Name(),
		IsActive: i.IsActive(),
	}
}

type InsurersAPIController struct {
	app      application.Application
	service  *services.InsurerService
	basePath string
}

func NewInsurersAPIController(app application.Application) application.Controller {
	return &InsurersAPIController{
		app:      app,
		service:  app.Service(services.InsurerService{}).(*services.InsurerService),
		basePath: "/insurance/insurers",
	}
}

func (c *InsurersAPIController) Key() string {
	return c.basePath
}

func (c *InsurersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())
	router.Use(middleware.WithTransaction())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
}

func (c *InsurersAPIController) List(w http.ResponseWriter, r *http.Request) {
	insurers, err := c.service.GetAll(r.Context())
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]InsurerResponse, 0, len(insurers))
	for _, i := range insurers {
		items = append(items, toInsurerResponse(i))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *InsurersAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &insurer.CreateDTO{}
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
		if errors.Is(err, composables.ErrNoUser) {
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toInsurerResponse(created))
}
