package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

func toClientResponse(c client.Client) ClientResponse {
	return ClientResponse{
		ID:       c.ID().String(),
		Name:     c.Name(),
		Email:    c.Email(),
		Phone:    c.Phone(),
		IsActive: c.IsActive(),
	}
}

type ClientsAPIController struct {
	app      application.Application
	service  *services.ClientService
	basePath string
}

func NewClientsAPIController(app application.Application) application.Controller {
	return &ClientsAPIController{
		app:      app,
		service:  app.Service(services.ClientService{}).(*services.ClientService),
		basePath: "/fleet/clients",
	}
}

func (c *ClientsAPIController) Key() string {
	return c.basePath
}

func (c *ClientsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())
	router.Use(middleware.WithTransaction())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9a-fA-F]{8}-[0-9a-fA-F-]+}", c.GetByID).Methods(http.MethodGet)
}

type clientListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (c *ClientsAPIController) List(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&clientListQuery{Limit: 20}, r)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("invalid query parameters"))
		return
	}

	clients, total, err := c.service.GetPaginated(r.Context(), &client.FindParams{
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		items = append(items, toClientResponse(cl))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *ClientsAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, client.ErrNotFound)
		return
	}
	cl, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			shared.WriteAPIError(w, http.StatusNotFound, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toClientResponse(cl))
}

func (c *ClientsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &client.CreateDTO{}
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
	shared.WriteJSON(w, http.StatusCreated, toClientResponse(created))
}
