package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/core/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Role:      string(u.Role()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type UsersAPIController struct {
	app      application.Application
	service  *services.UserService
	basePath string
}

func NewUsersAPIController(app application.Application) application.Controller {
	return &UsersAPIController{
		app:      app,
		service:  app.Service(services.UserService{}).(*services.UserService),
		basePath: "/core/users",
	}
}

func (c *UsersAPIController) Key() string {
	return c.basePath
}

func (c *UsersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9a-fA-F-]+}", c.GetByID).Methods(http.MethodGet)
}

type userListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (c *UsersAPIController) List(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&userListQuery{Limit: 20}, r)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("invalid query parameters"))
		return
	}

	users, total, err := c.service.GetPaginated(r.Context(), &user.FindParams{
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *UsersAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, user.ErrNotFound)
		return
	}
	u, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			shared.WriteAPIError(w, http.StatusNotFound, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (c *UsersAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &user.CreateDTO{}
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
		if errors.Is(err, user.ErrEmailTaken) {
			shared.WriteAPIError(w, http.StatusConflict, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toUserResponse(created))
}
