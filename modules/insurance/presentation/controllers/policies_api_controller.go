package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type PolicyResponse struct {
	ID        string `json:"id"`
	PolicyNo  string `json:"policy_no"`
	VehicleID string `json:"vehicle_id"`
	InsurerID string `json:"insurer_id"`
	Premium   string `json:"premium"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func toPolicyResponse(p policy.Policy) PolicyResponse {
	return PolicyResponse{
		ID:        p.ID().String(),
		PolicyNo:  p.PolicyNo(),
		VehicleID: p.VehicleID().String(),
		InsurerID: p.InsurerID().String(),
		Premium:   p.Premium().StringFixed(2),
		StartDate: p.StartDate().Format("2006-01-02"),
		EndDate:   p.EndDate().Format("2006-01-02"),
		Status:    string(p.Status()),
	}
}

type PoliciesAPIController struct {
	app      application.Application
	service  *services.PolicyService
	basePath string
}

func NewPoliciesAPIController(app application.Application) application.Controller {
	return &PoliciesAPIController{
		app:      app,
		service:  app.Service(services.PolicyService{}).(*services.PolicyService),
		basePath: "/insurance/policies",
	}
}

func (c *PoliciesAPIController) Key() string {
	return c.basePath
}

func (c *PoliciesAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())
	router.Use(middleware.WithTransaction())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9a-fA-F]{8}-[0-9a-fA-F-]+}", c.GetByID).Methods(http.MethodGet)
}

type policyListQuery struct {
	Limit     int       `form:"limit"`
	Offset    int       `form:"offset"`
	VehicleID uuid.UUID `form:"vehicle_id"`
}

func (c *PoliciesAPIController) List(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&policyListQuery{Limit: 20}, r)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("invalid query parameters"))
		return
	}

	policies, total, err := c.service.GetPaginated(r.Context(), &policy.FindParams{
		Limit:     q.Limit,
		Offset:    q.Offset,
		VehicleID: q.VehicleID,
	})
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		items = append(items, toPolicyResponse(p))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *PoliciesAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, policy.ErrNotFound)
		return
	}
	p, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			shared.WriteAPIError(w, http.StatusNotFound, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toPolicyResponse(p))
}

func (c *PoliciesAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &policy.CreateDTO{}
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
		case errors.Is(err, policy.ErrPolicyNoTaken):
			shared.WriteAPIError(w, http.StatusConflict, err)
		case errors.Is(err, composables.ErrNoUser):
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toPolicyResponse(created))
}
