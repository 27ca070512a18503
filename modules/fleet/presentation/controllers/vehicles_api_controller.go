package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type VehicleResponse struct {
	ID              string   `json:"id"`
	RegistrationNo  string   `json:"registration_no"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	ChassisNo       string   `json:"chassis_no"`
	EngineNo        string   `json:"engine_no"`
	SeatingCapacity *int     `json:"seating_capacity,omitempty"`
	CubicCapacity   *int     `json:"cubic_capacity,omitempty"`
	GrossWeight     *float64 `json:"gross_weight,omitempty"`
	ReceivedAt      string   `json:"received_at,omitempty"`
	ClientID        string   `json:"client_id"`
	BodyTypeID      string   `json:"body_type_id"`
	CategoryID      string   `json:"category_id"`
	VehicleTypeID   string   `json:"vehicle_type_id"`
	IsActive        bool     `json:"is_active"`
}

func toVehicleResponse(v vehicle.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:              v.ID().String(),
		RegistrationNo:  v.RegistrationNo(),
		Make:            v.Make(),
		Model:           v.Model(),
		Year:            v.Year(),
		ChassisNo:       v.ChassisNo(),
		EngineNo:        v.EngineNo(),
		SeatingCapacity: v.SeatingCapacity(),
		CubicCapacity:   v.CubicCapacity(),
		GrossWeight:     v.GrossWeight(),
		ClientID:        v.ClientID().String(),
		BodyTypeID:      v.BodyTypeID().String(),
		CategoryID:      v.CategoryID().String(),
		VehicleTypeID:   v.VehicleTypeID().String(),
		IsActive:        v.IsActive(),
	}
	if v.ReceivedAt() != nil {
		resp.ReceivedAt = v.ReceivedAt().Format("2006-01-02")
	}
	return resp
}

type VehiclesAPIController struct {
	app      application.Application
	service  *services.VehicleService
	basePath string
}

func NewVehiclesAPIController(app application.Application) application.Controller {
	return &VehiclesAPIController{
		app:      app,
		service:  app.Service(services.VehicleService{}).(*services.VehicleService),
		basePath: "/fleet/vehicles",
	}
}

func (c *VehiclesAPIController) Key() string {
	return c.basePath
}

func (c *VehiclesAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())
	router.Use(middleware.WithTransaction())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9a-fA-F]{8}-[0-9a-fA-F-]+}", c.GetByID).Methods(http.MethodGet)
}

type vehicleListQuery struct {
	Limit    int       `form:"limit"`
	Offset   int       `form:"offset"`
	ClientID uuid.UUID `form:"client_id"`
}

func (c *VehiclesAPIController) List(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&vehicleListQuery{Limit: 20}, r)
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("invalid query parameters"))
		return
	}

	vehicles, total, err := c.service.GetPaginated(r.Context(), &vehicle.FindParams{
		Limit:    q.Limit,
		Offset:   q.Offset,
		ClientID: q.ClientID,
	})
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, toVehicleResponse(v))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *VehiclesAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, vehicle.ErrNotFound)
		return
	}
	v, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			shared.WriteAPIError(w, http.StatusNotFound, err)
			return
		}
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toVehicleResponse(v))
}

func (c *VehiclesAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &vehicle.CreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if fields, ok := dto.Ok(time.Now()); !ok {
		shared.WriteValidationErrors(w, fields)
		return
	}

	created, err := c.service.Create(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrRegistrationTaken):
			shared.WriteAPIError(w, http.StatusConflict, err)
		case errors.Is(err, composables.ErrNoUser):
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toVehicleResponse(created))
}
