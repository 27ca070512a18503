package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/sticker"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/services"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/constants"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
	"github.com/fleetgrid/fleet-sdk/pkg/shared"
)

type StickerResponse struct {
	ID       string `json:"id"`
	SerialNo string `json:"serial_no"`
	TypeID   string `json:"type_id"`
	Status   string `json:"status"`
}

func toStickerResponse(s sticker.Sticker) StickerResponse {
	return StickerResponse{
		ID:       s.ID().String(),
		SerialNo: s.SerialNo(),
		TypeID:   s.TypeID().String(),
		Status:   string(s.Status()),
	}
}

type IssuanceResponse struct {
	ID        string    `json:"id"`
	StickerID string    `json:"sticker_id"`
	PolicyID  string    `json:"policy_id"`
	IssuedBy  string    `json:"issued_by"`
	IssuedAt  time.Time `json:"issued_at"`
}

type createStickerDTO struct {
	SerialNo string `json:"serial_no" validate:"required,max=64"`
	TypeID   string `json:"type_id" validate:"required,uuid"`
}

type issueStickerDTO struct {
	PolicyID string `json:"policy_id" validate:"required,uuid"`
}

type StickersAPIController struct {
	app      application.Application
	service  *services.StickerService
	basePath string
}

func NewStickersAPIController(app application.Application) application.Controller {
	return &StickersAPIController{
		app:      app,
		service:  app.Service(services.StickerService{}).(*services.StickerService),
		basePath: "/insurance/stickers",
	}
}

func (c *StickersAPIController) Key() string {
	return c.basePath
}

// Register skips the request transaction middleware: issuance opens its
// own short transaction so the status guard commits independently.
func (c *StickersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(middleware.RequireAuthorization())

	router.HandleFunc("", c.ListAvailable).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9a-fA-F]{8}-[0-9a-fA-F-]+}/issue", c.Issue).Methods(http.MethodPost)
}

type stickerListQuery struct {
	TypeID uuid.UUID `form:"type_id"`
}

func (c *StickersAPIController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&stickerListQuery{}, r)
	if err != nil || q.TypeID == uuid.Nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("type_id query parameter must be a uuid"))
		return
	}

	stickers, err := c.service.GetAvailableByType(r.Context(), q.TypeID)
	if err != nil {
		shared.WriteAPIError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]StickerResponse, 0, len(stickers))
	for _, s := range stickers {
		items = append(items, toStickerResponse(s))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *StickersAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &createStickerDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if errs := constants.Validate.Struct(dto); errs != nil {
		shared.WriteValidationErrors(w, serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)))
		return
	}

	created, err := c.service.Create(r.Context(), dto.SerialNo, uuid.MustParse(dto.TypeID))
	if err != nil {
		switch {
		case errors.Is(err, sticker.ErrSerialTaken):
			shared.WriteAPIError(w, http.StatusConflict, err)
		case errors.Is(err, composables.ErrNoUser):
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toStickerResponse(created))
}

func (c *StickersAPIController) Issue(w http.ResponseWriter, r *http.Request) {
	stickerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, sticker.ErrNotFound)
		return
	}

	dto := &issueStickerDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		shared.WriteAPIError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if errs := constants.Validate.Struct(dto); errs != nil {
		shared.WriteValidationErrors(w, serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)))
		return
	}

	issued, err := c.service.Issue(r.Context(), stickerID, uuid.MustParse(dto.PolicyID))
	if err != nil {
		switch {
		case errors.Is(err, sticker.ErrNotAvailable):
			shared.WriteAPIError(w, http.StatusConflict, err)
		case errors.Is(err, policy.ErrNotFound):
			shared.WriteAPIError(w, http.StatusNotFound, err)
		case errors.Is(err, composables.ErrNoUser):
			shared.WriteAPIError(w, http.StatusUnauthorized, err)
		default:
			shared.WriteAPIError(w, http.StatusInternalServerError, err)
		}
		return
	}
	shared.WriteJSON(w, http.StatusCreated, IssuanceResponse{
		ID:        issued.ID.String(),
		StickerID: issued.StickerID.String(),
		PolicyID:  issued.PolicyID.String(),
		IssuedBy:  issued.IssuedBy.String(),
		IssuedAt:  issued.IssuedAt,
	})
}
