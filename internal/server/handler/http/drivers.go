package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/atinyakov/FleetKeeper/internal/httperr"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DriverStore defines the persistence operations required by DriverHandler.
// Assignments are keyed by user.
type DriverStore interface {
	List(ctx context.Context, page models.Page) ([]models.Driver, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Driver, error)
	GetByVehicleID(ctx context.Context, vehicleID int64) (*models.Driver, error)
	Create(ctx context.Context, in models.Driver) (*models.Driver, error)
	Reassign(ctx context.Context, userID, vehicleID int64) (*models.Driver, error)
	Delete(ctx context.Context, userID int64) (*models.Driver, error)
}

// DriverHandler serves the driver assignment endpoints.
type DriverHandler struct {
	Store    DriverStore
	Validate *validator.Validate
	Log      *zap.Logger
}

// Routes registers the handler on r.
func (h *DriverHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/by-vehicle/{vehicle_id}", h.GetByVehicle)
	r.Get("/{user_id}", h.GetByUser)
	r.Put("/{user_id}", h.Reassign)
	r.Delete("/{user_id}", h.Delete)
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Driver
	if !decodeBody(w, r, h.Validate, &in) {
		return
	}
	out, err := h.Store.Create(r.Context(), in)
	if err != nil {
		storeError(w, h.Log, "create driver", err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, 10)
	if !ok {
		return
	}
	out, err := h.Store.List(r.Context(), page)
	if err != nil {
		storeError(w, h.Log, "list drivers", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *DriverHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	out, err := h.Store.GetByUserID(r.Context(), userID)
	if err != nil {
		storeError(w, h.Log, "get driver", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *DriverHandler) GetByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathID(w, r, "vehicle_id")
	if !ok {
		return
	}
	out, err := h.Store.GetByVehicleID(r.Context(), vehicleID)
	if err != nil {
		storeError(w, h.Log, "get driver by vehicle", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Reassign handles PUT /drivers/{user_id}?vehicle_id=N.
func (h *DriverHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	vehicleID, err := strconv.ParseInt(r.URL.Query().Get("vehicle_id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		httperr.Write(w, httperr.BadRequest("invalid vehicle_id"))
		return
	}
	out, err := h.Store.Reassign(r.Context(), userID, vehicleID)
	if err != nil {
		storeError(w, h.Log, "reassign driver", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	out, err := h.Store.Delete(r.Context(), userID)
	if err != nil {
		storeError(w, h.Log, "delete driver", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
