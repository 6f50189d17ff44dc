package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/picklewheel/picklewheel/internal/api/middleware"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/service"
)

type WheelHandler struct {
	wheelService *service.WheelService
}

func NewWheelHandler(wheelService *service.WheelService) *WheelHandler {
	return &WheelHandler{wheelService: wheelService}
}

// WheelResponse is the wire shape of a wheel.
type WheelResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
	Spins     int       `json:"spins"`
	IsPublic  bool      `json:"isPublic"`
	LastUsed  time.Time `json:"lastUsed"`
}

// SpinResponse is a wheel plus the server-chosen option.
type SpinResponse struct {
	WheelResponse
	Result      string `json:"result"`
	ResultIndex int    `json:"resultIndex"`
}

// CreateWheelRequest is the request body for creating a wheel.
type CreateWheelRequest struct {
	Name     string   `json:"name"`
	Options  []string `json:"options"`
	IsPublic bool     `json:"isPublic"`
}

// UpdateWheelRequest is the request body for updating a wheel.
// Absent fields retain their stored values.
type UpdateWheelRequest struct {
	Name     *string  `json:"name"`
	Options  []string `json:"options"`
	IsPublic *bool    `json:"isPublic"`
}

func newWheelResponse(wheel *domain.Wheel) (WheelResponse, error) {
	options, err := wheel.OptionList()
	if err != nil {
		return WheelResponse{}, err
	}
	return WheelResponse{
		ID:        wheel.ID.String(),
		UserID:    wheel.UserID,
		Name:      wheel.Name,
		Options:   options,
		CreatedAt: wheel.CreatedAt,
		Spins:     wheel.Spins,
		IsPublic:  wheel.IsPublic,
		LastUsed:  wheel.LastUsed,
	}, nil
}

// List returns all wheels owned by the caller.
func (h *WheelHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wheels, err := h.wheelService.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [wheel.List] failed to list wheels: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]WheelResponse, 0, len(wheels))
	for _, wheel := range wheels {
		wr, err := newWheelResponse(wheel)
		if err != nil {
			log.Printf("ERROR [wheel.List] failed to decode options: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		resp = append(resp, wr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create makes a new wheel owned by the caller.
func (h *WheelHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateWheelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR [wheel.Create] failed to decode request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wheel, err := h.wheelService.Create(r.Context(), user.ID, service.CreateWheelInput{
		Name:     req.Name,
		Options:  req.Options,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		h.writeWheelError(w, "wheel.Create", err)
		return
	}

	resp, err := newWheelResponse(wheel)
	if err != nil {
		log.Printf("ERROR [wheel.Create] failed to decode options: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get returns one wheel by ID, scoped to the caller.
func (h *WheelHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseWheelID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Wheel not found")
		return
	}

	wheel, err := h.wheelService.Get(r.Context(), user.ID, id)
	if err != nil {
		h.writeWheelError(w, "wheel.Get", err)
		return
	}

	resp, err := newWheelResponse(wheel)
	if err != nil {
		log.Printf("ERROR [wheel.Get] failed to decode options: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update changes name, options and/or visibility of a wheel.
func (h *WheelHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseWheelID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Wheel not found")
		return
	}

	var req UpdateWheelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR [wheel.Update] failed to decode request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wheel, err := h.wheelService.Update(r.Context(), user.ID, id, service.UpdateWheelInput{
		Name:     req.Name,
		Options:  req.Options,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		h.writeWheelError(w, "wheel.Update", err)
		return
	}

	resp, err := newWheelResponse(wheel)
	if err != nil {
		log.Printf("ERROR [wheel.Update] failed to decode options: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete removes a wheel permanently.
func (h *WheelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseWheelID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Wheel not found")
		return
	}

	if err := h.wheelService.Delete(r.Context(), user.ID, id); err != nil {
		h.writeWheelError(w, "wheel.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Spin bumps the wheel's counters and returns the winning option.
func (h *WheelHandler) Spin(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseWheelID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Wheel not found")
		return
	}

	result, err := h.wheelService.Spin(r.Context(), user.ID, id)
	if err != nil {
		h.writeWheelError(w, "wheel.Spin", err)
		return
	}

	wr, err := newWheelResponse(result.Wheel)
	if err != nil {
		log.Printf("ERROR [wheel.Spin] failed to decode options: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SpinResponse{
		WheelResponse: wr,
		Result:        result.Result,
		ResultIndex:   result.ResultIndex,
	})
}

// parseWheelID reads the {id} route parameter. Malformed IDs are treated
// as not found so probing with junk IDs looks the same as probing with
// someone else's.
func parseWheelID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (h *WheelHandler) writeWheelError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrWheelNotFound):
		writeError(w, http.StatusNotFound, "Wheel not found")
	case errors.Is(err, domain.ErrWheelNameTaken):
		writeError(w, http.StatusConflict, "A wheel with this name already exists")
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrOptionsRequired),
		errors.Is(err, domain.ErrBlankOption):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR [%s] %v", op, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
