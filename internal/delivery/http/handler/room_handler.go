package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
	validator   *validator.CustomValidator
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase, validator *validator.CustomValidator) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
		validator:   validator,
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	room, err := h.roomUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create room")
		return
	}

	response.Success(w, http.StatusCreated, "Room created successfully", room)
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomUsecase.ListRooms(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get rooms")
		return
	}

	response.Success(w, http.StatusOK, "Rooms retrieved successfully", rooms)
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomUsecase.GetRoom(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get room")
		return
	}

	response.Success(w, http.StatusOK, "Room retrieved successfully", room)
}

func (h *RoomHandler) DeactivateRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.roomUsecase.DeactivateRoom(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to deactivate room")
		return
	}

	response.Success(w, http.StatusOK, "Room deactivated successfully", nil)
}

// UpdateHours reads the new window from the start and end query parameters
func (h *RoomHandler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.UpdateHoursRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.roomUsecase.UpdateHours(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to update room hours")
		return
	}

	response.Success(w, http.StatusOK, "Room hours updated successfully", hours)
}

func (h *RoomHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required (YYYY-MM-DD)")
		return
	}

	slots, err := h.roomUsecase.GetSlots(r.Context(), mux.Vars(r)["id"], date)
	if err != nil {
		writeError(w, err, "Failed to get room slots")
		return
	}

	response.Success(w, http.StatusOK, "Room slots retrieved successfully", slots)
}

func (h *RoomHandler) GetDayAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.roomUsecase.GetDayAvailability(r.Context(), mux.Vars(r)["day"])
	if err != nil {
		writeError(w, err, "Failed to get room availability")
		return
	}

	response.Success(w, http.StatusOK, "Room availability retrieved successfully", availability)
}

func (h *RoomHandler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	weekly, err := h.roomUsecase.GetWeeklySchedule(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get weekly schedule")
		return
	}

	response.Success(w, http.StatusOK, "Weekly schedule retrieved successfully", weekly)
}
