package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/pkg/response"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRoomUsecase struct{ mock.Mock }

func (m *mockRoomUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.RoomResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) GetRoom(ctx context.Context, roomID string) (*dto.RoomResponse, error) {
	args := m.Called(ctx, roomID)
	res, _ := args.Get(0).(*dto.RoomResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) ListRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.RoomListResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) DeactivateRoom(ctx context.Context, roomID string) error {
	return m.Called(ctx, roomID).Error(0)
}

func (m *mockRoomUsecase) UpdateHours(ctx context.Context, roomID string, req *dto.UpdateHoursRequest) (*dto.RoomHoursResponse, error) {
	args := m.Called(ctx, roomID, req)
	res, _ := args.Get(0).(*dto.RoomHoursResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) GetSlots(ctx context.Context, roomID, date string) (*dto.RoomSlotsResponse, error) {
	args := m.Called(ctx, roomID, date)
	res, _ := args.Get(0).(*dto.RoomSlotsResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) GetDayAvailability(ctx context.Context, dayOfWeek string) (*dto.DayAvailabilityResponse, error) {
	args := m.Called(ctx, dayOfWeek)
	res, _ := args.Get(0).(*dto.DayAvailabilityResponse)
	return res, args.Error(1)
}

func (m *mockRoomUsecase) GetWeeklySchedule(ctx context.Context) (*dto.WeeklyScheduleResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.WeeklyScheduleResponse)
	return res, args.Error(1)
}

type mockAppointmentUsecase struct{ mock.Mock }

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *mockAppointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID)
	res, _ := args.Get(0).(*dto.AppointmentResponse)
	return res, args.Error(1)
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AppointmentListResponse)
	return res, args.Error(1)
}

type mockAuditLogUsecase struct{ mock.Mock }

func (m *mockAuditLogUsecase) ListAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, int, int, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AuditLogListResponse)
	return res, args.Int(1), args.Int(2), args.Error(3)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.AuditLogResponse)
	return res, args.Error(1)
}

// serve routes one request through a mux router so path variables resolve.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var raw struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}
