package service

import (
	"context"
	"errors"
	"testing"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogUpdate(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := &mocks.MockAuditLogRepository{}

	var saved *entity.AuditLog
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuditLog")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.AuditLog) }).
		Return(nil)

	userID := "u1"
	svc := NewAuditService(newTestLogger(), repo)
	err := svc.LogUpdate(context.Background(), db, &userID, entity.AuditActionRoomHoursUpdate, "room", "r1",
		map[string]string{"start": "07:00"}, map[string]string{"start": "08:00"})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, entity.AuditActionRoomHoursUpdate, saved.Action)
	assert.Equal(t, "u1", *saved.UserID)
	assert.Equal(t, "r1", saved.Metadata["entity_id"])
	assert.Equal(t, map[string]string{"start": "08:00"}, saved.Metadata["new_value"])
}

func TestAuditService_PropagatesError(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := &mocks.MockAuditLogRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	svc := NewAuditService(newTestLogger(), repo)
	err := svc.LogCreate(context.Background(), db, nil, entity.AuditActionAppointmentCreate, "appointment", "a1", nil)
	assert.Error(t, err)
}
