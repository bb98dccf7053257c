package repository

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomColumns = []string{"id", "name", "description", "capacity", "equipment", "location", "occupancy_type", "fixed_schedule", "weekly_schedule", "is_active", "created_at", "updated_at"}

func TestRoomRepository_FindByID_DecodesJSONColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(roomColumns).AddRow(
		"r1", "C6", "Rotativo", 2, []byte(`["Maca","Computador"]`), "1º Andar", "rotative",
		nil, []byte(`{"monday":{"morning":"Cardiologia","afternoon":"Cardiologia"}}`), true, now, now,
	)
	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE id = \$1`).WillReturnRows(rows)

	room, err := repo.FindByID(db, "r1")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "C6", room.Name)
	assert.True(t, room.IsRotative())
	assert.Nil(t, room.FixedSchedule)
	assert.Equal(t, entity.StringList{"Maca", "Computador"}, room.Equipment)
	assert.Equal(t, "Cardiologia", room.WeeklySchedule["monday"].Morning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_FindByID_FixedSchedule(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(roomColumns).AddRow(
		"r3", "C3", "ESF 3", 1, []byte(`[]`), "Térreo", "fixed",
		[]byte(`{"team":"ESF 3","start":"08:00","end":"17:00"}`), nil, true, now, now,
	)
	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE id = \$1`).WillReturnRows(rows)

	room, err := repo.FindByID(db, "r3")
	require.NoError(t, err)
	require.NotNil(t, room.FixedSchedule)
	assert.Equal(t, entity.FixedSchedule{Team: "ESF 3", Start: "08:00", End: "17:00"}, *room.FixedSchedule)
	assert.True(t, room.FixedSchedule.HasHours())
}

func TestRoomRepository_Deactivate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomRepository()

	mock.ExpectExec(`UPDATE "rooms" SET "is_active"=\$1,"updated_at"=\$2 WHERE \(?id = \$3 AND is_active = \$4\)?`).
		WithArgs(false, sqlmock.AnyArg(), "r1", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Deactivate(db, "r1")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_FindAllActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRoomRepository()
	now := time.Now()

	rows := sqlmock.NewRows(roomColumns).
		AddRow("r1", "C1", "", 1, nil, "", "fixed", nil, nil, true, now, now).
		AddRow("r2", "C2", "", 1, nil, "", "fixed", nil, nil, true, now, now)
	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE is_active = \$1 ORDER BY name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	rooms, err := repo.FindAllActive(db)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
