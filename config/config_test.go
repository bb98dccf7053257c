package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoomHours(t *testing.T) {
	table, err := ParseRoomHours("C1=06:30-15:30, C9 = 09:00-13:00,")
	require.NoError(t, err)

	assert.Equal(t, HoursConfig{Start: "06:30", End: "15:30"}, table["C1"])
	assert.Equal(t, HoursConfig{Start: "09:00", End: "13:00"}, table["C9"])
	assert.Len(t, table, 2)
}

func TestParseRoomHours_Invalid(t *testing.T) {
	_, err := ParseRoomHours("C1:07:00-16:00")
	assert.Error(t, err)

	_, err = ParseRoomHours("C1=07:00")
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SCHEDULING_ROOM_HOURS", "C3=09:00-18:00")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, -3, cfg.Scheduling.UTCOffsetHours)
	assert.Equal(t, 30, cfg.Scheduling.DefaultDurationMinutes)
	assert.Equal(t, 10*time.Second, cfg.Scheduling.LockTTL)
	assert.Equal(t, HoursConfig{Start: "08:00", End: "17:00"}, cfg.Scheduling.DefaultHours)
	assert.Equal(t, HoursConfig{Start: "09:00", End: "18:00"}, cfg.Scheduling.RoomHours["C3"])
	assert.Equal(t, HoursConfig{Start: "07:00", End: "16:00"}, cfg.Scheduling.RoomHours["C1"])

	// the package-level table must not be mutated by overrides
	assert.Equal(t, HoursConfig{Start: "08:00", End: "17:00"}, DefaultRoomHours["C3"])
}
