package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
	Cache      CacheConfig
	Bootstrap  BootstrapConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// HoursConfig is a room's operating window as "HH:MM" strings.
type HoursConfig struct {
	Start string
	End   string
}

type SchedulingConfig struct {
	UTCOffsetHours         int
	DefaultDurationMinutes int
	LockTTL                time.Duration
	LockWait               time.Duration
	DefaultHours           HoursConfig
	// RoomHours is the fallback table consulted when a room has no fixed schedule.
	RoomHours map[string]HoursConfig
}

type CacheConfig struct {
	NameSize int
	NameTTL  time.Duration
}

type BootstrapConfig struct {
	AdminPassword string
}

// DefaultRoomHours is the canonical fallback table for the eight provisioned rooms.
var DefaultRoomHours = map[string]HoursConfig{
	"C1": {Start: "07:00", End: "16:00"},
	"C2": {Start: "07:00", End: "16:00"},
	"C3": {Start: "08:00", End: "17:00"},
	"C4": {Start: "10:00", End: "19:00"},
	"C5": {Start: "12:00", End: "21:00"},
	"C6": {Start: "07:00", End: "19:00"},
	"C7": {Start: "07:00", End: "19:00"},
	"C8": {Start: "07:00", End: "19:00"},
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_LOG_LEVEL", "info")
	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("SCHEDULING_UTC_OFFSET_HOURS", -3)
	v.SetDefault("SCHEDULING_DEFAULT_DURATION_MINUTES", 30)
	v.SetDefault("CACHE_NAME_SIZE", 1024)
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin123")

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 2 * time.Hour
	}

	lockTTL, err := time.ParseDuration(v.GetString("SCHEDULING_LOCK_TTL"))
	if err != nil {
		lockTTL = 10 * time.Second
	}

	lockWait, err := time.ParseDuration(v.GetString("SCHEDULING_LOCK_WAIT"))
	if err != nil {
		lockWait = 3 * time.Second
	}

	nameTTL, err := time.ParseDuration(v.GetString("CACHE_NAME_TTL"))
	if err != nil {
		nameTTL = 5 * time.Minute
	}

	roomHours := make(map[string]HoursConfig, len(DefaultRoomHours))
	for name, hours := range DefaultRoomHours {
		roomHours[name] = hours
	}
	if raw := v.GetString("SCHEDULING_ROOM_HOURS"); raw != "" {
		overrides, err := ParseRoomHours(raw)
		if err != nil {
			return nil, err
		}
		for name, hours := range overrides {
			roomHours[name] = hours
		}
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("APP_LOG_LEVEL"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Scheduling: SchedulingConfig{
			UTCOffsetHours:         v.GetInt("SCHEDULING_UTC_OFFSET_HOURS"),
			DefaultDurationMinutes: v.GetInt("SCHEDULING_DEFAULT_DURATION_MINUTES"),
			LockTTL:                lockTTL,
			LockWait:               lockWait,
			DefaultHours:           HoursConfig{Start: "08:00", End: "17:00"},
			RoomHours:              roomHours,
		},
		Cache: CacheConfig{
			NameSize: v.GetInt("CACHE_NAME_SIZE"),
			NameTTL:  nameTTL,
		},
		Bootstrap: BootstrapConfig{
			AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}

	return config, nil
}

// ParseRoomHours parses "C1=07:00-16:00,C9=09:00-13:00" into a room hours table.
// Time strings are kept verbatim; they are validated when a room's hours are resolved.
func ParseRoomHours(raw string) (map[string]HoursConfig, error) {
	table := make(map[string]HoursConfig)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, window, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid room hours entry %q, use NAME=HH:MM-HH:MM", entry)
		}
		start, end, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("invalid room hours window %q for %s", window, name)
		}
		table[strings.TrimSpace(name)] = HoursConfig{
			Start: strings.TrimSpace(start),
			End:   strings.TrimSpace(end),
		}
	}
	return table, nil
}
