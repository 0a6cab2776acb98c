package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/overland/internal/entity"
	"github.com/samdwyer/overland/internal/pathfind"
	"github.com/samdwyer/overland/internal/world"
)

// Config holds simulation and runtime options.
type Config struct {
	// Seed for terrain generation. The same seed always yields the same map.
	Seed string

	TickRate     int     // Ticks per second
	PathBudget   int     // Pathfinder expansions per unit per tick
	SearchRadius int     // Largest ring examined when looking for a free tile
	Diagonal     bool    // Allow diagonal steps
	UnitSpeed    float64 // World units per tick at TickRate
	DoorCrossing bool    // Let door bridges join different room types

	LogLevel  string
	LogFormat string
	LogFile   string // Empty discards logs while the terminal UI runs
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Seed:         world.DefaultSeed,
		TickRate:     60,
		PathBudget:   pathfind.DefaultBudget,
		SearchRadius: world.DefaultSearchRadius,
		Diagonal:     true,
		UnitSpeed:    entity.DefaultSpeed,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// ConfigFromEnv starts from DefaultConfig and applies any OVERLAND_* and
// LOG_* variables that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("OVERLAND_SEED"); v != "" {
		cfg.Seed = v
	}
	if err := envInt("OVERLAND_TICK_RATE", &cfg.TickRate); err != nil {
		return cfg, err
	}
	if err := envInt("OVERLAND_PATH_BUDGET", &cfg.PathBudget); err != nil {
		return cfg, err
	}
	if err := envInt("OVERLAND_SEARCH_RADIUS", &cfg.SearchRadius); err != nil {
		return cfg, err
	}
	if err := envBool("OVERLAND_DIAGONAL", &cfg.Diagonal); err != nil {
		return cfg, err
	}
	if err := envBool("OVERLAND_DOOR_CROSSING", &cfg.DoorCrossing); err != nil {
		return cfg, err
	}
	if v := os.Getenv("OVERLAND_UNIT_SPEED"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("OVERLAND_UNIT_SPEED: %w", err)
		}
		cfg.UnitSpeed = f
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg, cfg.Validate()
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	case c.PathBudget <= 0:
		return fmt.Errorf("path budget must be positive, got %d", c.PathBudget)
	case c.SearchRadius <= 0:
		return fmt.Errorf("search radius must be positive, got %d", c.SearchRadius)
	case c.UnitSpeed <= 0:
		return fmt.Errorf("unit speed must be positive, got %g", c.UnitSpeed)
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}
