package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/raycaster/internal/world"
)

// GeneratedMap selects a procedurally generated dungeon instead of an
// embedded map.
const GeneratedMap = "generated"

// Environment variables read by LoadConfig.
const (
	envSeed          = "RAYCASTER_SEED"
	envMap           = "RAYCASTER_MAP"
	envClip          = "RAYCASTER_CLIP"
	envDungeonWidth  = "RAYCASTER_DUNGEON_WIDTH"
	envDungeonHeight = "RAYCASTER_DUNGEON_HEIGHT"
)

// Config holds viewer configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Map is the embedded map ID to start on, or GeneratedMap.
	Map string

	// Clip starts the renderer with wall-height clipping enabled.
	Clip bool

	// Dimensions of generated dungeons.
	DungeonWidth  int
	DungeonHeight int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Map:           "courtyard",
		DungeonWidth:  world.DefaultWidth,
		DungeonHeight: world.DefaultHeight,
	}
}

// LoadConfig reads configuration from the process environment.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom reads configuration through getenv, starting from
// DefaultConfig. Unset variables keep their defaults.
func LoadConfigFrom(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(envSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envSeed, err)
		}
		cfg.Seed = seed
	}
	if v := getenv(envMap); v != "" {
		cfg.Map = v
	}
	if v := getenv(envClip); v != "" {
		clip, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envClip, err)
		}
		cfg.Clip = clip
	}
	for _, dim := range []struct {
		name string
		dst  *int
	}{
		{envDungeonWidth, &cfg.DungeonWidth},
		{envDungeonHeight, &cfg.DungeonHeight},
	} {
		v := getenv(dim.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", dim.name, err)
		}
		if n < 3 {
			return cfg, fmt.Errorf("%s: %d is too small, need at least 3", dim.name, n)
		}
		*dim.dst = n
	}

	return cfg, nil
}
