package cli

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// loadSettings reads the config file and applies the global flags on top.
func loadSettings() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if sizeFlag != 0 {
		cfg.Size = sizeFlag
	}
	if speedFlag != "" {
		cfg.Speed = speedFlag
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if verbose {
		fmt.Printf("Config: %s (size %d, speed %s)\n", path, cfg.Size, cfg.Speed)
	}
	return cfg, nil
}

// openDB opens the journal database named by cfg.
func openDB(cfg config.Config) (*storage.DB, error) {
	db, err := storage.Open(cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if verbose {
		v, _ := db.CurrentVersion()
		fmt.Printf("Database: %s (schema v%d)\n", db.Path(), v)
	}
	return db, nil
}

// cubeSize returns the N×N×N size named by cfg.
func cubeSize(cfg config.Config) cube.Size {
	return cube.Size{W: cfg.Size, H: cfg.Size, D: cfg.Size}
}

// cubeOptions returns the cube options derived from cfg.
func cubeOptions(cfg config.Config) []cubesim.Option {
	return []cubesim.Option{
		cubesim.WithSpeed(cfg.TurnSpeed()),
		cubesim.WithInterval(cfg.Interval()),
	}
}

// settle runs c to completion on a simulated clock.
func settle(c *cubesim.Cube) error {
	_, err := c.Settle(time.Now())
	return err
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// shortID trims a session ID for tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
