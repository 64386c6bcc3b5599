package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and overlays")
	flagModel      = flag.String("model", "", "Path to the OBJ mesh")
	flagCellSize   = flag.Float64("cell-size", 0, "Collision grid cell size in model units")
	flagFreeFly    = flag.Bool("free-fly", false, "Start with ground lock off")
	flagTelemetry  = flag.String("telemetry", "", "Serve frame telemetry on this address (e.g. :8090)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagWriteTo    = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config target, empty when unset.
func WriteConfigPath() string {
	return *flagWriteTo
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.DrawColliders = true
	}
	if *flagModel != "" {
		cfg.World.ModelPath = *flagModel
	}
	if *flagCellSize > 0 {
		cfg.World.CellSize = float32(*flagCellSize)
	}
	if *flagFreeFly {
		cfg.Player.LockToGround = false
	}
	if *flagTelemetry != "" {
		cfg.Debug.TelemetryAddr = *flagTelemetry
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
