package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" env:"FLEET_REPLAY_PORT" validate:"gt=0"`
}

// ReplayConfig contains playback configuration
type ReplayConfig struct {
	// RunPath points at the generator run JSON to load at startup.
	RunPath string `yaml:"runPath" env:"FLEET_REPLAY_RUN"`
	// TerminalsPath points at the optional terminals overlay JSON.
	TerminalsPath string `yaml:"terminalsPath" env:"FLEET_REPLAY_TERMINALS"`
	// TickMS is the simulated time added per tick.
	TickMS int `yaml:"tickMS" env:"FLEET_REPLAY_TICK_MS" validate:"gte=0"`
	// FrameIntervalMS is the wall-clock delay between ticks. Equal to TickMS
	// it plays back in real time; smaller is fast-forward.
	FrameIntervalMS int `yaml:"frameIntervalMS" env:"FLEET_REPLAY_FRAME_INTERVAL_MS" validate:"gte=0"`
	// AnchorEpochMS maps simulation time 0 onto a wall-clock epoch for the
	// SIRI and GTFS-RT exports. Zero anchors at service start.
	AnchorEpochMS int64 `yaml:"anchorEpochMS" env:"FLEET_REPLAY_ANCHOR_EPOCH_MS" validate:"gte=0"`
	// ProducerRef is the codespace stamped on SIRI output.
	ProducerRef string `yaml:"producerRef" env:"FLEET_REPLAY_PRODUCER_REF"`
	// Loop restarts playback from zero once every entity has finished.
	Loop bool `yaml:"loop" env:"FLEET_REPLAY_LOOP"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Replay ReplayConfig `yaml:"replay"`
}
