package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadAppConfigDefaults(t *testing.T) {
	p := writeConfig(t, "server:\n  port: 9090\n")
	if err := LoadAppConfig(p); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", Config.Server.Port)
	}
	if Config.Replay.TickMS != DefaultTickMS {
		t.Errorf("tickMS = %d, want default %d", Config.Replay.TickMS, DefaultTickMS)
	}
	if Config.Replay.FrameIntervalMS != Config.Replay.TickMS {
		t.Errorf("frameIntervalMS = %d, want tickMS", Config.Replay.FrameIntervalMS)
	}
	if Config.Replay.ProducerRef != DefaultProducerRef {
		t.Errorf("producerRef = %q", Config.Replay.ProducerRef)
	}
}

func TestLoadAppConfigReplaySection(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 8080
replay:
  runPath: testdata/run.json
  tickMS: 250
  frameIntervalMS: 50
  producerRef: SIM
  loop: true
`)
	if err := LoadAppConfig(p); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	r := Config.Replay
	if r.RunPath != "testdata/run.json" || r.TickMS != 250 || r.FrameIntervalMS != 50 {
		t.Errorf("replay section = %+v", r)
	}
	if r.ProducerRef != "SIM" || !r.Loop {
		t.Errorf("replay section = %+v", r)
	}
}

func TestLoadAppConfigEnvOverride(t *testing.T) {
	t.Setenv("FLEET_REPLAY_PORT", "7070")
	t.Setenv("FLEET_REPLAY_TICK_MS", "125")
	p := writeConfig(t, "server:\n  port: 9090\n")
	if err := LoadAppConfig(p); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", Config.Server.Port)
	}
	if Config.Replay.TickMS != 125 {
		t.Errorf("tickMS = %d, want env override 125", Config.Replay.TickMS)
	}
}

func TestLoadAppConfigMissingExplicitPath(t *testing.T) {
	if err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadAppConfigRejectsBadPort(t *testing.T) {
	t.Setenv("FLEET_REPLAY_PORT", "-1")
	p := writeConfig(t, "server:\n  port: 9090\n")
	if err := LoadAppConfig(p); err == nil {
		t.Fatal("expected validation error for negative port")
	}
}
