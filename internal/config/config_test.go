package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "EMOTION_DEBUG", "LOG_LEVEL", "EMOTION_CLASSIFIER", "EMOTION_API_URL",
		"EMOTION_MODEL_ID", "EMOTION_TIMEOUT_SECONDS", "EMOTION_SIMULATION_ENABLED",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "Model", "ARK_TEMPERATURE", "ARK_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:5000" {
		t.Fatalf("expected 0.0.0.0:5000, got %s", cfg.Server.Addr)
	}
	if !cfg.Server.Debug || cfg.Server.LogLevel != "debug" {
		t.Fatalf("expected debug mode by default, got debug=%v level=%s", cfg.Server.Debug, cfg.Server.LogLevel)
	}
	if cfg.Detector.Classifier != ClassifierWatson {
		t.Fatalf("expected watson classifier, got %s", cfg.Detector.Classifier)
	}
	if cfg.Detector.URL != defaultEmotionURL || cfg.Detector.ModelID != defaultEmotionModelID {
		t.Fatalf("unexpected detector endpoint: %+v", cfg.Detector)
	}
	if cfg.Detector.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.Detector.Timeout)
	}
	if !cfg.Detector.SimulationEnabled {
		t.Fatal("expected simulation enabled by default")
	}
	if cfg.AI.Enabled() {
		t.Fatal("expected AI disabled without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("EMOTION_DEBUG", "false")
	t.Setenv("EMOTION_CLASSIFIER", "ARK")
	t.Setenv("EMOTION_TIMEOUT_SECONDS", "3")
	t.Setenv("EMOTION_SIMULATION_ENABLED", "false")
	t.Setenv("ARK_API_KEY", "key")
	t.Setenv("Model", "ep-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Server.Debug || cfg.Server.LogLevel != "info" {
		t.Fatalf("expected debug disabled, got debug=%v level=%s", cfg.Server.Debug, cfg.Server.LogLevel)
	}
	if cfg.Detector.Classifier != ClassifierArk {
		t.Fatalf("expected ark classifier, got %s", cfg.Detector.Classifier)
	}
	if cfg.Detector.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Detector.Timeout)
	}
	if cfg.Detector.SimulationEnabled {
		t.Fatal("expected simulation disabled")
	}
	if !cfg.AI.Enabled() {
		t.Fatal("expected AI enabled with api key and model")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                       "50 00",
		"EMOTION_CLASSIFIER":         "bert",
		"EMOTION_TIMEOUT_SECONDS":    "0",
		"EMOTION_SIMULATION_ENABLED": "maybe",
		"ARK_TEMPERATURE":            "hot",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
