package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "MAX_HEADER_BYTES", "GIN_MODE",
		"LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED", "API_BASE_PATH",
		"DB_PATH", "PRICING_URL", "PRICING_TIMEOUT", "MAPS_URL",
		"MAPS_TIMEOUT", "ENRICH_WORKERS", "RATE_RPS", "RATE_BURST",
		"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME",
		"OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "vehicles.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PricingTimeout != 5*time.Second || cfg.MapsTimeout != 5*time.Second {
		t.Errorf("collaborator timeouts = %v / %v", cfg.PricingTimeout, cfg.MapsTimeout)
	}
	if cfg.EnrichWorkers != 8 {
		t.Errorf("EnrichWorkers = %d", cfg.EnrichWorkers)
	}
	if cfg.OTEL.ServiceName != "go-vehicles-backend" {
		t.Errorf("OTEL.ServiceName = %q", cfg.OTEL.ServiceName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("PRICING_URL", "http://pricing:8082")
	t.Setenv("PRICING_TIMEOUT", "750ms")
	t.Setenv("MAPS_URL", "http://maps:9191")
	t.Setenv("ENRICH_WORKERS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.PricingURL != "http://pricing:8082" || cfg.PricingTimeout != 750*time.Millisecond {
		t.Errorf("pricing = %q / %v", cfg.PricingURL, cfg.PricingTimeout)
	}
	if cfg.EnrichWorkers != 4 {
		t.Errorf("EnrichWorkers = %d", cfg.EnrichWorkers)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORS origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_NormalizesLogLevelAndGinMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("GIN_MODE", "bogus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":      "verbose",
		"ENRICH_WORKERS": "0",
		"RATE_BURST":     "0",
		"RATE_RPS":       "-1",
	}
	for key, bad := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, bad)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%q", key, bad)
			}
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"api":      "/api",
		"/api/":    "/api",
		"/api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
