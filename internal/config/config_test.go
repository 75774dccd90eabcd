package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// Database and accounts
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", " ops@example.com ")
	t.Setenv("SESSION_TTL", "72h")

	// Rate limiting (invalid values fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging fields unexpected: %+v", cfg)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBPath != "db.sqlite" {
		t.Fatalf("database fields unexpected: %+v", cfg)
	}
	if cfg.BootstrapAdminEmail != "ops@example.com" || cfg.SessionTTL != 72*time.Hour {
		t.Fatalf("account fields unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate fields unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("CORS origins unexpected: %+v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security fields unexpected: %+v", cfg.Security)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure ||
		cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("OTEL fields unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad read timeout", map[string]string{"READ_TIMEOUT": "-1s"}, "timeouts"},
		{"bad max header bytes", map[string]string{"MAX_HEADER_BYTES": "-5"}, "MAX_HEADER_BYTES"},
		{"bad driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"postgres without dsn", map[string]string{"DB_DRIVER": "postgres"}, "DB_DSN"},
		{"bad session ttl", map[string]string{"SESSION_TTL": "-1h"}, "SESSION_TTL"},
		{"bad rate rps", map[string]string{"RATE_RPS": "-2"}, "RATE_RPS"},
		{"bad rate burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"bad hsts age", map[string]string{"HSTS_MAX_AGE": "-1h"}, "HSTS_MAX_AGE"},
		{"bad sampler", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_STR", "value")
	if getenv("X_STR", "d") != "value" {
		t.Fatalf("getenv should read env")
	}
	if getenv("X_MISSING", "d") != "d" {
		t.Fatalf("getenv should default")
	}
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("empty value should default")
	}
}

func TestHelpers_Parsers(t *testing.T) {
	t.Setenv("X_F", "1.25")
	if getfloat("X_F", 0) != 1.25 {
		t.Fatalf("getfloat parse")
	}
	t.Setenv("X_F_BAD", "nan?")
	if getfloat("X_F_BAD", 2.5) != 2.5 {
		t.Fatalf("getfloat fallback")
	}
	t.Setenv("X_I", "42")
	if getint("X_I", 0) != 42 {
		t.Fatalf("getint parse")
	}
	t.Setenv("X_D", "90s")
	if getdur("X_D", 0) != 90*time.Second {
		t.Fatalf("getdur parse")
	}
	if getdur("X_D_MISSING", time.Minute) != time.Minute {
		t.Fatalf("getdur fallback")
	}
}

func TestHelpers_getbool(t *testing.T) {
	truthy := []string{"1", "true", "YES", "y", "On"}
	for _, v := range truthy {
		t.Setenv("X_B", v)
		if !getbool("X_B", false) {
			t.Fatalf("%q should be true", v)
		}
	}
	falsy := []string{"0", "false", "NO", "n", "Off"}
	for _, v := range falsy {
		t.Setenv("X_B", v)
		if getbool("X_B", true) {
			t.Fatalf("%q should be false", v)
		}
	}
	t.Setenv("X_B", "maybe")
	if !getbool("X_B", true) {
		t.Fatalf("unparseable should default")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Fatalf("empty CSV should be nil, got %v", got)
	}
	if got := splitCSV(" a , ,b,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("splitCSV got %v", got)
	}

	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"/api/v1": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

// Ensure tests don't leak env to others.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	cfg := MustLoad()
	if cfg.Port == "" {
		t.Fatalf("expected defaults to load")
	}
}
