package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("PORT", "9999") // SERVER_PORT wins
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v2/") // no leading slash + trailing slash -> "/api/v2"

	// Database
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "demo")
	t.Setenv("DB_PASSWORD", "s3cret") // fallback for DB_PASS
	t.Setenv("DB_NAME", "faults")
	t.Setenv("DB_BAD_HOST", "nowhere.invalid")

	// External / files
	t.Setenv("EXTERNAL_API_BASE_URL", "http://countries.local/v3.1/")
	t.Setenv("EXTERNAL_API_TIMEOUT", "750ms")
	t.Setenv("FILES_DIR", "testdata/files")

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

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	// Database: postgres picks its own default port
	want := DBConfig{
		Driver:  DriverPostgres,
		Host:    "db.internal",
		Port:    5432,
		User:    "demo",
		Pass:    "s3cret",
		Name:    "faults",
		Path:    "app.db",
		BadHost: "nowhere.invalid",
		Tracing: true,
	}
	if cfg.DB != want {
		t.Fatalf("db config unexpected: %+v", cfg.DB)
	}

	// External / files
	if cfg.External.BaseURL != "http://countries.local/v3.1" || cfg.External.Timeout != 750*time.Millisecond {
		t.Fatalf("external unexpected: %+v", cfg.External)
	}
	if cfg.FilesDir != "testdata/files" {
		t.Fatalf("files dir unexpected: %q", cfg.FilesDir)
	}

	// Web protection
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("default port expected 5000, got %q", cfg.Port)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("API_BASE_PATH default expected '/api', got %q", cfg.APIBasePath)
	}
	if cfg.DB.Driver != DriverMySQL || cfg.DB.Port != 3306 || cfg.DB.Name != "ssdd_p02_bd" || cfg.DB.Pass != "" {
		t.Fatalf("db defaults unexpected: %+v", cfg.DB)
	}
	if cfg.External.BaseURL != "https://restcountries.com/v3.1" || cfg.External.Timeout != 0 {
		t.Fatalf("external defaults unexpected: %+v", cfg.External)
	}
	if cfg.FilesDir != "archivos" {
		t.Fatalf("files dir default unexpected: %q", cfg.FilesDir)
	}
	if cfg.OTEL.Enabled || cfg.DB.Tracing {
		t.Fatalf("tracing must be disabled by default")
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "7070")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("expected PORT fallback, got %q", cfg.Port)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"empty DB_HOST", map[string]string{"DB_HOST": "  "}, "DB_HOST must not be empty"},
		{"empty DB_NAME", map[string]string{"DB_NAME": "  "}, "DB_NAME must not be empty"},
		{"empty DB_PATH for sqlite", map[string]string{"DB_DRIVER": "sqlite", "DB_PATH": "  "}, "DB_PATH must not be empty"},
		{"port out of range", map[string]string{"DB_PORT": "70000"}, "DB_PORT"},
		{"empty bad host", map[string]string{"DB_BAD_HOST": " "}, "DB_BAD_HOST"},
		{"relative api url", map[string]string{"EXTERNAL_API_BASE_URL": "restcountries.com"}, "EXTERNAL_API_BASE_URL"},
		{"negative api timeout", map[string]string{"EXTERNAL_API_TIMEOUT": "-1s"}, "EXTERNAL_API_TIMEOUT"},
		{"empty files dir", map[string]string{"FILES_DIR": "  "}, "FILES_DIR"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"}
	for i, v := range trueVals {
		k := "B_T_" + string(rune('a'+i))
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	falseVals := []string{"0", "false", "FALSE", " no ", "N", "off", "Off"}
	for i, v := range falseVals {
		k := "B_F_" + string(rune('a'+i))
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	// unrecognized and empty values keep the default
	t.Setenv("B_ODD", "maybe")
	if !getbool("B_ODD", true) || getbool("B_ODD", false) {
		t.Fatalf("getbool should keep default on unrecognized value")
	}
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	in := " a, ,b ,  c  ,"
	want := []string{"a", "b", "c"}
	if got := splitCSV(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("api") != "/api" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/api/") != "/api" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

// Ensure the caller's environment does not leak into defaults.
func TestMain(m *testing.M) {
	for _, k := range []string{
		"PORT", "SERVER_PORT", "LOG_LEVEL", "GIN_MODE", "API_BASE_PATH",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_PASSWORD", "DB_NAME", "DB_PATH", "DB_BAD_HOST",
		"EXTERNAL_API_BASE_URL", "EXTERNAL_API_TIMEOUT", "FILES_DIR", "OTEL_ENABLED",
	} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
