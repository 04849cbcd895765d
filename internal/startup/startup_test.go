package startup

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Version should never be empty")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should never be empty")
	}
	if info.OS == "" || info.Arch == "" {
		t.Errorf("OS/Arch should be populated, got %s/%s", info.OS, info.Arch)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("DATABASE_DIR", tmpDir)
	t.Setenv("PORT", "")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("PERMISSIONS_FILE", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Port != "8080" {
		t.Errorf("Port = %q, want 8080", config.Port)
	}
	if config.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want 9090", config.MetricsPort)
	}
	if !config.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if config.DatabasePath != filepath.Join(tmpDir, "catalog.db") {
		t.Errorf("DatabasePath = %q", config.DatabasePath)
	}
}

func TestLoadConfigCreatesDatabaseDir(t *testing.T) {
	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "nested", "db")
	t.Setenv("DATABASE_DIR", dbDir)

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	info, err := os.Stat(dbDir)
	if err != nil || !info.IsDir() {
		t.Errorf("Database directory was not created: %v", err)
	}
}

func TestLoadPermissionsDefault(t *testing.T) {
	config := &Config{}

	provider, err := config.LoadPermissions()
	if err != nil {
		t.Fatalf("LoadPermissions: %v", err)
	}

	if _, ok := provider.(permissions.AllowAll); !ok {
		t.Errorf("Expected AllowAll provider, got %T", provider)
	}
}

func TestLoadPermissionsFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "permissions.json")
	content := `{
		"use-app": null,
		"edit-content": {"fields": ["content", "tags"], "filter": "file:music/*"}
	}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing permissions file: %v", err)
	}

	config := &Config{PermissionsFile: file}
	provider, err := config.LoadPermissions()
	if err != nil {
		t.Fatalf("LoadPermissions: %v", err)
	}

	ctx := context.Background()

	r, ok := provider.Restrictions(ctx, permissions.CapUseApp)
	if !ok || r != nil {
		t.Errorf("use-app: got %+v ok=%v, want nil/true", r, ok)
	}

	r, ok = provider.Restrictions(ctx, permissions.CapEditContent)
	if !ok || r == nil {
		t.Fatalf("edit-content: got %+v ok=%v", r, ok)
	}
	if r.Filter != "file:music/*" || len(r.Fields) != 2 {
		t.Errorf("edit-content restriction: %+v", r)
	}

	if _, ok := provider.Restrictions(ctx, "unknown-capability"); ok {
		t.Error("Unknown capability should not be held")
	}
}

func TestLoadPermissionsBadFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "permissions.json")
	if err := os.WriteFile(file, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("Writing permissions file: %v", err)
	}

	config := &Config{PermissionsFile: file}
	if _, err := config.LoadPermissions(); err == nil {
		t.Error("Malformed permissions file must fail")
	}

	config = &Config{PermissionsFile: filepath.Join(tmpDir, "missing.json")}
	if _, err := config.LoadPermissions(); err == nil {
		t.Error("Missing permissions file must fail")
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/content", func(http.ResponseWriter, *http.Request) {}).Methods("GET")
	router.HandleFunc("/api/content/metadata", func(http.ResponseWriter, *http.Request) {}).Methods("PATCH")
	router.HandleFunc("/healthz", func(http.ResponseWriter, *http.Request) {})

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}

	found := map[string]bool{}
	for _, r := range routes {
		found[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{"GET /api/content", "PATCH /api/content/metadata", "* /healthz"} {
		if !found[want] {
			t.Errorf("Route %q missing from %v", want, routes)
		}
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"banana", true, true},
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL_VAR", tt.value)
		if got := getEnvBool("TEST_BOOL_VAR", tt.defaultValue); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}
