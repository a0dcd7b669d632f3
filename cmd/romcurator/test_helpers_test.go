package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romcurator/internal/catalog"
	"romcurator/internal/config"
	"romcurator/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	store      *catalog.Store
	configPath string
}

// setupCLITestEnv builds a config pointing at temp paths, writes it to disk
// for the --config flag, and opens a seeding store on the same database the
// commands will use.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	store := testsupport.MustOpenStore(t, cfg)

	return &cliTestEnv{cfg: cfg, store: store, configPath: configPath}
}

// seedAliasedPlatform creates a canonical platform, a DAT-side alias, and the
// edge between them. Releases go on the canonical id; DAT entries shelve under
// the alias id, which is the only way they land in the matching scope.
func seedAliasedPlatform(t *testing.T, env *cliTestEnv, canonicalName, aliasName string) (int64, int64) {
	t.Helper()

	canonicalID := testsupport.SeedPlatform(t, env.store, canonicalName)
	aliasID := testsupport.SeedPlatform(t, env.store, aliasName)
	testsupport.SeedPlatformLink(t, env.store, canonicalID, aliasID)
	return canonicalID, aliasID
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cliArgs := args
	if configPath != "" {
		cliArgs = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(cliArgs)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	content := fmt.Sprintf("[paths]\ndatabase = %q\nlog_dir = %q\n", cfg.Paths.Database, cfg.Paths.LogDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()

	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
