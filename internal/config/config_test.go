package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "witch.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, "site_url: https://blog.example.com\nadmin_api_key: id:secret\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SiteURL != "https://blog.example.com" {
		t.Fatalf("site_url = %q", cfg.SiteURL)
	}
	if cfg.DefaultStatus != "draft" {
		t.Fatalf("default_status = %q, want draft", cfg.DefaultStatus)
	}
	if !cfg.ConvertWikilinks {
		t.Fatal("convert_wikilinks should default to true")
	}
	if cfg.R2.ImagePath != "images" {
		t.Fatalf("image_path = %q, want images", cfg.R2.ImagePath)
	}
}

func TestLoadFromExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, "convert_wikilinks: false\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConvertWikilinks {
		t.Fatal("explicit false must win over the default")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "site_url: [unclosed\n")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("want error for malformed yaml")
	}
}

func TestEnvKeyOverridesFile(t *testing.T) {
	t.Setenv("GHOST_ADMIN_API_KEY", "env:override")
	path := writeConfig(t, "admin_api_key: file:key\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminAPIKey != "env:override" {
		t.Fatalf("admin_api_key = %q, want env override", cfg.AdminAPIKey)
	}
}

func TestR2Ready(t *testing.T) {
	full := R2{Enabled: true, AccountID: "acct", AccessKeyID: "ak", SecretAccessKey: "sk", Bucket: "b"}
	if !full.Ready() {
		t.Fatal("fully configured block should be ready")
	}
	cases := map[string]R2{
		"disabled":     {AccountID: "acct", AccessKeyID: "ak", SecretAccessKey: "sk", Bucket: "b"},
		"no account":   {Enabled: true, AccessKeyID: "ak", SecretAccessKey: "sk", Bucket: "b"},
		"no bucket":    {Enabled: true, AccountID: "acct", AccessKeyID: "ak", SecretAccessKey: "sk"},
		"blank secret": {Enabled: true, AccountID: "acct", AccessKeyID: "ak", SecretAccessKey: "   ", Bucket: "b"},
		"empty":        {},
	}
	for name, r := range cases {
		if r.Ready() {
			t.Errorf("%s: Ready() = true, want false", name)
		}
	}
}
