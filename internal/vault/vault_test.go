package vault

import (
	"os"
	"path/filepath"
	"testing"
)

// buildVault writes the given relative-path -> content map under a temp
// dir and opens it.
func buildVault(t *testing.T, files map[string]string) *DirVault {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	v, err := Open(root)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	return v
}

func TestOpenIndexesAndSkipsHiddenDirs(t *testing.T) {
	v := buildVault(t, map[string]string{
		"notes/post.md":    "hello",
		"img/photo.png":    "binary",
		".obsidian/app.js": "ignored",
	})
	if len(v.Files()) != 2 {
		t.Fatalf("expected 2 files, got %d", len(v.Files()))
	}
	if _, ok := v.ByPath("notes/post.md"); !ok {
		t.Fatalf("post.md not indexed")
	}
	if _, ok := v.ByPath(".obsidian/app.js"); ok {
		t.Fatalf("hidden dir should be skipped")
	}
}

func TestFileIdentity(t *testing.T) {
	v := buildVault(t, map[string]string{"img/photo.PNG": "x"})
	f, ok := v.ByPath("img/photo.PNG")
	if !ok {
		t.Fatalf("not found")
	}
	if f.Name != "photo.PNG" || f.Basename != "photo" || f.Extension != "PNG" {
		t.Fatalf("unexpected identity: %+v", f)
	}
}

func TestResolveLinkRelativeAndBare(t *testing.T) {
	v := buildVault(t, map[string]string{
		"notes/post.md":      "a",
		"notes/img/pic.png":  "b",
		"shared/diagram.png": "c",
	})
	if f := v.ResolveLink("img/pic.png", "notes/post.md"); f == nil || f.Path != "notes/img/pic.png" {
		t.Fatalf("relative link failed: %+v", f)
	}
	if f := v.ResolveLink("shared/diagram.png", ""); f == nil || f.Path != "shared/diagram.png" {
		t.Fatalf("root link failed: %+v", f)
	}
	if f := v.ResolveLink("diagram.png", "notes/post.md"); f == nil || f.Path != "shared/diagram.png" {
		t.Fatalf("bare name should match anywhere: %+v", f)
	}
	if f := v.ResolveLink("post", ""); f == nil || f.Path != "notes/post.md" {
		t.Fatalf("bare basename should match: %+v", f)
	}
	if f := v.ResolveLink("missing.png", "notes/post.md"); f != nil {
		t.Fatalf("expected miss, got %+v", f)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	v := buildVault(t, map[string]string{"note.md": "before"})
	f, _ := v.ByPath("note.md")
	if err := v.WriteText(f, "after"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := v.ReadText(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "after" {
		t.Fatalf("expected %q, got %q", "after", got)
	}
	bin, err := v.ReadBinary(f)
	if err != nil || string(bin) != "after" {
		t.Fatalf("binary read mismatch: %q %v", bin, err)
	}
}
