package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// File identifies one file in the vault. Path is vault-relative with
// forward slashes; it is the identity key for upload deduplication.
type File struct {
	Path      string
	Name      string // base name with extension
	Basename  string // base name without extension
	Extension string // without the leading dot
}

// Graph is the file lookup surface the pipeline works against. The
// directory vault below is the production implementation; tests build
// small graphs from t.TempDir.
type Graph interface {
	ByPath(path string) (*File, bool)
	ResolveLink(token, fromPath string) *File
	Files() []*File
	ReadText(f *File) (string, error)
	ReadBinary(f *File) ([]byte, error)
	WriteText(f *File, content string) error
	Name() string
}

// DirVault indexes a directory tree on open and serves lookups from the
// index. Reads always go to disk so a publish sees fresh content.
type DirVault struct {
	root  string
	files []*File          // sorted by path for deterministic resolution
	index map[string]*File // path -> file
}

// Open walks the directory and indexes every regular file. Hidden
// directories (.git, .obsidian, .trash) are skipped.
func Open(root string) (*DirVault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	v := &DirVault{root: abs, index: make(map[string]*File)}
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != abs {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		f := newFile(filepath.ToSlash(rel))
		v.files = append(v.files, f)
		v.index[f.Path] = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index vault %s: %w", root, err)
	}
	sort.Slice(v.files, func(i, j int) bool { return v.files[i].Path < v.files[j].Path })
	return v, nil
}

func newFile(rel string) *File {
	name := path.Base(rel)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return &File{
		Path:      rel,
		Name:      name,
		Basename:  strings.TrimSuffix(name, path.Ext(name)),
		Extension: ext,
	}
}

// Name returns the vault's display name, used by the attribution footer.
func (v *DirVault) Name() string {
	return filepath.Base(v.root)
}

func (v *DirVault) Files() []*File {
	return v.files
}

// ByPath looks up an exact vault-relative path.
func (v *DirVault) ByPath(p string) (*File, bool) {
	f, ok := v.index[path.Clean(filepath.ToSlash(p))]
	return f, ok
}

// ResolveLink resolves a link token the way the note format does: tokens
// with a directory component resolve relative to fromPath (or the root
// when fromPath is empty), bare tokens match any file by name or basename.
func (v *DirVault) ResolveLink(token, fromPath string) *File {
	token = filepath.ToSlash(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	if strings.Contains(token, "/") {
		base := ""
		if fromPath != "" {
			base = path.Dir(fromPath)
		}
		if f, ok := v.ByPath(path.Join(base, token)); ok {
			return f
		}
		return nil
	}
	if fromPath != "" {
		if f, ok := v.ByPath(path.Join(path.Dir(fromPath), token)); ok {
			return f
		}
	}
	for _, f := range v.files {
		if f.Name == token || f.Basename == token {
			return f
		}
	}
	return nil
}

func (v *DirVault) abs(f *File) string {
	return filepath.Join(v.root, filepath.FromSlash(f.Path))
}

func (v *DirVault) ReadText(f *File) (string, error) {
	data, err := os.ReadFile(v.abs(f))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (v *DirVault) ReadBinary(f *File) ([]byte, error) {
	return os.ReadFile(v.abs(f))
}

func (v *DirVault) WriteText(f *File, content string) error {
	return os.WriteFile(v.abs(f), []byte(content), 0644)
}
