package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed models/*.yaml
var assetsFS embed.FS

// FS returns the asset tree, preferring files under ./assets on disk so models
// can be edited without a rebuild, and falling back to the embedded copies.
func FS() fs.FS {
	return overlayFS{disk: os.DirFS("assets"), embedded: assetsFS}
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return fs.ReadFile(FS(), cleanAssetPath(path))
}

type overlayFS struct {
	disk     fs.FS
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if f, err := o.disk.Open(name); err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
