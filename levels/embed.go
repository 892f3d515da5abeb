package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const DefaultLevel = "level1.yaml"

//go:embed *.yaml
var LevelsFS embed.FS

// DiskDir is checked before the embedded files so levels can be edited
// without a rebuild.
var DiskDir = "levels"

func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(diskLevelPath(clean)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskLevelPath(cleanLevelPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded level files.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isLevelFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}

func trimExt(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

// FileName returns the level file a name refers to, with the levels/ prefix
// stripped and the .yaml extension added when missing.
func FileName(name string) string {
	return cleanLevelPath(name)
}
