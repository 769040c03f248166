package types

import "strings"

// Entry is one file-system object selected by the hosting application.
// Parent is empty when the entry has no parent directory (a volume root).
type Entry struct {
	Path   string `yaml:"path"`
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	IsDir  bool   `yaml:"is_dir"`
}

// ParentDir returns the entry's parent directory and whether it has one.
func (e Entry) ParentDir() (string, bool) {
	parent := strings.TrimSpace(e.Parent)
	return parent, parent != ""
}

// Selection is an ordered collection of entries.
type Selection []Entry

func (s Selection) Len() int {
	return len(s)
}

func (s Selection) Paths() []string {
	paths := make([]string, 0, len(s))
	for _, entry := range s {
		paths = append(paths, entry.Path)
	}
	return paths
}

// SameDirectory compares two directory paths the way the Windows file system
// does: case-insensitive, ignoring trailing separators and separator style.
func SameDirectory(a string, b string) bool {
	return strings.EqualFold(normalizeDirectory(a), normalizeDirectory(b))
}

func normalizeDirectory(value string) string {
	value = strings.ReplaceAll(strings.TrimSpace(value), "/", `\`)
	return strings.TrimRight(value, `\`)
}
