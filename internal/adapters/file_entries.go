package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"shellmenu/internal/types"
)

// FileEntryAdapter builds selections from paths on the local file system.
type FileEntryAdapter struct{}

func NewFileEntryAdapter() FileEntryAdapter {
	return FileEntryAdapter{}
}

// Entries stats every path and keeps the first occurrence of duplicates.
// Windows paths compare case-insensitively.
func (a FileEntryAdapter) Entries(paths []string) (types.Selection, error) {
	selection := make(types.Selection, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, raw := range paths {
		entry, err := a.entry(raw)
		if err != nil {
			return nil, err
		}
		key := entry.Path
		if runtime.GOOS == "windows" {
			key = strings.ToLower(key)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		selection = append(selection, entry)
	}
	return selection, nil
}

func (a FileEntryAdapter) entry(raw string) (types.Entry, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Entry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path is required")
	}
	if !filepath.IsAbs(trimmed) {
		return types.Entry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path must be absolute: " + trimmed)
	}
	path := filepath.Clean(trimmed)
	info, err := os.Stat(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return types.Entry{}, errbuilder.New().
			WithCode(code).
			WithMsg("failed to stat " + path).
			WithCause(err)
	}

	entry := types.Entry{
		Path:  path,
		Name:  filepath.Base(path),
		IsDir: info.IsDir(),
	}
	if dir := filepath.Dir(path); dir != path {
		entry.Parent = dir
	}
	return entry, nil
}
