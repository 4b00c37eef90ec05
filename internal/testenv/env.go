package testenv

import "path/filepath"

// Dirs contains isolated directories for bihucal config and cache in tests.
type Dirs struct {
	Base   string
	Config string
	Cache  string
}

// BihucalDirs returns conventional test directories rooted at base.
func BihucalDirs(base string) Dirs {
	return Dirs{
		Base:   base,
		Config: filepath.Join(base, "config"),
		Cache:  filepath.Join(base, "cache"),
	}
}

// Apply points BIHUCAL_* directories at base and clears environment that
// would otherwise leak a developer's real setup into tests.
func Apply(setenv func(string, string), base string) Dirs {
	dirs := BihucalDirs(base)
	setenv("BIHUCAL_CONFIG_DIR", dirs.Config)
	setenv("BIHUCAL_CACHE_DIR", dirs.Cache)
	setenv("BIHUCAL_CACHE_BACKEND", "")
	setenv("BIHUCAL_GEMINI_MODEL", "")
	setenv("GEMINI_API_KEY", "")
	return dirs
}
