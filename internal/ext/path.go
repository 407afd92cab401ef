package ext

import (
	"os"
	"path/filepath"
	"strings"
)

// ReplaceHomeDirWithTilde replaces the home directory in an absolute path with ~
func ReplaceHomeDirWithTilde(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return replaceHomeDir(path, homeDir)
}

func replaceHomeDir(path string, homeDir string) string {
	if homeDir == "" {
		return path
	}
	if path == homeDir {
		return "~"
	}
	if strings.HasPrefix(path, homeDir+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, homeDir)
	}
	return path
}

// ExpandTilde is the inverse of ReplaceHomeDirWithTilde for paths read from config files and flags.
func ExpandTilde(path string, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
