package appConfig

import (
	"os"
	"path/filepath"
	"testing"

	"emperror.dev/errors"
)

func fakeEnvironment(home string, vars map[string]string) Environment {
	return Environment{
		Getenv: func(key string) string { return vars[key] },
		UserHomeDir: func() (string, error) {
			if home == "" {
				return "", errors.New("$HOME is not defined")
			}
			return home, nil
		},
	}
}

func TestResolveBaseDir(t *testing.T) {
	home := t.TempDir()
	tests := []struct {
		name     string
		flag     string
		env      map[string]string
		config   AppConfig
		expected string
	}{
		{
			name:     "Default under home",
			expected: filepath.Join(home, ".pacl"),
		},
		{
			name:     "Config file value",
			config:   AppConfig{BaseDir: "~/src"},
			expected: filepath.Join(home, "src"),
		},
		{
			name:     "Environment beats config",
			env:      map[string]string{BaseDirEnvVar: "/srv/mirror"},
			config:   AppConfig{BaseDir: "~/src"},
			expected: filepath.Clean("/srv/mirror"),
		},
		{
			name:     "Flag beats environment",
			flag:     "~/flagged",
			env:      map[string]string{BaseDirEnvVar: "/srv/mirror"},
			config:   AppConfig{BaseDir: "~/src"},
			expected: filepath.Join(home, "flagged"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.ResolveBaseDir(tt.flag, fakeEnvironment(home, tt.env))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolveBaseDir_NoHome(t *testing.T) {
	config := AppConfig{}
	_, err := config.ResolveBaseDir("", fakeEnvironment("", nil))
	if !errors.Is(err, ErrHomeDirectoryNotDetected) {
		t.Errorf("expected ErrHomeDirectoryNotDetected, got %v", err)
	}

	for _, tildeDir := range []string{"~", "~/src"} {
		_, err = config.ResolveBaseDir(tildeDir, fakeEnvironment("", nil))
		if !errors.Is(err, ErrHomeDirectoryNotDetected) {
			t.Errorf("%s: expected ErrHomeDirectoryNotDetected, got %v", tildeDir, err)
		}
	}
	_, err = (&AppConfig{BaseDir: "~/code"}).ResolveBaseDir("", fakeEnvironment("", nil))
	if !errors.Is(err, ErrHomeDirectoryNotDetected) {
		t.Errorf("config baseDir: expected ErrHomeDirectoryNotDetected, got %v", err)
	}

	got, err := config.ResolveBaseDir("/explicit", fakeEnvironment("", nil))
	if err != nil {
		t.Fatalf("explicit base dir should not need a home directory: %v", err)
	}
	if got != filepath.Clean("/explicit") {
		t.Errorf("expected /explicit, got %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	home := t.TempDir()
	content := "baseDir: ~/code\ndefaultHost: gitlab.com\ngitCommand: /usr/local/bin/git\n"
	if err := os.WriteFile(filepath.Join(home, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig("", fakeEnvironment(home, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.BaseDir != "~/code" {
		t.Errorf("expected baseDir ~/code, got %q", config.BaseDir)
	}
	if config.GetDefaultHost() != "gitlab.com" {
		t.Errorf("expected gitlab.com, got %q", config.GetDefaultHost())
	}
	if config.GetGitCommand() != "/usr/local/bin/git" {
		t.Errorf("expected /usr/local/bin/git, got %q", config.GetGitCommand())
	}
}

func TestLoadConfig_MissingDefaultFile(t *testing.T) {
	config, err := LoadConfig("", fakeEnvironment(t.TempDir(), nil))
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if config.GetDefaultHost() != "github.com" {
		t.Errorf("expected github.com, got %q", config.GetDefaultHost())
	}
	if config.GetGitCommand() != "git" {
		t.Errorf("expected git, got %q", config.GetGitCommand())
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), fakeEnvironment(t.TempDir(), nil))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacl.yaml")
	if err := os.WriteFile(path, []byte("basedir: /typo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path, fakeEnvironment(t.TempDir(), nil))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}
