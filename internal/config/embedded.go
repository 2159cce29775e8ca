package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tildaslashalef/pastereview/internal/loggy"
)

//go:embed env.sample
var configFS embed.FS

// SetupConfigDirectory creates configDir and writes the sample .env into it.
// It returns the path of the written file.
func SetupConfigDirectory(configDir string, backupExisting bool) (string, error) {
	if configDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return "", err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	target := filepath.Join(configDir, ".env")
	if err := ExtractEmbeddedFile("env.sample", target, backupExisting); err != nil {
		return "", err
	}
	return target, nil
}

// ExtractEmbeddedFile writes an embedded file to targetPath. An existing file
// is left alone unless backupExisting is set, in which case it is copied to
// "<target>.<date>.bak" first and then overwritten.
func ExtractEmbeddedFile(embeddedPath, targetPath string, backupExisting bool) error {
	if _, err := os.Stat(targetPath); err == nil {
		if !backupExisting {
			return nil
		}

		backupPath := fmt.Sprintf("%s.%s.bak", targetPath, time.Now().Format(time.DateOnly))
		existing, err := os.ReadFile(targetPath)
		if err != nil {
			return fmt.Errorf("failed to read existing file for backup: %w", err)
		}
		if err := os.WriteFile(backupPath, existing, 0600); err != nil {
			return fmt.Errorf("failed to write backup file: %w", err)
		}
		loggy.Info("Created backup of existing file", "original", targetPath, "backup", backupPath)
	}

	data, err := configFS.ReadFile(embeddedPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return err
	}

	// The file may end up holding an API key
	if err := os.WriteFile(targetPath, data, 0600); err != nil {
		return err
	}

	loggy.Info("Extracted embedded file", "source", embeddedPath, "target", targetPath)
	return nil
}
