package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/aiplayground/config"
	"github.com/sirupsen/logrus"
)

func TestInitializeFile(t *testing.T) {
	defer func() { Log = nil }()

	path := filepath.Join(t.TempDir(), "playground.log")
	Initialize(&config.LoggingConfig{
		Level:  "debug",
		Format: "json",
		Output: path,
	})

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level: want debug, have %v", Log.GetLevel())
	}

	Log.WithField("episode", 3).Info("trained")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read log file: %v", err)
	}
	if !strings.Contains(string(data), `"episode":3`) {
		t.Errorf("log file should contain the JSON field, have %q", data)
	}
}

func TestInitializeBadLevel(t *testing.T) {
	defer func() { Log = nil }()

	Initialize(&config.LoggingConfig{Level: "loud", Format: "text",
		Output: "stderr"})
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level: want info, have %v", Log.GetLevel())
	}
}

func TestGetLoggerFallback(t *testing.T) {
	Log = nil
	defer func() { Log = nil }()

	l := GetLogger()
	if l == nil {
		t.Fatal("GetLogger should never return nil")
	}
	if GetLogger() != l {
		t.Error("GetLogger should return the same instance")
	}
}
