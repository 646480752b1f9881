package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	a, b := logrus.New(), logrus.New()

	require.NoError(t, Setup(Options{Development: true}, a, b))
	assert.Equal(t, logrus.DebugLevel, a.GetLevel())
	assert.Equal(t, logrus.DebugLevel, b.GetLevel())

	require.NoError(t, Setup(Options{Level: "warn"}, a))
	assert.Equal(t, logrus.WarnLevel, a.GetLevel())

	assert.Error(t, Setup(Options{Level: "loud"}, a))
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bstree.log")
	log := logrus.New()
	log.SetOutput(os.Stderr)

	require.NoError(t, Setup(Options{File: path, MaxSizeMB: 1}, log))
	log.WithField("key", "F").Info("removed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key":"F"`)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_FILE_MAX_SIZE", "10")
	t.Setenv("LOG_FILE_MAX_AGE", "bogus")

	opts := OptionsFromEnv(false)
	assert.Equal(t, 10, opts.MaxSizeMB)
	assert.Equal(t, 28, opts.MaxAgeDays)
}
