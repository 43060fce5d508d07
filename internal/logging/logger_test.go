package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.WarnLevel, GetLevel(""))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
}

func TestSetup_File(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	name := filepath.Join(t.TempDir(), "tribase")
	Setup(LoggerSetupParams{LogFileName: name, LogLevel: "info", LogFormatJSON: true})

	logrus.Info("hello from the test")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	data, err := os.ReadFile(name + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from the test"`)
}
