package logger_test

import (
	"testing"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	lg, err := logger.New(config.Logger{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, lg)

	lg.Infof("logger %s", "ready")
}

func TestNewBadLevel(t *testing.T) {
	_, err := logger.New(config.Logger{Level: "loud"})
	require.Error(t, err)
}
