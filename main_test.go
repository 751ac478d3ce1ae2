package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()
	require.NotNil(t, logger)
	logger.Sync()
}
