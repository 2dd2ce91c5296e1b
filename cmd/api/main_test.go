package main

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogger(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	configureLogger()

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
