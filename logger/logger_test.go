package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/betlog/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, Level("debug"))
	assert.Equal(t, logrus.ErrorLevel, Level("error"))
	assert.Equal(t, logrus.WarnLevel, Level(""))
	assert.Equal(t, logrus.WarnLevel, Level("loud"))
}

func TestWriter_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	w := Writer(config.Log{}, &console)
	assert.Same(t, &console, w)
}

func TestWriter_WithFile(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "betlog.log")
	w := Writer(config.Log{File: file, MaxSize: 1}, &console)

	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)

	assert.Equal(t, "hello\n", console.String())
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
