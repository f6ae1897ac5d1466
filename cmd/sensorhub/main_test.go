package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		given    string
		expected byte
		err      bool
	}{
		{"0x17", 0x17, false},
		{"23", 0x17, false},
		{"0x7f", 0x7F, false},
		{"0x80", 0, true},
		{"0x100", 0, true},
		{"hub", 0, true},
	}
	for _, test := range tests {
		t.Run(test.given, func(t *testing.T) {
			addr, err := parseAddress(test.given)
			if test.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, addr)
		})
	}
}

func TestRun_ExitCodes(t *testing.T) {
	exiter := cli.OsExiter
	defer func() { cli.OsExiter = exiter }()
	var exitCode int
	cli.OsExiter = func(code int) { exitCode = code }

	var out, errOut bytes.Buffer
	console.SetOutput(&out, &errOut)
	defer console.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	tests := []struct {
		name string
		args []string
	}{
		{"unknown adapter", []string{"sensorhub", "--adapter", "bogus", "read"}},
		{"unknown adapter humidity", []string{"sensorhub", "--adapter", "bogus", "humidity"}},
		{"unknown adapter verbose", []string{"sensorhub", "--verbose", "--adapter", "bogus", "temperature", "--sensor", "bmp280"}},
		{"unknown adapter from env", []string{"sensorhub", "presence"}},
		{"address out of range", []string{"sensorhub", "--address", "0x80", "light"}},
		{"address not a number", []string{"sensorhub", "--address", "hub", "pressure"}},
		{"status", []string{"sensorhub", "--adapter", "bogus", "--speed", "400000", "status"}},
	}
	t.Setenv("SENSORHUB_ADAPTER", "bogus")
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			exitCode = 0
			var code int
			assert.NotPanics(t, func() { code = run(test.args) })
			assert.Equal(t, 1, code)
			assert.Equal(t, 1, exitCode)
		})
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	assert.NoError(t, app.Run([]string{"sensorhub", "--version"}))
	assert.Contains(t, out.String(), AppVersion+"-"+BuildTime+"-"+GitCommit)

	out.Reset()
	app = newApp()
	app.Writer = &out
	assert.NoError(t, app.Run([]string{"sensorhub", "-v"}))
	assert.Contains(t, out.String(), AppVersion)
}

type failingCloser struct {
	err   error
	calls int
}

func (f *failingCloser) Close() error {
	f.calls++
	return f.err
}

func (f *failingCloser) Finalize() error {
	f.calls++
	return f.err
}

func TestCleanupReportsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	console.SetOutput(&out, &errOut)
	defer console.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	ok := &failingCloser{}
	closeBus(ok)
	finalize(ok)
	assert.Equal(t, 2, ok.calls)
	assert.Empty(t, errOut.String())

	broken := &failingCloser{err: errors.New("device busy")}
	closeBus(broken)
	finalize(broken)
	assert.Contains(t, errOut.String(), "error closing bus")
	assert.Contains(t, errOut.String(), "error finalizing adapter")
}

func TestNewApp_Commands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"read", "temperature", "light", "humidity", "pressure", "presence", "status", "usb", "mcp2221"} {
		assert.NotNil(t, app.Command(name), name)
	}
	assert.NotNil(t, app.Command("temp"))
	assert.NotNil(t, app.Command("pir"))
}
