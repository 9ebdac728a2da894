package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = "Events in Log:\n" +
	"Date: 1999-05-27 02:32:46 +0000 UTC, Result: success, IP: 195.151.62.18, Method: GET, URL: /mise/, Response: 200\n" +
	"Date: 1999-05-27 02:41:47 +0000 UTC, Result: success, IP: 195.209.248.12, Method: GET, URL: soft.htm, Response: 200\n"

func TestRunSample(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, sampleReport, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-file", path}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, sampleReport, stdout.String())
}

func TestRunPartialFileExitsZero(t *testing.T) {
	doc := strings.Replace(sampleLog, "<response>200</response>\n    </event>\n</log>", "<response>n/a</response>\n    </event>\n</log>", 1)
	require.NotEqual(t, sampleLog, doc)

	path := filepath.Join(t.TempDir(), "access.xml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-file", path}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, 2, strings.Count(stdout.String(), "\n"))
	assert.Contains(t, stderr.String(), "error parsing XML")
}

func TestRunConfigLayout(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "evlog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report:\n  time_layout: \"2006-01-02T15:04:05\"\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Date: 1999-05-27T02:32:46, Result: success")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"extra argument", []string{"access.xml"}, 2},
		{"follow without file", []string{"-follow"}, 1},
		{"follow and watch", []string{"-file", "a.xml", "-follow", "-watch"}, 1},
		{"missing config", []string{"-config", "/nonexistent/evlog.yaml"}, 1},
		{"missing input", []string{"-file", "/nonexistent/access.xml"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Equal(t, "evlog version dev\n", stdout.String())
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-follow")
}
