package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/callebjorkell/status-lcd/internal/lcd"
	"github.com/callebjorkell/status-lcd/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
mirrored: true
watchdog: /dev/watchdog
pins:
  data: [GPIO2, GPIO3, GPIO7, GPIO8, GPIO9, GPIO10, GPIO11, GPIO12]
  rs: GPIO22
github:
  token: arst
jenkins:
  url: https://jenkins.local
  user: me
  token: tsra
feeds:
  - type: github
    repo: callebjorkell/big-switch
  - type: jenkins
    job: deploy
    pollingInterval: 5
`

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	assert.True(t, c.Mirrored)
	assert.Equal(t, "/dev/watchdog", c.Watchdog)
	assert.Equal(t, "arst", c.Github.Token)
	assert.Equal(t, "tsra", c.Jenkins.Token)
	require.Len(t, c.Feeds, 2)
	assert.Equal(t, "main", c.Feeds[0].Ref)
	assert.Equal(t, defaultPollingInterval, c.Feeds[0].PollingInterval)
	assert.Equal(t, 5, c.Feeds[1].PollingInterval)

	owner, repo := c.Feeds[0].OwnerRepo()
	assert.Equal(t, "callebjorkell", owner)
	assert.Equal(t, "big-switch", repo)
}

func TestBoard(t *testing.T) {
	c, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	b := c.Board()
	assert.Equal(t, "GPIO2", b.Data[0])
	assert.Equal(t, "GPIO12", b.Data[7])
	assert.Equal(t, "GPIO22", b.RS)
	assert.Equal(t, lcd.DefaultBoard.RW, b.RW)
	assert.Equal(t, lcd.DefaultBoard.EN, b.EN)
	assert.True(t, b.Mirrored)

	assert.Equal(t, lcd.DefaultBoard, Config{}.Board())
}

func TestParseConfigErrors(t *testing.T) {
	tt := []struct {
		name   string
		config string
	}{
		{"invalid yaml", "feeds: [a"},
		{"too few data pins", "pins:\n  data: [GPIO1, GPIO2]"},
		{"github without owner", "feeds:\n  - type: github\n    repo: big-switch"},
		{"jenkins without job", "jenkins:\n  url: http://j\nfeeds:\n  - type: jenkins"},
		{"jenkins without url", "feeds:\n  - type: jenkins\n    job: deploy"},
		{"unknown type", "feeds:\n  - type: gitlab"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.config))
			assert.Error(t, err)
		})
	}
}

func TestReadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	c, err := readConfig(missing, false)
	require.NoError(t, err)
	assert.Empty(t, c.Feeds)

	_, err = readConfig(missing, true)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(missing, []byte(fullConfig), 0o600))
	c, err = readConfig(missing, true)
	require.NoError(t, err)
	assert.Len(t, c.Feeds, 2)
}

func TestNewSources(t *testing.T) {
	c, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	sources, err := newSources(c)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	gh, ok := sources[0].(status.GitHubSource)
	require.True(t, ok)
	assert.Equal(t, "callebjorkell", gh.Owner)
	assert.Equal(t, "big-switch", gh.Name())

	jenkins, ok := sources[1].(status.JenkinsSource)
	require.True(t, ok)
	assert.Equal(t, "deploy", jenkins.Name())
}
