package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/callebjorkell/status-lcd/internal/lcd"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultPollingInterval = 30
	defaultRef             = "main"
)

type Feed struct {
	Type            string `yaml:"type"`
	Repo            string `yaml:"repo"`
	Ref             string `yaml:"ref"`
	Job             string `yaml:"job"`
	PollingInterval int    `yaml:"pollingInterval"`
}

// OwnerRepo splits an "owner/repo" reference.
func (f Feed) OwnerRepo() (string, string) {
	owner, repo, _ := strings.Cut(f.Repo, "/")
	return owner, repo
}

type Config struct {
	Mirrored      bool   `yaml:"mirrored"`
	Watchdog      string `yaml:"watchdog"`
	RenderPadding bool   `yaml:"renderPadding"`
	Pins          struct {
		Data []string `yaml:"data"`
		RS   string   `yaml:"rs"`
		RW   string   `yaml:"rw"`
		EN   string   `yaml:"en"`
	} `yaml:"pins"`
	Github struct {
		Token string `yaml:"token"`
		Url   string `yaml:"url"`
	} `yaml:"github"`
	Jenkins struct {
		Url   string `yaml:"url"`
		User  string `yaml:"user"`
		Token string `yaml:"token"`
	} `yaml:"jenkins"`
	Feeds []Feed `yaml:"feeds"`
}

// Board returns the display wiring, falling back to lcd.DefaultBoard for
// anything not configured.
func (c Config) Board() lcd.Board {
	b := lcd.DefaultBoard
	copy(b.Data[:], c.Pins.Data)
	if c.Pins.RS != "" {
		b.RS = c.Pins.RS
	}
	if c.Pins.RW != "" {
		b.RW = c.Pins.RW
	}
	if c.Pins.EN != "" {
		b.EN = c.Pins.EN
	}
	b.Mirrored = c.Mirrored
	return b
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if len(c.Pins.Data) != 0 && len(c.Pins.Data) != 8 {
		return nil, fmt.Errorf("exactly 8 data pins must be given, got %d", len(c.Pins.Data))
	}
	for i, feed := range c.Feeds {
		switch feed.Type {
		case "github":
			owner, repo := feed.OwnerRepo()
			if owner == "" || repo == "" {
				return nil, fmt.Errorf("repo must be given as owner/repo for feed %d", i)
			}
			if feed.Ref == "" {
				c.Feeds[i].Ref = defaultRef
			}
		case "jenkins":
			if feed.Job == "" {
				return nil, fmt.Errorf("job must be specified for feed %d", i)
			}
			if c.Jenkins.Url == "" {
				return nil, fmt.Errorf("jenkins url is missing")
			}
		default:
			return nil, fmt.Errorf("unknown type %q for feed %d", feed.Type, i)
		}
		if feed.PollingInterval <= 0 {
			c.Feeds[i].PollingInterval = defaultPollingInterval
		}
	}

	return c, nil
}

// readConfig reads the configuration file. A missing file gives the defaults
// unless required is set.
func readConfig(path string, required bool) (*Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		log.Debugf("No configuration at %s, using defaults", path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return parseConfig(content)
}
