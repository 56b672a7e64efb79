package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/callebjorkell/status-lcd/internal/lcd"
	"github.com/callebjorkell/status-lcd/internal/status"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("status-lcd", "Status text on a 16x2 character LCD")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file.").Default("config.yaml").String()
	mirrored   = app.Flag("mirrored", "Reverse the bit order of the data bus.").Bool()

	write     = app.Command("write", "Write text to the display.")
	writeText = write.Arg("text", "Text to write.").Required().Strings()
	pipe      = app.Command("pipe", "Stream standard input to the display.")
	clearCmd  = app.Command("clear", "Clear the display.")
	watch     = app.Command("watch", "Show the status feeds from the configuration.")
	version   = app.Command("version", "Show current version.")
)

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	if cmd == version.FullCommand() {
		showVersion()
		return
	}

	if err := run(cmd); err != nil {
		log.Fatal(err)
	}
}

// run executes a display command. Errors are returned rather than fatal so
// that the display and watchdog are always released.
func run(cmd string) error {
	conf, err := readConfig(*configFile, cmd == watch.FullCommand())
	if err != nil {
		return fmt.Errorf("unable to read configuration: %w", err)
	}
	if *mirrored {
		conf.Mirrored = true
	}

	display, closer, err := openDisplay(conf)
	if err != nil {
		return err
	}
	defer closer()

	switch cmd {
	case write.FullCommand():
		display.WriteString(strings.Join(*writeText, " "))
	case pipe.FullCommand():
		if _, err := io.Copy(display, os.Stdin); err != nil {
			return fmt.Errorf("unable to read input: %w", err)
		}
	case clearCmd.FullCommand():
		display.Clear()
	case watch.FullCommand():
		return watchFeeds(conf, display)
	default:
		return fmt.Errorf("unrecognized command %q", cmd)
	}
	return nil
}

func openDisplay(conf *Config) (*lcd.Display, func(), error) {
	wiring, err := lcd.Open(conf.Board())
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open LCD: %w", err)
	}

	opts := &lcd.Opts{Mirrored: conf.Mirrored}
	var wd *fileWatchdog
	if conf.Watchdog != "" {
		wd, err = openWatchdog(conf.Watchdog)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open watchdog: %w", err)
		}
		opts.Watchdog = wd
	}

	var displayOpts []lcd.DisplayOption
	if conf.RenderPadding {
		displayOpts = append(displayOpts, lcd.WithRenderedPadding())
	}
	display := lcd.NewDisplay(wiring.Bus(opts), displayOpts...)
	display.Init()

	// The bus only resets the watchdog around its own delays, so idle
	// commands such as watch and pipe need a separate kicker.
	stopKicking := func() {}
	if wd != nil {
		stopKicking = keepAlive(wd, watchdogKick)
	}

	closer := func() {
		if wiring.Sim != nil {
			showScreen(wiring.Sim.Screen())
		}
		if wd != nil {
			stopKicking()
			if err := wd.Close(); err != nil {
				log.Warn("Unable to close watchdog: ", err)
			}
		}
	}
	return display, closer, nil
}

func showScreen(rows [lcd.Rows]string) {
	border := "+" + strings.Repeat("-", lcd.LineWidth) + "+"
	fmt.Println(border)
	for _, r := range rows {
		fmt.Printf("|%s|\n", r)
	}
	fmt.Println(border)
}

func watchFeeds(conf *Config, display *lcd.Display) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources, err := newSources(conf)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Warn("No feeds configured.")
	}

	display.Print("Status display", "starting...")

	w := status.NewWatcher()
	for i, s := range sources {
		if err := w.AddWatch(s, time.Duration(conf.Feeds[i].PollingInterval)*time.Second); err != nil {
			w.Close()
			return err
		}
	}
	status.Show(ctx, display, w.Changes())
	w.Close()

	display.Print("  Sleeping...", "")
	log.Info("Done...")
	return nil
}

func newSources(conf *Config) ([]status.Source, error) {
	var gh *status.GitHub
	var jenkins *status.Jenkins
	sources := make([]status.Source, 0, len(conf.Feeds))

	for _, feed := range conf.Feeds {
		switch feed.Type {
		case "github":
			if gh == nil {
				gh = status.NewGitHub(conf.Github.Token)
				if conf.Github.Url != "" {
					if err := gh.SetBaseURL(conf.Github.Url); err != nil {
						return nil, err
					}
				}
			}
			owner, repo := feed.OwnerRepo()
			sources = append(sources, status.GitHubSource{GitHub: gh, Owner: owner, Repo: repo, Ref: feed.Ref})
		case "jenkins":
			if jenkins == nil {
				jenkins = status.NewJenkins(conf.Jenkins.Url, conf.Jenkins.User, conf.Jenkins.Token)
			}
			sources = append(sources, status.JenkinsSource{Jenkins: jenkins, Job: feed.Job})
		default:
			return nil, fmt.Errorf("unknown feed type %q", feed.Type)
		}
	}
	return sources, nil
}
