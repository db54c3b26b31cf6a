// Command lumen reports whether the controlling terminal renders a light
// or dark background. It queries the terminal directly over OSC 11 and
// prints exactly one of "dark", "light" or "unknown" on stdout, exiting 0
// when the background was classified and 2 when it could not be.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/phyten/lumen/internal/config"
	"github.com/phyten/lumen/internal/detect"
	"github.com/phyten/lumen/internal/util"
)

const version = "0.3.0"

func main() {
	log.SetFlags(0)
	opts, err := parseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	if opts.showVersion {
		fmt.Println("lumen " + version)
		return
	}
	util.SetDebug(opts.settings.Debug)

	scheme, err := detect.Run(detect.Options{
		Timeout: time.Duration(opts.settings.TimeoutMS) * time.Millisecond,
		TTYPath: opts.settings.TTY,
	})
	if err != nil {
		var restoreErr *detect.RestoreError
		if errors.As(err, &restoreErr) {
			// The terminal may be stuck in raw mode; this must not be
			// reported as a mere "unknown".
			log.Fatalf("lumen: failed to restore terminal mode: %v", restoreErr.Err)
		}
		util.Debugf("detect: %v", err)
		util.Debugf("unable to determine background color")
	}

	fmt.Println(scheme)
	os.Exit(scheme.ExitCode())
}

type cliOptions struct {
	settings    config.Settings
	showVersion bool
}

// parseArgs resolves flags over environment over config file. getenv is
// injected for tests.
func parseArgs(args []string, getenv func(string) string) (cliOptions, error) {
	fs := flag.NewFlagSet("lumen", flag.ContinueOnError)
	var (
		timeoutMS  = fs.Int("timeout-ms", 0, "reply deadline in milliseconds (default 2000)")
		tty        = fs.String("tty", "", "terminal device to query (default /dev/tty)")
		configPath = fs.String("config", "", "config file (.toml/.yaml/.json); discovered under $XDG_CONFIG_HOME/lumen when unset")
		noConfig   = fs.Bool("no-config", false, "skip config file discovery")
		debug      = fs.Bool("debug", false, "print diagnostics to stderr")
		showVer    = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	path := *configPath
	if path == "" && !*noConfig {
		path = config.Find(getenv)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return cliOptions{}, err
	}
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return cliOptions{}, err
	}

	var flagCfg config.Config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout-ms":
			flagCfg.TimeoutMS = timeoutMS
		case "tty":
			flagCfg.TTY = tty
		case "debug":
			flagCfg.Debug = debug
		}
	})

	settings, err := config.Merge(config.Merge(fileCfg, envCfg), flagCfg).Resolve()
	if err != nil {
		return cliOptions{}, err
	}
	return cliOptions{settings: settings, showVersion: *showVer}, nil
}
