package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/zephyrtronium/calc/internal/logging"
)

// CLI is the top-level command line.
type CLI struct {
	Log     logFlags     `embed:"" group:"log"     prefix:"log-"`
	Profile profileFlags `embed:"" group:"profile" prefix:"profile-"`

	Config kong.ConfigFlag `help:"Load flag defaults from a YAML file." placeholder:"FILE" short:"c" type:"path"`

	Eval  evalCmd  `cmd:"" default:"withargs" help:"Evaluate expressions."`
	Repl  replCmd  `cmd:""                    help:"Evaluate expressions interactively."`
	Serve serveCmd `cmd:""                    help:"Serve the evaluator over HTTP."`
}

func (cli *CLI) vars() kong.Vars {
	var history string
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".calc_history")
	}
	return kong.Vars{
		"historyFile":   history,
		"outputFormats": outputFormats,
	}.CloneWith(cli.Log.vars()).CloneWith(cli.Profile.vars())
}

type logFlags struct {
	Level   string `default:"info" enum:"${logLevels}"  env:"CALC_LOG_LEVEL"   help:"Minimum log level (${enum})."`
	Format  string `default:"text" enum:"${logFormats}" env:"CALC_LOG_FORMAT"  help:"Log format (${enum})."`
	Journal bool   `                                    env:"CALC_LOG_JOURNAL" help:"Also send logs to the systemd journal."`
}

func (logFlags) vars() kong.Vars {
	return kong.Vars{
		"logLevels":  logging.Levels,
		"logFormats": logging.Formats,
	}
}

func (logFlags) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f logFlags) options() logging.Options {
	return logging.Options{Level: f.Level, Format: f.Format, Journal: f.Journal}
}

// profileModes maps profile mode names to their profiler options.
var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
}

type profileFlags struct {
	Mode string `default:""  enum:",${profileModes}" help:"Write a runtime profile of this kind (${enum})." placeholder:"MODE"`
	Dir  string `default:"." help:"Directory for profile output."                                            type:"path"`
}

func (profileFlags) vars() kong.Vars {
	modes := make([]string, 0, len(profileModes))
	for m := range profileModes {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return kong.Vars{"profileModes": strings.Join(modes, ",")}
}

func (profileFlags) group() kong.Group {
	return kong.Group{Key: "profile", Title: "Profiling options"}
}

// start begins profiling if a mode is set. The returned function stops it.
func (f profileFlags) start(log *slog.Logger) (stop func()) {
	mode, ok := profileModes[f.Mode]
	if !ok {
		return func() {}
	}
	log.Debug("profile start", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	p := profile.Start(mode, profile.ProfilePath(f.Dir), profile.Quiet, profile.NoShutdownHook)
	return func() {
		p.Stop()
		log.Debug("profile stop", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	}
}
