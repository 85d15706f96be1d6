// Package cli holds the command line handling shared by all tools:
// common flags, logging setup and collecting the facts of all
// configuration backups, either freshly parsed or from cache.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"

	"github.com/cfgfacts/cfgfacts/pkg/cache"
	"github.com/cfgfacts/cfgfacts/pkg/discover"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/facts"
	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/cfgfacts/cfgfacts/pkg/metrics"
	"github.com/cfgfacts/cfgfacts/pkg/program"
	"github.com/spf13/pflag"
)

// Key of collected facts in cache.
const cacheKey = "facts"

// Options are set from command line flags common to all tools.
type Options struct {
	Dir     string
	Glob    string
	Refresh bool
	Quiet   bool
	Debug   bool
	LogFile string
	Metrics string
}

// NewFlagSet returns a flag set with the common flags. usage describes
// the arguments of the tool, if any.
func NewFlagSet(usage string, o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

	// Setup custom usage function.
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]", path.Base(os.Args[0]))
		if usage != "" {
			fmt.Fprint(os.Stderr, " ", usage)
		}
		fmt.Fprintln(os.Stderr)
		fs.PrintDefaults()
	}
	fs.StringVarP(&o.Dir, "dir", "d", "",
		"Directory with configuration backups")
	fs.BoolVarP(&o.Refresh, "refresh", "r", false,
		"Parse configurations even if cached facts are fresh")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "No info messages")
	fs.BoolVar(&o.Debug, "debug", false, "Show skipped devices")
	fs.StringVar(&o.LogFile, "LOGFILE", "", "Path to redirect STDERR")
	fs.StringVar(&o.Metrics, "metrics", "",
		"Write Prometheus metrics in textfile format to FILE")
	return fs
}

// Parse parses args and reports whether the tool should continue.
// On error the usage message has already been shown.
func Parse(fs *pflag.FlagSet, args []string) bool {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return false
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return false
	}
	return true
}

// Setup configures logging from o and loads the configuration file.
func Setup(o *Options) (*program.Config, error) {
	errlog.Quiet = o.Quiet
	if o.LogFile != "" {
		errlog.SetStderrLog(o.LogFile)
	}
	level := "info"
	if o.Debug {
		level = "debug"
	}
	errlog.SetLevel(level)
	return program.LoadConfig()
}

// Collect returns the facts of all backups in the selected
// configuration directory. Cached facts are used if fresh, unless
// o.Refresh is set. Runs restricted by o.Glob neither read nor update
// the cache.
func Collect(cfg *program.Config, o *Options) (*facts.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var m *metrics.Metrics
	if o.Metrics != "" {
		m = metrics.New()
	}
	store := cache.Open(cfg)
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}
	partial := o.Glob != ""
	res, err := cache.Fetch(ctx, store, cacheKey, o.Refresh || partial, !partial,
		func() (*facts.Result, error) {
			dir := cfg.SelectConfDir(o.Dir)
			entries, err := discover.List(dir,
				discover.Options{Glob: o.Glob, MaxAge: cfg.MaxAge})
			if err != nil {
				return nil, err
			}
			errlog.Debug("Found %d files in %s", len(entries), dir)
			c := &facts.Collector{
				Dispatcher:  ifparse.NewDispatcher(),
				Workers:     cfg.Workers,
				StripDomain: cfg.StripDomain,
				Metrics:     m,
			}
			return c.Collect(ctx, entries)
		})
	if err != nil {
		return nil, err
	}
	if o.Metrics != "" {
		if err := m.WriteTextfile(o.Metrics); err != nil {
			errlog.Warning("Can't write metrics: %v", err)
		}
	}
	return res, nil
}
