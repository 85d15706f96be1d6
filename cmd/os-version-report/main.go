package main

/*
os-version-report -- Show model and software version of devices.

Without options, the number of devices is printed for each
combination of model and version. With --model or --version the
matching devices are listed.
*/

import (
	"os"

	"github.com/cfgfacts/cfgfacts/pkg/cli"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/report"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	var o cli.Options
	fs := cli.NewFlagSet("", &o)
	model := fs.StringP("model", "m", "", "List devices with model matching REGEX")
	version := fs.StringP("version", "v", "",
		"List devices with software version matching REGEX")
	if !cli.Parse(fs, os.Args[1:]) {
		return 1
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 1
	}
	return errlog.HandleAbort(func() int {
		f, err := report.CompileFilter(*model, *version)
		if err != nil {
			errlog.Abort("%v", err)
		}
		cfg, err := cli.Setup(&o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		res, err := cli.Collect(cfg, &o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		report.Versions(os.Stdout, res.Facts, f)
		return 0
	})
}
