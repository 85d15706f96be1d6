package main

/*
conn-subnet-report -- Print the connected subnets of all devices.

One line "hostname interface subnet" is printed for each interface
address with prefix length. Virtual and management addresses are
left out.
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
	pub := fs.Bool("pub", false, "Only public subnets")
	priv := fs.Bool("priv", false, "Only private and carrier grade NAT subnets")
	fs.StringVarP(&o.Glob, "regex", "x", "",
		"Only devices with name matching shell pattern GLOB")
	if !cli.Parse(fs, os.Args[1:]) {
		return 1
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 1
	}
	return errlog.HandleAbort(func() int {
		cfg, err := cli.Setup(&o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		res, err := cli.Collect(cfg, &o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		report.Subnets(os.Stdout, res.Hosts,
			report.SubnetFilter{Public: *pub, Private: *priv})
		return 0
	})
}
