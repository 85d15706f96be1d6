package main

/*
dns-zones -- Generate reverse DNS zone files.

Reads all configuration backups and writes a PTR record for each
interface address to the reverse zone containing it. CLASS selects
the zones to generate: a, b, c, public or all.
*/

import (
	"fmt"
	"os"

	"github.com/cfgfacts/cfgfacts/pkg/cli"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/zone"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	var o cli.Options
	fs := cli.NewFlagSet("a|b|c|public|all", &o)
	out := fs.Bool("out", false, "Print records to STDOUT, don't write zone files")
	showDiff := fs.Bool("diff", false, "Show changes of zone files")
	dryRun := fs.BoolP("dry-run", "n", false, "Don't write zone files")
	zones := fs.String("zones", "", "Read zone table from FILE")
	if !cli.Parse(fs, os.Args[1:]) {
		return 1
	}
	args := fs.Args()
	if len(args) != 1 || !zone.ValidClass(args[0]) {
		fs.Usage()
		return 1
	}
	class := args[0]

	return errlog.HandleAbort(func() int {
		cfg, err := cli.Setup(&o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		tbl := zone.DefaultTable()
		if *zones == "" {
			*zones = cfg.ZoneFile
		}
		if *zones != "" {
			if tbl, err = zone.LoadTable(*zones); err != nil {
				errlog.Abort("%v", err)
			}
		}
		res, err := cli.Collect(cfg, &o)
		if err != nil {
			errlog.Abort("%v", err)
		}
		outs := zone.Generate(tbl, res.Hosts, class)
		if *out {
			for _, z := range outs {
				fmt.Printf("; %s\n%s", z.Zone.File, z.Text)
			}
			return 0
		}
		opt := zone.WriteOptions{Dir: cfg.ZoneDir, DryRun: *dryRun}
		if *showDiff {
			opt.Diff = os.Stdout
		}
		if _, err := zone.Write(outs, opt); err != nil {
			errlog.Abort("%v", err)
		}
		return 0
	})
}
