package main

/*
ifparse-dump -- Print interface addresses found in configuration files.

The vendor of each FILE is taken from its RANCID header line, unless
given with --vendor. The result is printed as JSON object, mapping
file name to interfaces.
*/

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cfgfacts/cfgfacts/pkg/discover"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

	// Setup custom usage function.
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] FILE ...\n", os.Args[0])
		fs.PrintDefaults()
	}
	vendor := fs.String("vendor", "", "Parse all files as configuration of TAG")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return 1
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return 1
	}
	d := ifparse.NewDispatcher()
	if *vendor != "" && !d.Supported(*vendor) {
		fmt.Fprintf(os.Stderr, "Error: Unsupported vendor %q\n", *vendor)
		return 1
	}
	return errlog.HandleAbort(func() int {
		result := make(map[string]ifparse.HostMap)
		for _, p := range files {
			e, err := discover.File(p)
			if err != nil {
				errlog.Abort("%v", err)
			}
			if *vendor != "" {
				e.Vendor = *vendor
			}
			if !d.Supported(e.Vendor) {
				errlog.Abort("Unsupported vendor %q in %s", e.Vendor, p)
			}
			result[e.Hostname] = parse(d, e)
		}
		out, _ := json.MarshalIndent(result, "", " ")
		fmt.Println(string(out))
		return 0
	})
}

func parse(d *ifparse.Dispatcher, e discover.Entry) ifparse.HostMap {
	c, fh, err := e.Open()
	if err != nil {
		errlog.Abort("%v", err)
	}
	defer fh.Close()
	m := make(ifparse.HostMap)
	if err := d.Dispatch(e.Vendor, c, m); err != nil {
		errlog.Abort("%s: %v", e.Path, err)
	}
	return m
}
