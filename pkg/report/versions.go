package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/facts"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// VersionFilter selects devices by regular expressions matched
// anywhere in model and software version.
type VersionFilter struct {
	Model   *regexp.Regexp
	Version *regexp.Regexp
}

type device struct {
	host, model, version string
}

func devices(all map[string]*facts.DeviceFacts) []device {
	var l []device
	for host, f := range all {
		if f.Model == "" && f.Version == "" {
			continue
		}
		l = append(l, device{host, strings.ToLower(f.Model), f.Version})
	}
	slices.SortFunc(l, func(a, b device) int {
		if c := strings.Compare(a.model, b.model); c != 0 {
			return c
		}
		if c := strings.Compare(a.version, b.version); c != 0 {
			return c
		}
		return strings.Compare(a.host, b.host)
	})
	return l
}

// Versions prints a summary with the number of devices of each
// combination of model and version, if no filter is given. Otherwise
// the matching devices are listed.
func Versions(w io.Writer, all map[string]*facts.DeviceFacts, f VersionFilter) {
	l := devices(all)
	switch {
	case f.Model == nil && f.Version == nil:
		summary(w, l)
	case f.Model == nil:
		byVersion := make(map[string][]device)
		for _, d := range l {
			if f.Version.MatchString(d.version) {
				byVersion[d.version] = append(byVersion[d.version], d)
			}
		}
		versions := maps.Keys(byVersion)
		slices.Sort(versions)
		for _, v := range versions {
			for _, d := range byVersion[v] {
				fmt.Fprintf(w, "%-20s %-17s %s\n", d.host, d.model, v)
			}
		}
	case f.Version == nil:
		var model string
		for _, d := range l {
			if !f.Model.MatchString(d.model) {
				continue
			}
			if d.model != model {
				model = d.model
				fmt.Fprintf(w, "==========\n%s\n==========\n", model)
			}
			fmt.Fprintf(w, "%-20s %s\n", d.host, d.version)
		}
	default:
		for _, d := range l {
			if f.Model.MatchString(d.model) && f.Version.MatchString(d.version) {
				fmt.Fprintf(w, "%-20s %-15s %s\n", d.host, d.version, d.model)
			}
		}
	}
}

func summary(w io.Writer, l []device) {
	total := 0
	for i := 0; i < len(l); {
		j := i + 1
		for j < len(l) && l[j].model == l[i].model && l[j].version == l[i].version {
			j++
		}
		fmt.Fprintf(w, "('%s', '%s') %d\n", l[i].model, l[i].version, j-i)
		total += j - i
		i = j
	}
	fmt.Fprintln(w, "TOTAL:", total)
}

// CompileFilter compiles the regular expressions of model and version.
// Empty strings give no restriction. Models are always matched in
// lower case.
func CompileFilter(model, version string) (VersionFilter, error) {
	var f VersionFilter
	var err error
	if model != "" {
		if f.Model, err = regexp.Compile(strings.ToLower(model)); err != nil {
			return f, fmt.Errorf("Invalid model %q: %v", model, err)
		}
	}
	if version != "" {
		if f.Version, err = regexp.Compile(version); err != nil {
			return f, fmt.Errorf("Invalid version %q: %v", version, err)
		}
	}
	return f, nil
}
