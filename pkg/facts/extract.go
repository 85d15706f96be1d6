// Package facts collects the facts of many devices: the addresses of
// their interfaces together with hostname, model and software version.
package facts

import (
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

type DeviceFacts struct {
	Hostname string   `json:"hostname"`
	Vendor   string   `json:"vendor"`
	Model    string   `json:"model"`
	Version  string   `json:"version"`
	Config   []string `json:"config,omitempty"`
}

// Extract finds hostname, model and version in the lines of a
// configuration backup. Fields not found are left empty.
func Extract(vendor string, lines []string) DeviceFacts {
	f := DeviceFacts{Vendor: vendor}
	switch vendor {
	case ifparse.VendorJuniper:
		extractJunos(&f, lines)
	case ifparse.VendorCisco, ifparse.VendorCiscoNX:
		extractCisco(&f, lines)
	}
	if f.Hostname == "" {
		for _, line := range lines {
			if h, found := pattern.Hostname(line); found {
				f.Hostname = h
				break
			}
		}
	}
	return f
}

// RANCID prefixes the output of "show version" to the configuration.
// The first release line found is the version of the running software.
func extractJunos(f *DeviceFacts, lines []string) {
	for _, line := range lines {
		if f.Hostname == "" {
			if h, found := pattern.JunosHostname(line); found {
				f.Hostname = strings.ToLower(h)
			}
		}
		if f.Model == "" {
			if m, found := pattern.Model(line); found {
				f.Model = m
			}
		}
		if v, found := pattern.JunosVersion(line); found {
			f.Version = v
			return
		}
	}
}

func extractCisco(f *DeviceFacts, lines []string) {
	for _, line := range lines {
		if f.Model == "" {
			if m, found := pattern.CiscoModel(line); found {
				f.Model = m
			}
		}
		if f.Version == "" {
			if v, found := pattern.CiscoVersion(line); found {
				f.Version = v
			}
		}
		if h, found := pattern.Hostname(line); found {
			f.Hostname = h
			return
		}
	}
}
