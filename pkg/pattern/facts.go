package pattern

import (
	"regexp"
	"strings"
)

var (
	rancidType     = regexp.MustCompile(`RANCID-CONTENT-TYPE:\s(\S+)`)
	hostname       = regexp.MustCompile(`host-?name\s(\S+)`)
	junosHostname  = regexp.MustCompile(`Hostname:\s(\S+)`)
	model          = regexp.MustCompile(`Model:\s(\S+)`)
	junosVersion   = regexp.MustCompile(`Junos:\s(\S+)`)
	srxVersion     = regexp.MustCompile(`JUNOS\sSoftware\sRelease\s\[(\S+)\]`)
	exVersion      = regexp.MustCompile(`JUNOS\sEX\s+Software\sSuite\s\[(\S+)\]`)
	qfx3500Version = regexp.MustCompile(`JUNOS\sBase\sOS\sboot\s\[(\S+)\]`)
	ciscoModel     = regexp.MustCompile(`^!Chassis type:\s+(.+?)(?:\s+-\s|\s+\(|\s*$)`)
	ciscoImage     = regexp.MustCompile(`^!Image: Software: [^,]+, ([^,\s]+),`)
	ciscoBanner    = regexp.MustCompile(`Cisco IOS.* Software.*, Version ([^,\s]+)`)
	nxVersion      = regexp.MustCompile(`^!Software:\s+(?:system|NXOS):\s+version\s+(\S+)`)
)

func capture1(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// RancidType extracts the vendor tag from the first line of a backup:
// "#RANCID-CONTENT-TYPE: juniper".
func RancidType(line string) (string, bool) { return capture1(rancidType, line) }

// Hostname matches "hostname X" and "host-name X;". A trailing ';' is
// removed.
func Hostname(line string) (string, bool) {
	h, ok := capture1(hostname, line)
	return strings.TrimRight(h, ";"), ok
}

// JunosHostname matches "# Hostname: X" from "show version".
func JunosHostname(line string) (string, bool) { return capture1(junosHostname, line) }

// Model matches "Model: X".
func Model(line string) (string, bool) { return capture1(model, line) }

// JunosVersion matches the release of a Junos device in any of the
// formats printed by "show version" across EX, QFX, SRX and MX.
func JunosVersion(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{
		junosVersion, srxVersion, exVersion, qfx3500Version,
	} {
		if v, ok := capture1(re, line); ok {
			return v, true
		}
	}
	return "", false
}

// CiscoModel matches "!Chassis type: WS-C3750X-48P (PowerPC405) ..." and
// "!Chassis type: Nexus 3048 - a NXOS router".
func CiscoModel(line string) (string, bool) { return capture1(ciscoModel, line) }

// CiscoVersion matches the software version of IOS and NX-OS devices.
func CiscoVersion(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{ciscoImage, nxVersion, ciscoBanner} {
		if v, ok := capture1(re, line); ok {
			return v, true
		}
	}
	return "", false
}
