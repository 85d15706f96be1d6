// Package pattern holds the line matchers used by the vendor parsers
// and the fact extractors.
//
// Every matcher recognizes exactly one line shape of one vendor family
// and returns the captured substrings. Matchers only capture, they never
// validate: an address is whatever dotted quad the line contains.
package pattern

import (
	"regexp"
	"strings"
)

const quad = `(\d+\.\d+\.\d+\.\d+)`

// IOS-like devices (cisco, cisco-nx share the interface header).
var (
	iosInterface = regexp.MustCompile(`^interface\s(([a-zA-Z\-]+)([\d/.]+))`)
	iosAddress   = regexp.MustCompile(`ip\saddress\s` + quad + `\s` + quad)
	iosVirtual   = regexp.MustCompile(`(vrrp|standby)\s?(\d+)?\s?ip\s` + quad)
	iosEnd       = regexp.MustCompile(`^!?$`)
)

// NX-OS
var (
	nxAddress      = regexp.MustCompile(`ip\saddress\s` + quad + `/(\d+)`)
	nxVirtualGroup = regexp.MustCompile(`^\s+(hsrp|vrrp)\s+\d+`)
	nxHSRPAddress  = regexp.MustCompile(`^\s+ip\s` + quad + `(\s|$)`)
	nxVRRPAddress  = regexp.MustCompile(`^\s+address\s` + quad + `(\s|$)`)
	nxEnd          = regexp.MustCompile(`^(cli|\w?$)`)
)

// Junos
var (
	junosInterfaces = regexp.MustCompile(`^interfaces\s\{`)
	junosInterface  = regexp.MustCompile(`^\s+(\S+\d\S*)\s\{`)
	junosIRB        = regexp.MustCompile(`\sirb\s\{`)
	junosUnit       = regexp.MustCompile(`\sunit\s(\d+)\s\{`)
	junosNode       = regexp.MustCompile(`^\s*(node\d+)\s\{`)
	junosAddress    = regexp.MustCompile(`\saddress\s` + quad + `/(\d+)(\s\{|;)`)
	junosVirtual    = regexp.MustCompile(`virtual-address\s` + quad + `;`)
)

// NetScreen
var netscreenAddress = regexp.MustCompile(
	`\sinterface\s(\S+)\s(manage-)?ip\s` + quad + `(/(\d+))?`)

// Cumulus
var (
	cumulusInterface = regexp.MustCompile(`^interface\s([\w.]+)`)
	cumulusAddress   = regexp.MustCompile(`\saddress\s` + quad + `/(\d+)`)
	cumulusVirtual   = regexp.MustCompile(`address-virtual\s[\w:]+\s` + quad + `/`)
	cumulusEnd       = regexp.MustCompile(`^$`)
)

// IOSInterface matches "interface GigabitEthernet1/0/1" and returns
// the type token and the interface number.
func IOSInterface(line string) (typ, num string, ok bool) {
	m := iosInterface.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[2], m[3], true
}

// IOSAddress matches "ip address A.B.C.D M.M.M.M [secondary]".
func IOSAddress(line string) (addr, mask string, ok bool) {
	m := iosAddress.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IOSVirtual matches "standby [N] ip A.B.C.D" and "vrrp [N] ip A.B.C.D".
// proto is either "standby" or "vrrp".
func IOSVirtual(line string) (proto, addr string, ok bool) {
	m := iosVirtual.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[3], true
}

// IOSEnd matches the end of an interface block: "!" or an empty line.
func IOSEnd(line string) bool { return iosEnd.MatchString(line) }

// NXAddress matches "ip address A.B.C.D/NN [secondary]".
func NXAddress(line string) (addr, bits string, ok bool) {
	m := nxAddress.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// NXVirtualGroup matches the indented "hsrp N" or "vrrp N" line which
// opens a first hop redundancy group inside an interface.
func NXVirtualGroup(line string) (proto string, ok bool) {
	m := nxVirtualGroup.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NXVirtualAddress matches the virtual address inside a group opened by
// NXVirtualGroup. HSRP writes "ip A.B.C.D", VRRP writes "address A.B.C.D".
func NXVirtualAddress(proto, line string) (addr string, ok bool) {
	re := nxHSRPAddress
	if proto == "vrrp" {
		re = nxVRRPAddress
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NXEnd matches the end of an NX-OS interface block.
func NXEnd(line string) bool { return nxEnd.MatchString(line) }

// JunosInterfaces matches the top level "interfaces {" line.
func JunosInterfaces(line string) bool { return junosInterfaces.MatchString(line) }

// JunosInterface matches an indented interface header like "ge-0/0/0 {".
// The name must contain a digit.
func JunosInterface(line string) (name string, ok bool) {
	m := junosInterface.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// JunosIRB matches "irb {".
func JunosIRB(line string) bool { return junosIRB.MatchString(line) }

// JunosUnit matches "unit N {".
func JunosUnit(line string) (unit string, ok bool) {
	m := junosUnit.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// JunosNode matches the "nodeN {" line of a chassis cluster group.
func JunosNode(line string) (node string, ok bool) {
	m := junosNode.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// JunosAddress matches "address A.B.C.D/NN;" and "address A.B.C.D/NN {".
func JunosAddress(line string) (addr, bits string, ok bool) {
	m := junosAddress.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// JunosVirtual matches "virtual-address A.B.C.D;" of a vrrp-group.
func JunosVirtual(line string) (addr string, ok bool) {
	m := junosVirtual.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// JunosOpen reports whether line opens a brace block.
func JunosOpen(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), "{")
}

// JunosClose reports whether line closes a brace block.
func JunosClose(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "}")
}

// NetScreenAddress matches
//
//	set interface ethernet0/0 ip 10.1.1.1/24
//	set interface ethernet0/0 manage-ip 10.1.1.2
//
// bits is empty if the address has no "/NN" suffix.
func NetScreenAddress(line string) (intf, addr, bits string, mgmt, ok bool) {
	m := netscreenAddress.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false, false
	}
	return m[1], m[3], m[5], m[2] != "", true
}

// CumulusInterface matches "interface swp1".
func CumulusInterface(line string) (name string, ok bool) {
	m := cumulusInterface.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CumulusAddress matches "  address A.B.C.D/NN".
func CumulusAddress(line string) (addr, bits string, ok bool) {
	m := cumulusAddress.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// CumulusVirtual matches "  address-virtual 00:00:5e:00:01:01 A.B.C.D/NN".
func CumulusVirtual(line string) (addr string, ok bool) {
	m := cumulusVirtual.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CumulusEnd matches the empty line ending an interface stanza.
func CumulusEnd(line string) bool { return cumulusEnd.MatchString(line) }
