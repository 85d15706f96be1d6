// Package ifparse recovers per-interface IPv4 addresses from archived
// device configurations.
//
// One Parser exists per vendor family. A parser pulls lines from a
// forward-only Cursor and fills a HostMap. Parsers keep no state between
// calls, so devices can be parsed concurrently as long as each call gets
// its own Cursor and HostMap.
package ifparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved roles of an Address which are not a prefix length.
const (
	RoleHSRP = "hsrp"
	RoleVRRP = "vrrp"
	RoleMgmt = "mgmt"
)

// Address is one address found on an interface. Role is either the
// prefix length of the connected subnet, e.g. "24", or one of the
// reserved roles.
type Address struct {
	Addr string `json:"addr"`
	Role string `json:"role"`
}

// IsSubnet reports whether Role is a prefix length.
func (a Address) IsSubnet() bool {
	switch a.Role {
	case RoleHSRP, RoleVRRP, RoleMgmt:
		return false
	}
	_, err := strconv.Atoi(a.Role)
	return err == nil
}

func (a Address) String() string {
	if a.IsSubnet() {
		return a.Addr + "/" + a.Role
	}
	return a.Addr + " " + a.Role
}

// HostMap maps interface name to the addresses found on it, in order of
// appearance.
type HostMap map[string][]Address

// Count returns the number of interfaces and addresses in m.
func (m HostMap) Count() (intfs, addrs int) {
	for _, l := range m {
		intfs++
		addrs += len(l)
	}
	return
}

// ParseError is returned if a line matched a known shape but a value in
// it could not be converted.
type ParseError struct {
	Line Line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v\n>>%s<<", e.Line.Num, e.Err,
		strings.TrimSpace(e.Line.Text))
}

func (e *ParseError) Unwrap() error { return e.Err }

// maskBits converts a dotted netmask to its prefix length by counting
// the set bits of each octet.
func maskBits(mask string) (string, error) {
	octets := strings.Split(mask, ".")
	if len(octets) != 4 {
		return "", fmt.Errorf("invalid netmask %q", mask)
	}
	bits := 0
	for _, o := range octets {
		n, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return "", fmt.Errorf("invalid netmask %q", mask)
		}
		for ; n != 0; n >>= 1 {
			bits += int(n & 1)
		}
	}
	return strconv.Itoa(bits), nil
}
