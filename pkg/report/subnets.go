// Package report prints the facts collected from configuration
// backups as plain text tables.
package report

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Carrier grade NAT, counted as private.
var cgnat = netip.MustParsePrefix("100.64.0.0/10")

// SubnetFilter selects the subnets printed by Subnets. All subnets
// are printed if no field is set.
type SubnetFilter struct {
	Public  bool
	Private bool
}

// IsPrivate reports whether p is part of RFC 1918 or carrier grade NAT
// address space.
func IsPrivate(p netip.Prefix) bool {
	return p.Addr().IsPrivate() || cgnat.Overlaps(p)
}

// IsPublic reports whether p is globally routable.
func IsPublic(p netip.Prefix) bool {
	return p.Addr().IsGlobalUnicast() && !IsPrivate(p)
}

func (f SubnetFilter) match(p netip.Prefix) bool {
	if !f.Public && !f.Private {
		return true
	}
	return f.Private && IsPrivate(p) || f.Public && IsPublic(p)
}

// Subnets prints one line "hostname interface subnet" for each address
// with a prefix length. Virtual and management addresses are left out.
func Subnets(w io.Writer, hosts map[string]ifparse.HostMap, f SubnetFilter) {
	names := maps.Keys(hosts)
	slices.Sort(names)
	for _, host := range names {
		m := hosts[host]
		intfs := maps.Keys(m)
		slices.Sort(intfs)
		for _, intf := range intfs {
			for _, a := range m[intf] {
				if !a.IsSubnet() {
					continue
				}
				p, err := netip.ParsePrefix(a.Addr + "/" + a.Role)
				if err != nil {
					continue
				}
				p = p.Masked()
				if f.match(p) {
					fmt.Fprintln(w, host, intf, p)
				}
			}
		}
	}
}
