package ifparse

import (
	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

// NXOS parses Cisco NX-OS configurations. Addresses are written in
// prefix notation. First hop redundancy addresses live in a sub block:
//
//	interface Vlan10
//	  ip address 10.3.3.2/24
//	  hsrp 10
//	    ip 10.3.3.1
//
// An interface block ends at an empty line or at the "cli" alias
// section.
type NXOS struct{}

func (NXOS) Parse(c Cursor, m HostMap) error {
	return parseBlocks(c, m, blockRules{
		header: iosKey,
		body: func(b *block, l Line) error {
			if addr, bits, ok := pattern.NXAddress(l.Text); ok {
				b.add(addr, bits)
				return nil
			}
			if proto, ok := pattern.NXVirtualGroup(l.Text); ok {
				b.group = proto
				return nil
			}
			if b.group != "" {
				if addr, ok := pattern.NXVirtualAddress(b.group, l.Text); ok {
					role := RoleHSRP
					if b.group == "vrrp" {
						role = RoleVRRP
					}
					b.add(addr, role)
				}
			}
			return nil
		},
		end: pattern.NXEnd,
	})
}
