package ifparse

import (
	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

// Cumulus parses the interface stanzas of Cumulus Linux.
// A stanza ends at the first empty line.
//
//	interface vlan10
//	  address 10.3.3.2/24
//	  address-virtual 00:00:5e:00:01:01 10.3.3.1/24
type Cumulus struct{}

func (Cumulus) Parse(c Cursor, m HostMap) error {
	return parseBlocks(c, m, blockRules{
		header: pattern.CumulusInterface,
		body: func(b *block, l Line) error {
			if addr, bits, ok := pattern.CumulusAddress(l.Text); ok {
				b.add(addr, bits)
			}
			if addr, ok := pattern.CumulusVirtual(l.Text); ok {
				b.add(addr, RoleVRRP)
			}
			return nil
		},
		end: pattern.CumulusEnd,
	})
}
