package ifparse

import (
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

// IOS parses Cisco IOS and IOS-XE configurations.
//
//	interface Vlan10
//	 ip address 10.2.2.1 255.255.255.0
//	 ip address 10.2.3.1 255.255.255.0 secondary
//	 standby 1 ip 10.2.2.254
//	!
type IOS struct{}

func (IOS) Parse(c Cursor, m HostMap) error {
	return parseBlocks(c, m, blockRules{
		header: iosKey,
		body: func(b *block, l Line) error {
			if addr, mask, ok := pattern.IOSAddress(l.Text); ok {
				bits, err := maskBits(mask)
				if err != nil {
					return &ParseError{Line: l, Err: err}
				}
				b.add(addr, bits)
			}
			if proto, addr, ok := pattern.IOSVirtual(l.Text); ok {
				role := RoleHSRP
				if proto == "vrrp" {
					role = RoleVRRP
				}
				b.add(addr, role)
			}
			return nil
		},
		end: pattern.IOSEnd,
	})
}

// iosKey abbreviates the interface type to its first two letters,
// "GigabitEthernet1/0/1" gives "gi1/0/1".
func iosKey(line string) (string, bool) {
	typ, num, ok := pattern.IOSInterface(line)
	if !ok {
		return "", false
	}
	if len(typ) > 2 {
		typ = typ[:2]
	}
	return strings.ToLower(typ) + num, true
}
