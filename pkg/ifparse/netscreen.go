package ifparse

import (
	"errors"

	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

// NetScreen parses ScreenOS configurations, where each address is a
// single line:
//
//	set interface ethernet0/0 ip 10.6.6.2/24
//	set interface ethernet0/0 manage-ip 10.6.6.1
//
// A manage-ip is stored at interface "<name>-mgmt" with role "mgmt".
type NetScreen struct{}

var errNoPrefix = errors.New("missing prefix length")

func (NetScreen) Parse(c Cursor, m HostMap) error {
	for {
		l, ok := c.Next()
		if !ok {
			return nil
		}
		intf, addr, bits, mgmt, found := pattern.NetScreenAddress(l.Text)
		if !found {
			continue
		}
		role := bits
		if mgmt {
			intf += "-mgmt"
			role = RoleMgmt
		} else if bits == "" {
			return &ParseError{Line: l, Err: errNoPrefix}
		}
		m[intf] = append(m[intf], Address{Addr: addr, Role: role})
	}
}
