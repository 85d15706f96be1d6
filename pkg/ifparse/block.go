package ifparse

// Parser extracts interface addresses of one vendor family.
// Parse consumes c up to its end and adds the interfaces found to m.
type Parser interface {
	Parse(c Cursor, m HostMap) error
}

// block collects the addresses of one interface block of a flat
// configuration.
type block struct {
	key   string
	addrs []Address
	// Protocol of an open NX-OS hsrp or vrrp group, if any.
	group string
}

func (b *block) add(addr, role string) {
	b.addrs = append(b.addrs, Address{Addr: addr, Role: role})
}

// blockRules describe a configuration where each interface is a header
// line followed by body lines up to a terminator line.
type blockRules struct {
	header func(line string) (key string, ok bool)
	body   func(b *block, l Line) error
	end    func(line string) bool
}

const (
	outside = iota
	inside
)

// parseBlocks is the state machine shared by the IOS-like, NX-OS-like
// and Cumulus parsers. A block is stored in m only when its terminator
// is seen; a block still open at end of input is dropped.
func parseBlocks(c Cursor, m HostMap, r blockRules) error {
	state := outside
	var b *block
	for {
		l, ok := c.Next()
		if !ok {
			return nil
		}
		switch state {
		case outside:
			if key, found := r.header(l.Text); found {
				b = &block{key: key, addrs: []Address{}}
				state = inside
			}
		case inside:
			if err := r.body(b, l); err != nil {
				return err
			}
			if r.end(l.Text) {
				m[b.key] = b.addrs
				b = nil
				state = outside
			}
		}
	}
}
