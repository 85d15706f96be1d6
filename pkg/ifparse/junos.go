package ifparse

import (
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/pattern"
)

// Junos parses the brace structured configuration of Juniper devices.
//
//	interfaces {
//	    ge-0/0/0 {
//	        unit 0 {
//	            family inet {
//	                address 10.4.4.1/30;
//	            }
//	        }
//	    }
//	}
//
// Addresses of a unit are stored at "ge-0/0/0.0". On chassis clusters
// the interfaces of a node group are stored at "node0.ge-0/0/0.0".
type Junos struct{}

type scopeKind int

const (
	scopeOther scopeKind = iota
	scopeNode
	scopeInterfaces
	scopeInterface
	scopeUnit
)

type scope struct {
	kind scopeKind
	name string
}

type junosParser struct {
	stack []scope
	// Addresses of the currently open interfaces section. They are
	// added to the host map when the section is closed.
	pending HostMap
}

func (Junos) Parse(c Cursor, m HostMap) error {
	p := &junosParser{}
	for {
		l, ok := c.Next()
		if !ok {
			return nil
		}
		p.line(l.Text, m)
	}
}

func (p *junosParser) line(text string, m HostMap) {
	// Interfaces at column 0 are at top level, whatever we have seen
	// before.
	if pattern.JunosInterfaces(text) {
		p.stack = p.stack[:0]
		p.openSection()
		return
	}
	if addr, bits, ok := pattern.JunosAddress(text); ok {
		p.add(addr, bits)
	} else if addr, ok := pattern.JunosVirtual(text); ok {
		p.add(addr, RoleVRRP)
	}
	switch {
	case pattern.JunosOpen(text):
		p.open(text)
	case pattern.JunosClose(text):
		p.close(m)
	}
}

func (p *junosParser) top() scopeKind {
	if len(p.stack) == 0 {
		return scopeOther
	}
	return p.stack[len(p.stack)-1].kind
}

func (p *junosParser) push(kind scopeKind, name string) {
	p.stack = append(p.stack, scope{kind: kind, name: name})
}

func (p *junosParser) openSection() {
	p.pending = make(HostMap)
	p.push(scopeInterfaces, "")
}

func (p *junosParser) inSection() bool {
	for _, s := range p.stack {
		if s.kind == scopeInterfaces {
			return true
		}
	}
	return false
}

func (p *junosParser) open(text string) {
	switch p.top() {
	case scopeInterfaces:
		if name, ok := pattern.JunosInterface(text); ok {
			p.push(scopeInterface, name)
			return
		}
		if pattern.JunosIRB(text) {
			p.push(scopeInterface, "irb")
			return
		}
	case scopeInterface:
		// A unit outside of an interface, e.g. in an interface-range,
		// never gets here and is ignored.
		if unit, ok := pattern.JunosUnit(text); ok {
			p.push(scopeUnit, unit)
			return
		}
	case scopeNode:
		if pattern.JunosInterfaces(strings.TrimSpace(text)) {
			p.openSection()
			return
		}
	}
	if !p.inSection() {
		if node, ok := pattern.JunosNode(text); ok {
			p.push(scopeNode, node)
			return
		}
	}
	p.push(scopeOther, "")
}

// close pops the innermost scope. Closing an interfaces section
// commits its addresses.
func (p *junosParser) close(m HostMap) {
	if len(p.stack) == 0 {
		return
	}
	last := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if last.kind == scopeInterfaces {
		for key, l := range p.pending {
			m[key] = l
		}
		p.pending = nil
	}
}

// key builds the name of the innermost interface or unit on the stack,
// prefixed by the enclosing node, if any.
func (p *junosParser) key() (string, bool) {
	var parts []string
	found := false
	for _, s := range p.stack {
		switch s.kind {
		case scopeNode:
			parts = append(parts, s.name)
		case scopeInterface:
			parts = append(parts, s.name)
			found = true
		case scopeUnit:
			parts = append(parts, s.name)
		}
	}
	if !found {
		return "", false
	}
	return strings.Join(parts, "."), true
}

func (p *junosParser) add(addr, role string) {
	key, ok := p.key()
	if !ok || p.pending == nil {
		return
	}
	p.pending[key] = append(p.pending[key], Address{Addr: addr, Role: role})
}
