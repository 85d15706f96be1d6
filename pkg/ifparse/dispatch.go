package ifparse

// Vendor tags as written by RANCID into the first line of a backup.
const (
	VendorCisco     = "cisco"
	VendorCiscoNX   = "cisco-nx"
	VendorJuniper   = "juniper"
	VendorNetScreen = "netscreen"
	VendorCumulus   = "cumulus"
	VendorUnknown   = "unknown"
)

// Dispatcher selects the parser for a vendor tag.
// The table is fixed when the Dispatcher is created.
type Dispatcher struct {
	parsers map[string]Parser
}

// NewDispatcher returns a Dispatcher knowing all vendor families of
// this package.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{parsers: map[string]Parser{
		VendorCisco:     IOS{},
		VendorCiscoNX:   NXOS{},
		VendorJuniper:   Junos{},
		VendorNetScreen: NetScreen{},
		VendorCumulus:   Cumulus{},
	}}
}

// Supported reports whether vendor has a parser.
func (d *Dispatcher) Supported(vendor string) bool {
	_, found := d.parsers[vendor]
	return found
}

// Dispatch parses c with the parser of vendor and adds the interfaces
// found to m. Any other vendor tag, e.g. "opengear" or "unknown", leaves
// m unchanged and is not an error.
func (d *Dispatcher) Dispatch(vendor string, c Cursor, m HostMap) error {
	p, found := d.parsers[vendor]
	if !found {
		return nil
	}
	if err := p.Parse(c, m); err != nil {
		return err
	}
	if rc, ok := c.(interface{ Err() error }); ok {
		return rc.Err()
	}
	return nil
}

// ParseLines is a shorthand to parse already read lines into a new
// HostMap.
func (d *Dispatcher) ParseLines(vendor string, lines []string) (HostMap, error) {
	m := make(HostMap)
	err := d.Dispatch(vendor, NewSliceCursor(lines), m)
	return m, err
}
