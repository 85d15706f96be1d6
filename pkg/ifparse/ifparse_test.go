package ifparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type parseTest struct {
	title  string
	vendor string
	input  string
	result HostMap
	err    string
}

func a(addr, role string) Address { return Address{Addr: addr, Role: role} }

var parseTests = []parseTest{
	// IOS
	{
		title:  "IOS primary address",
		vendor: VendorCisco,
		input: `
interface GigabitEthernet1/0/1
ip address 10.1.1.1 255.255.255.0
!
`,
		result: HostMap{"gi1/0/1": {a("10.1.1.1", "24")}},
	},
	{
		title:  "IOS HSRP",
		vendor: VendorCisco,
		input: `
interface Vlan10
ip address 10.2.2.1 255.255.255.0
standby 1 ip 10.2.2.254
!
`,
		result: HostMap{"vl10": {a("10.2.2.1", "24"), a("10.2.2.254", "hsrp")}},
	},
	{
		title:  "IOS secondary and VRRP",
		vendor: VendorCisco,
		input: `
hostname r1
!
interface Vlan20
 description users
 ip address 10.2.3.1 255.255.255.128
 ip address 10.2.4.1 255.255.255.252 secondary
 vrrp 3 ip 10.2.3.126
 no shutdown
!
interface Loopback0
 ip address 10.0.0.1 255.255.255.255
!
interface GigabitEthernet0/0
 no ip address
 shutdown
!
`,
		result: HostMap{
			"vl20": {
				a("10.2.3.1", "25"),
				a("10.2.4.1", "30"),
				a("10.2.3.126", "vrrp"),
			},
			"lo0":   {a("10.0.0.1", "32")},
			"gi0/0": {},
		},
	},
	{
		title:  "IOS block ends at empty line",
		vendor: VendorCisco,
		input: `
interface Port-channel1.100
 ip address 10.7.7.1 255.255.255.0

interface Tunnel5
 ip address 10.8.8.1 255.255.255.0
!
`,
		result: HostMap{
			"po1.100": {a("10.7.7.1", "24")},
			"tu5":     {a("10.8.8.1", "24")},
		},
	},
	{
		title:  "IOS truncated block is dropped",
		vendor: VendorCisco,
		input: `
interface Vlan1
 ip address 10.1.1.1 255.255.255.0
!
interface Vlan2
 ip address 10.1.2.1 255.255.255.0`,
		result: HostMap{"vl1": {a("10.1.1.1", "24")}},
	},
	{
		title:  "IOS bad netmask",
		vendor: VendorCisco,
		input: `
interface Vlan1
 ip address 10.1.1.1 255.255.256.0
!
`,
		err: "line 2: invalid netmask \"255.255.256.0\"\n>>ip address 10.1.1.1 255.255.256.0<<",
	},
	// NX-OS
	{
		title:  "NX-OS CIDR address",
		vendor: VendorCiscoNX,
		input: `
interface Vlan30
  ip address 10.3.3.1/24

`,
		result: HostMap{"vl30": {a("10.3.3.1", "24")}},
	},
	{
		title:  "NX-OS HSRP and VRRP groups",
		vendor: VendorCiscoNX,
		input: `
interface Vlan10
  no shutdown
  ip address 10.3.3.2/24
  ip address 10.3.4.2/24 secondary
  hsrp version 2
  hsrp 10
    preempt
    ip 10.3.3.1

interface Vlan11
  ip address 10.3.5.2/24
  vrrp 11
    address 10.3.5.1
    no shutdown

cli alias name wr copy run start
`,
		result: HostMap{
			"vl10": {
				a("10.3.3.2", "24"),
				a("10.3.4.2", "24"),
				a("10.3.3.1", "hsrp"),
			},
			"vl11": {a("10.3.5.2", "24"), a("10.3.5.1", "vrrp")},
		},
	},
	{
		title:  "NX-OS block ends at cli section",
		vendor: VendorCiscoNX,
		input: `
interface mgmt0
  vrf member management
  ip address 10.9.9.9/24
cli alias name wr copy run start
`,
		result: HostMap{"mg0": {a("10.9.9.9", "24")}},
	},
	// Cumulus
	{
		title:  "Cumulus CIDR and virtual address",
		vendor: VendorCumulus,
		input: `
interface swp1
  address 10.3.3.1/31

interface vlan10
  address 10.3.3.2/24
  address-virtual 00:00:5e:00:01:01 10.3.3.254/24
  vlan-id 10

interface lo
  address 10.0.0.3/32
`,
		result: HostMap{
			"swp1":   {a("10.3.3.1", "31")},
			"vlan10": {a("10.3.3.2", "24"), a("10.3.3.254", "vrrp")},
		},
	},
	// Junos
	{
		title:  "Junos nested unit",
		vendor: VendorJuniper,
		input: `
interfaces {
  ge-0/0/0 {
    unit 0 {
      address 10.4.4.1/30;
    }
  }
}
`,
		result: HostMap{"ge-0/0/0.0": {a("10.4.4.1", "30")}},
	},
	{
		title:  "Junos full configuration",
		vendor: VendorJuniper,
		input: `
## Last commit: 2024-01-01 10:00:00 UTC by admin
version 21.4R3;
system {
    host-name sw1;
}
interfaces {
    ge-0/0/0 {
        description uplink;
        unit 0 {
            family inet {
                address 10.4.4.1/30;
            }
        }
        unit 10 {
            vlan-id 10;
            family inet {
                address 10.4.5.1/24 {
                    vrrp-group 1 {
                        virtual-address 10.4.5.254;
                        priority 200;
                    }
                }
                address 10.4.6.1/24;
            }
        }
    }
    irb {
        unit 20 {
            family inet {
                address 10.4.7.1/24;
            }
        }
    }
    lo0 {
        unit 0 {
            family inet {
                address 10.0.0.4/32;
            }
        }
    }
}
protocols {
    ospf {
        area 0.0.0.0 {
            interface ge-0/0/0.0;
        }
    }
}
`,
		result: HostMap{
			"ge-0/0/0.0": {a("10.4.4.1", "30")},
			"ge-0/0/0.10": {
				a("10.4.5.1", "24"),
				a("10.4.5.254", "vrrp"),
				a("10.4.6.1", "24"),
			},
			"irb.20": {a("10.4.7.1", "24")},
			"lo0.0":  {a("10.0.0.4", "32")},
		},
	},
	{
		title:  "Junos address without unit",
		vendor: VendorJuniper,
		input: `
interfaces {
    fxp0 {
        family inet {
            address 10.9.9.1/24;
        }
    }
}
`,
		result: HostMap{"fxp0": {a("10.9.9.1", "24")}},
	},
	{
		title:  "Junos node scope",
		vendor: VendorJuniper,
		input: `
groups {
    node0 {
        system {
            host-name fw1-node0;
        }
        interfaces {
            ge-0/0/0 {
                unit 0 {
                    family inet {
                        address 10.5.5.1/30;
                    }
                }
            }
        }
    }
    node1 {
        interfaces {
            fxp0 {
                unit 0 {
                    family inet {
                        address 10.5.6.2/24;
                    }
                }
            }
        }
    }
}
interfaces {
    reth0 {
        unit 0 {
            family inet {
                address 10.5.7.1/24;
            }
        }
    }
}
`,
		result: HostMap{
			"node0.ge-0/0/0.0": {a("10.5.5.1", "30")},
			"node1.fxp0.0":     {a("10.5.6.2", "24")},
			"reth0.0":          {a("10.5.7.1", "24")},
		},
	},
	{
		title:  "Junos unit outside of interface is skipped",
		vendor: VendorJuniper,
		input: `
interfaces {
    interface-range access {
        member ge-0/0/1;
        unit 0 {
            family inet {
                address 10.6.6.1/24;
            }
        }
    }
    ge-0/0/2 {
        unit 0 {
            family inet {
                address 10.6.7.1/24;
            }
        }
    }
}
`,
		result: HostMap{"ge-0/0/2.0": {a("10.6.7.1", "24")}},
	},
	{
		title:  "Junos truncated interfaces section",
		vendor: VendorJuniper,
		input: `
interfaces {
    ge-0/0/0 {
        unit 0 {
            family inet {
                address 10.4.4.1/30;
`,
		result: HostMap{},
	},
	{
		title:  "Junos address outside of interfaces",
		vendor: VendorJuniper,
		input: `
routing-options {
    static {
        route 0.0.0.0/0 next-hop 10.1.1.1;
    }
}
security {
    address-book {
        address net1 10.1.0.0/16;
    }
}
`,
		result: HostMap{},
	},
	// NetScreen
	{
		title:  "NetScreen address and manage-ip",
		vendor: VendorNetScreen,
		input: `
set hostname fw10-1
set interface ethernet0/0 ip 10.6.6.2/24
set interface ethernet0/0 manage-ip 10.6.6.1
set interface ethernet0/0 route
set interface redundant1.5 ip 10.6.7.1/28
`,
		result: HostMap{
			"ethernet0/0":      {a("10.6.6.2", "24")},
			"ethernet0/0-mgmt": {a("10.6.6.1", "mgmt")},
			"redundant1.5":     {a("10.6.7.1", "28")},
		},
	},
	{
		title:  "NetScreen manage-ip with leading space",
		vendor: VendorNetScreen,
		input:  " interface ethernet0/0 manage-ip 10.6.6.1",
		result: HostMap{"ethernet0/0-mgmt": {a("10.6.6.1", "mgmt")}},
	},
	{
		title:  "NetScreen address without prefix",
		vendor: VendorNetScreen,
		input: `
set interface ethernet0/0 ip 10.6.6.2
`,
		err: "line 1: missing prefix length\n>>set interface ethernet0/0 ip 10.6.6.2<<",
	},
	// Unsupported
	{
		title:  "Unknown vendor",
		vendor: VendorUnknown,
		input: `
interface Vlan1
 ip address 10.1.1.1 255.255.255.0
!
`,
		result: HostMap{},
	},
	{
		title:  "opengear",
		vendor: "opengear",
		input:  "interface Vlan1\n ip address 10.1.1.1 255.255.255.0\n!\n",
		result: HostMap{},
	},
}

func TestParse(t *testing.T) {
	d := NewDispatcher()
	for _, tc := range parseTests {
		t.Run(tc.title, func(t *testing.T) {
			m, err := d.ParseLines(tc.vendor, splitLines(tc.input))
			if tc.err != "" {
				if err == nil {
					t.Fatal("Unexpected success")
				}
				eq(t, tc.err, err.Error())
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("Expected *ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.result, m); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	d := NewDispatcher()
	for _, v := range []string{
		VendorCisco, VendorCiscoNX, VendorJuniper, VendorNetScreen,
		VendorCumulus,
	} {
		t.Run(v, func(t *testing.T) {
			m, err := d.ParseLines(v, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(m) != 0 {
				t.Errorf("Expected empty map, got %v", m)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	d := NewDispatcher()
	for _, tc := range parseTests {
		if tc.err != "" {
			continue
		}
		t.Run(tc.title, func(t *testing.T) {
			lines := splitLines(tc.input)
			m1, _ := d.ParseLines(tc.vendor, lines)
			m2, _ := d.ParseLines(tc.vendor, lines)
			if diff := cmp.Diff(m1, m2); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestDispatchKeepsOtherEntries(t *testing.T) {
	d := NewDispatcher()
	m := HostMap{"old": {a("10.0.0.1", "8")}}
	for _, v := range []string{"", "foundry", "opengear", "unknown", "Cisco"} {
		if d.Supported(v) {
			t.Errorf("%q must not be supported", v)
		}
		if err := d.Dispatch(v, NewSliceCursor([]string{"x"}), m); err != nil {
			t.Errorf("Unexpected error for %q: %v", v, err)
		}
	}
	lines := []string{"interface Vlan5", " ip address 10.5.5.1 255.255.255.0", "!"}
	if err := d.Dispatch(VendorCisco, NewSliceCursor(lines), m); err != nil {
		t.Fatal(err)
	}
	expected := HostMap{
		"old": {a("10.0.0.1", "8")},
		"vl5": {a("10.5.5.1", "24")},
	}
	if diff := cmp.Diff(expected, m); diff != "" {
		t.Error(diff)
	}
}

func TestReaderCursor(t *testing.T) {
	in := "interface Vlan1\r\n ip address 10.1.1.1 255.255.255.0\r\n!\r\n"
	c := NewReaderCursor(strings.NewReader(in))
	m := make(HostMap)
	if err := NewDispatcher().Dispatch(VendorCisco, c, m); err != nil {
		t.Fatal(err)
	}
	eqMap(t, HostMap{"vl1": {a("10.1.1.1", "24")}}, m)
}

func TestReaderCursorLongLine(t *testing.T) {
	in := "interface Vlan1\n description " + strings.Repeat("x", 2*maxLineSize) +
		"\n!\n"
	c := NewReaderCursor(strings.NewReader(in))
	err := NewDispatcher().Dispatch(VendorCisco, c, make(HostMap))
	if err == nil {
		t.Fatal("Expected error for line exceeding buffer")
	}
}

func TestMaskBits(t *testing.T) {
	for _, tc := range []struct{ mask, bits, err string }{
		{"255.255.255.255", "32", ""},
		{"255.255.255.0", "24", ""},
		{"255.255.240.0", "20", ""},
		{"0.0.0.0", "0", ""},
		{"255.0.255.0", "16", ""},
		{"255.255.255", "", `invalid netmask "255.255.255"`},
		{"255.255.x.0", "", `invalid netmask "255.255.x.0"`},
	} {
		t.Run(tc.mask, func(t *testing.T) {
			bits, err := maskBits(tc.mask)
			if tc.err != "" {
				if err == nil {
					t.Fatal("Unexpected success")
				}
				eq(t, tc.err, err.Error())
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			eq(t, tc.bits, bits)
		})
	}
}

func TestAddress(t *testing.T) {
	eq(t, "10.1.1.1/24", a("10.1.1.1", "24").String())
	eq(t, "10.1.1.1 hsrp", a("10.1.1.1", "hsrp").String())
	m := HostMap{"x": {a("1.1.1.1", "8"), a("1.1.1.2", "vrrp")}, "y": {}}
	intfs, addrs := m.Count()
	if intfs != 2 || addrs != 2 {
		t.Errorf("Count: got %d/%d", intfs, addrs)
	}
}

func splitLines(s string) []string {
	s = strings.TrimPrefix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func eqMap(t *testing.T, expected, got HostMap) {
	t.Helper()
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}

func eq(t *testing.T, expected, got string) {
	t.Helper()
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}
