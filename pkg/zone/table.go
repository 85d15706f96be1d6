// Package zone generates BIND reverse zone files with a PTR record for
// each interface address found in configuration backups.
package zone

import (
	"fmt"
	"net/netip"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Address classes selecting the zones to generate.
const (
	ClassA      = "a"      // 10.0.0.0/8
	ClassB      = "b"      // 172.16.0.0/12
	ClassC      = "c"      // 192.168.0.0/16
	ClassPublic = "public" // everything else
	ClassAll    = "all"
)

var classNets = map[string]netip.Prefix{
	ClassA: netip.MustParsePrefix("10.0.0.0/8"),
	ClassB: netip.MustParsePrefix("172.16.0.0/12"),
	ClassC: netip.MustParsePrefix("192.168.0.0/16"),
}

// ValidClass reports whether c names a class.
func ValidClass(c string) bool {
	switch c {
	case ClassA, ClassB, ClassC, ClassPublic, ClassAll:
		return true
	}
	return false
}

// Table describes the zones to generate.
type Table struct {
	// Appended to each record, must end with ".".
	Domain string `yaml:"domain"`
	// Written at top of each zone file.
	SOA string `yaml:"soa"`
	// Drop the records of standby members "xxfwNN-2" of firewall
	// clusters and name the records of "xxfwNN-1" after the cluster.
	FoldClusterPairs bool   `yaml:"fold_cluster_pairs"`
	Zones            []Zone `yaml:"zones"`
}

// Zone is one reverse zone file. Prefix must have length 8, 16 or 24.
type Zone struct {
	File   string       `yaml:"file"`
	Prefix netip.Prefix `yaml:"prefix"`
	// Optional, derived from Prefix if empty.
	Class string `yaml:"class"`
	// Records not found in configurations, written below the SOA.
	Static string `yaml:"static"`
}

// ClassOf returns the address class of z.
func (z Zone) ClassOf() string {
	if z.Class != "" {
		return z.Class
	}
	for c, n := range classNets {
		if n.Overlaps(z.Prefix) {
			return c
		}
	}
	return ClassPublic
}

// Matches reports whether z belongs to class c.
func (z Zone) Matches(c string) bool {
	return c == ClassAll || z.ClassOf() == c
}

// LoadTable reads a zone table from YAML file path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Can't %v", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("Invalid zone table %s: %v", path, err)
	}
	if err := t.check(); err != nil {
		return nil, fmt.Errorf("Invalid zone table %s: %v", path, err)
	}
	return &t, nil
}

func (t *Table) check() error {
	if !strings.HasSuffix(t.Domain, ".") {
		return fmt.Errorf("domain %q must end with \".\"", t.Domain)
	}
	if len(t.Zones) == 0 {
		return fmt.Errorf("no zones defined")
	}
	seen := make(map[string]bool)
	for _, z := range t.Zones {
		if z.File == "" || strings.Contains(z.File, "/") {
			return fmt.Errorf("invalid file name %q", z.File)
		}
		if seen[z.File] {
			return fmt.Errorf("duplicate file %q", z.File)
		}
		seen[z.File] = true
		if !z.Prefix.Addr().Is4() {
			return fmt.Errorf("zone %s: IPv4 prefix expected", z.File)
		}
		switch z.Prefix.Bits() {
		case 8, 16, 24:
		default:
			return fmt.Errorf("zone %s: prefix length must be 8, 16 or 24", z.File)
		}
		if z.Prefix != z.Prefix.Masked() {
			return fmt.Errorf("zone %s: %s has host bits set", z.File, z.Prefix)
		}
		if z.Class != "" && (!ValidClass(z.Class) || z.Class == ClassAll) {
			return fmt.Errorf("zone %s: invalid class %q", z.File, z.Class)
		}
	}
	return nil
}

const defaultSOA = `$TTL 4h
@ IN SOA ns1.example.com. admin.example.com. (
     1     ; Serial
     3h    ; Refresh after 3 hours
     1h    ; Retry after 1 hour
     1w    ; Expire after 1 week
     1h )  ; Negative caching TTL of 1 hour

@              IN NS     ns1.example.com.
ns1            IN A      192.0.2.0
`

// DefaultTable has one zone for 10/8, one for each /16 of 172.16/12
// and one for 192.168/16.
func DefaultTable() *Table {
	t := &Table{
		Domain: "example.net.",
		SOA:    defaultSOA,
		Zones: []Zone{
			{File: "db.10", Prefix: netip.MustParsePrefix("10.0.0.0/8")},
		},
	}
	for i := 16; i <= 31; i++ {
		t.Zones = append(t.Zones, Zone{
			File:   fmt.Sprintf("db.172.%d", i),
			Prefix: netip.MustParsePrefix(fmt.Sprintf("172.%d.0.0/16", i)),
		})
	}
	t.Zones = append(t.Zones, Zone{
		File:   "db.192.168",
		Prefix: netip.MustParsePrefix("192.168.0.0/16"),
	})
	return t
}
