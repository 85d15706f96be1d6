package zone

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Output is the generated text of one zone file.
type Output struct {
	Zone Zone
	Text string
}

type record struct {
	addr netip.Addr
	name string
}

var (
	clusterPrimary = regexp.MustCompile(`(?i)^(\w*fw\d+)-1(-.*)$`)
	clusterStandby = regexp.MustCompile(`(?i)^\w*fw\d+-2-`)
)

// recordName builds the owner of a PTR record: hostname and interface
// joined by "-", dots and slashes changed to "-", suffixed by the
// first hop redundancy protocol, if any.
func recordName(host, intf string, a ifparse.Address) string {
	name := strings.NewReplacer(".", "-", "/", "-").Replace(host + "-" + intf)
	switch a.Role {
	case ifparse.RoleHSRP, ifparse.RoleVRRP:
		name += "-" + a.Role
	}
	return name
}

// fold renames records of firewall clusters. It returns false if the
// record is to be dropped.
func fold(name string) (string, bool) {
	if strings.Contains(name, "mgmt") {
		return name, true
	}
	if m := clusterPrimary.FindStringSubmatch(name); m != nil {
		return m[1] + m[2], true
	}
	return name, !clusterStandby.MatchString(name)
}

// Generate returns the zones of class which have at least one record,
// in order of t.Zones.
func Generate(t *Table, hosts map[string]ifparse.HostMap, class string) []Output {
	byZone := make(map[string][]record)
	hostNames := maps.Keys(hosts)
	slices.Sort(hostNames)
	for _, host := range hostNames {
		m := hosts[host]
		intfs := maps.Keys(m)
		slices.Sort(intfs)
		for _, intf := range intfs {
			for _, a := range m[intf] {
				ip, err := netip.ParseAddr(a.Addr)
				if err != nil {
					errlog.WithDevice(host).Warnf("Ignoring %s of %s: %v", a.Addr, intf, err)
					continue
				}
				name := recordName(host, intf, a)
				if t.FoldClusterPairs {
					var keep bool
					if name, keep = fold(name); !keep {
						continue
					}
				}
				for _, z := range t.Zones {
					if z.Prefix.Contains(ip) {
						byZone[z.File] = append(byZone[z.File], record{ip, name})
						break
					}
				}
			}
		}
	}
	var result []Output
	for _, z := range t.Zones {
		if !z.Matches(class) {
			continue
		}
		l := byZone[z.File]
		if len(l) == 0 {
			errlog.Info("No records found that match %s.", z.File)
			continue
		}
		result = append(result, Output{Zone: z, Text: render(t, z, l)})
	}
	return result
}

func render(t *Table, z Zone, l []record) string {
	slices.SortStableFunc(l, func(a, b record) int { return a.addr.Compare(b.addr) })
	var b strings.Builder
	b.WriteString(t.SOA)
	b.WriteString(z.Static)
	b.WriteString("\n; Auto-generated section - NETWORK\n")
	for _, r := range l {
		fmt.Fprintf(&b, "%-15sIN PTR    %s\n",
			ptrOwner(r.addr, z.Prefix.Bits()),
			strings.ToLower(r.name+"."+t.Domain))
	}
	return b.String()
}

// ptrOwner returns the octets of ip below the zone in reverse order:
// 10.1.2.3 in a /8 zone gives "3.2.1".
func ptrOwner(ip netip.Addr, bits int) string {
	o := ip.As4()
	l := []string{}
	for i := 3; i >= bits/8; i-- {
		l = append(l, fmt.Sprint(o[i]))
	}
	return strings.Join(l, ".")
}
