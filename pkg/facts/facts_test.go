package facts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cfgfacts/cfgfacts/pkg/discover"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/cfgfacts/cfgfacts/pkg/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExtract(t *testing.T) {
	for _, tc := range []struct {
		title  string
		vendor string
		input  string
		result DeviceFacts
	}{
		{
			title:  "Junos",
			vendor: "juniper",
			input: `#RANCID-CONTENT-TYPE: juniper
# Chassis                                MX10003
# Hostname: EDGE01
# Model: mx10003
# Junos: 18.4R3-S1.3
# JUNOS OS Kernel 64-bit  [20191115.14c2ad5_builder_stable_11]
system {
    host-name edge01;
}`,
			result: DeviceFacts{
				Hostname: "edge01", Vendor: "juniper",
				Model: "mx10003", Version: "18.4R3-S1.3",
			},
		},
		{
			title:  "Junos SRX without Hostname line",
			vendor: "juniper",
			input: `# Model: srx240h2
# JUNOS Software Release [12.3X48-D90.2]
system {
    host-name fw2;
}`,
			result: DeviceFacts{
				Hostname: "fw2", Vendor: "juniper",
				Model: "srx240h2", Version: "12.3X48-D90.2",
			},
		},
		{
			title:  "IOS",
			vendor: "cisco",
			input: `!RANCID-CONTENT-TYPE: cisco
!
!Chassis type: WS-C3750X-48P (PowerPC405) processor
!Image: Software: C3750E-UNIVERSALK9-M, 15.2(4)E10, RELEASE SOFTWARE (fc2)
!
hostname access1
!`,
			result: DeviceFacts{
				Hostname: "access1", Vendor: "cisco",
				Model: "WS-C3750X-48P", Version: "15.2(4)E10",
			},
		},
		{
			title:  "NX-OS",
			vendor: "cisco-nx",
			input: `!RANCID-CONTENT-TYPE: cisco-nx
!Chassis type: Nexus 3048 - a NXOS router
!Software: kickstart: version 6.0(2)U6(6)
!Software: system: version 6.0(2)U6(6)
hostname ASW-003B`,
			result: DeviceFacts{
				Hostname: "ASW-003B", Vendor: "cisco-nx",
				Model: "Nexus 3048", Version: "6.0(2)U6(6)",
			},
		},
		{
			title:  "NetScreen",
			vendor: "netscreen",
			input:  "set hostname fw10-1\nset interface ethernet0/0 ip 10.6.6.2/24",
			result: DeviceFacts{Hostname: "fw10-1", Vendor: "netscreen"},
		},
	} {
		t.Run(tc.title, func(t *testing.T) {
			got := Extract(tc.vendor, strings.Split(tc.input, "\n"))
			if d := cmp.Diff(tc.result, got); d != "" {
				t.Error(d)
			}
		})
	}
}

func writeConfigs(t *testing.T, files map[string]string) []discover.Entry {
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	l, err := discover.List(dir, discover.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

var testConfigs = map[string]string{
	"r1.example.net": `!RANCID-CONTENT-TYPE: cisco
hostname r1
interface Vlan10
 ip address 10.2.2.1 255.255.255.0
 standby 1 ip 10.2.2.254
!
`,
	"r2.example.net": `!RANCID-CONTENT-TYPE: cisco
hostname r2
interface Vlan10
 ip address 10.2.2.2 255.255.256.0
!
`,
	"fw1": `#RANCID-CONTENT-TYPE: netscreen
set hostname fw1
set interface ethernet0/0 ip 10.6.6.2/24
`,
	"console1": `#RANCID-CONTENT-TYPE: opengear
hostname console1
`,
}

func TestCollect(t *testing.T) {
	var buf bytes.Buffer
	errlog.SetOutput(&buf)
	defer errlog.SetStderrLog("")

	entries := writeConfigs(t, testConfigs)
	m := metrics.New()
	c := &Collector{
		Dispatcher:  ifparse.NewDispatcher(),
		Workers:     3,
		StripDomain: ".example.net",
		Metrics:     m,
	}
	res, err := c.Collect(context.Background(), entries)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]ifparse.HostMap{
		"r1": {"vl10": {
			{Addr: "10.2.2.1", Role: "24"},
			{Addr: "10.2.2.254", Role: "hsrp"},
		}},
		"fw1": {"ethernet0/0": {{Addr: "10.6.6.2", Role: "24"}}},
	}
	if d := cmp.Diff(expected, res.Hosts); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]string{"fw1", "r1"}, res.Hostnames()); d != "" {
		t.Error(d)
	}
	if res.Facts["r1"].Hostname != "r1" || res.Facts["r1"].Config != nil {
		t.Errorf("Unexpected facts %+v", res.Facts["r1"])
	}
	if len(res.Failed) != 1 || res.Failed[0].Hostname != "r2" {
		t.Fatalf("Unexpected failures %v", res.Failed)
	}
	expectedLog := `WARNING>>> r2: line 4: invalid netmask "255.255.256.0"
WARNING>>> >>ip address 10.2.2.2 255.255.256.0<<
`
	if d := cmp.Diff(expectedLog, buf.String()); d != "" {
		t.Error(d)
	}
	if n, err := testutil.GatherAndCount(m.Registry(), "cfgfacts_devices_total"); err != nil || n != 4 {
		t.Errorf("Expected 4 device series, got %d, %v", n, err)
	}
}

func TestCollectWithConfig(t *testing.T) {
	entries := writeConfigs(t, map[string]string{"fw1": testConfigs["fw1"]})
	c := &Collector{WithConfig: true}
	res, err := c.Collect(context.Background(), entries)
	if err != nil {
		t.Fatal(err)
	}
	expected := &DeviceFacts{
		Hostname: "fw1",
		Vendor:   "netscreen",
		Config: []string{
			"#RANCID-CONTENT-TYPE: netscreen",
			"set hostname fw1",
			"set interface ethernet0/0 ip 10.6.6.2/24",
		},
	}
	if d := cmp.Diff(expected, res.Facts["fw1"]); d != "" {
		t.Error(d)
	}
}

func TestCollectDuplicate(t *testing.T) {
	var buf bytes.Buffer
	errlog.SetOutput(&buf)
	defer errlog.SetStderrLog("")
	entries := writeConfigs(t, map[string]string{
		"fw1":             testConfigs["fw1"],
		"fw1.example.net": testConfigs["fw1"],
	})
	c := &Collector{StripDomain: ".example.net"}
	res, err := c.Collect(context.Background(), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hosts) != 1 {
		t.Errorf("Expected one host, got %v", res.Hostnames())
	}
	if !strings.HasPrefix(buf.String(), "WARNING>>> Skipping duplicate hostname fw1 of ") {
		t.Errorf("Unexpected warning: %s", buf.String())
	}
}

func TestCollectCanceled(t *testing.T) {
	entries := writeConfigs(t, testConfigs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Collector{Workers: 2}
	res, err := c.Collect(ctx, entries)
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(res.Hosts) != 0 {
		t.Errorf("Expected no hosts, got %v", res.Hostnames())
	}
}
