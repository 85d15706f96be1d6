package facts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cfgfacts/cfgfacts/pkg/discover"
	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/cfgfacts/cfgfacts/pkg/metrics"
	"github.com/cfgfacts/cfgfacts/pkg/mytime"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Collector parses many configuration backups concurrently.
type Collector struct {
	Dispatcher *ifparse.Dispatcher
	// Number of devices parsed in parallel, 1 if not set.
	Workers int
	// Suffix removed from hostnames, e.g. ".example.net".
	StripDomain string
	// Keep the lines of each configuration in DeviceFacts.Config.
	WithConfig bool
	Metrics    *metrics.Metrics
}

// Failure describes a device which could not be parsed.
type Failure struct {
	Hostname string
	Path     string
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Hostname, f.Err)
}

// Result holds the facts of all devices, keyed by hostname.
type Result struct {
	Hosts  map[string]ifparse.HostMap `json:"hosts"`
	Facts  map[string]*DeviceFacts    `json:"facts"`
	Failed []Failure                  `json:"-"`
}

func NewResult() *Result {
	return &Result{
		Hosts: make(map[string]ifparse.HostMap),
		Facts: make(map[string]*DeviceFacts),
	}
}

// Hostnames returns the names of all devices in sorted order.
func (r *Result) Hostnames() []string {
	l := make([]string, 0, len(r.Hosts))
	for h := range r.Hosts {
		l = append(l, h)
	}
	slices.Sort(l)
	return l
}

// Collect parses entries and returns the facts found. A device that
// fails to parse is logged, added to Result.Failed and otherwise
// ignored. Devices with unsupported vendor are skipped. If ctx is
// canceled, no further devices are started and ctx.Err() is returned.
func (c *Collector) Collect(ctx context.Context, entries []discover.Entry) (*Result, error) {
	d := c.Dispatcher
	if d == nil {
		d = ifparse.NewDispatcher()
	}
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	res := NewResult()
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	seen := make(map[string]string)
	for _, e := range entries {
		if gctx.Err() != nil {
			break
		}
		if !d.Supported(e.Vendor) {
			errlog.WithDevice(e.Hostname).Debugf("Skipping vendor %s", e.Vendor)
			c.Metrics.Device(e.Vendor, metrics.Skipped)
			continue
		}
		host := strings.TrimSuffix(e.Hostname, c.StripDomain)
		if prev, found := seen[host]; found {
			errlog.Warning("Skipping duplicate hostname %s of %s, already seen in %s",
				host, e.Path, prev)
			c.Metrics.Device(e.Vendor, metrics.Skipped)
			continue
		}
		seen[host] = e.Path
		e := e
		g.Go(func() error {
			start := time.Now()
			m, f, err := c.parse(d, e)
			c.Metrics.Observe(time.Since(start))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errlog.WithDevice(host).Warnf("%v", err)
				res.Failed = append(res.Failed,
					Failure{Hostname: host, Path: e.Path, Err: err})
				c.Metrics.Device(e.Vendor, metrics.Failed)
				return nil
			}
			res.Hosts[host] = m
			res.Facts[host] = f
			intfs, addrs := m.Count()
			c.Metrics.Found(e.Vendor, intfs, addrs)
			c.Metrics.Device(e.Vendor, metrics.Parsed)
			return nil
		})
	}
	g.Wait()
	slices.SortFunc(res.Failed, func(a, b Failure) int {
		return strings.Compare(a.Hostname, b.Hostname)
	})
	c.Metrics.Finished(mytime.Now())
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (c *Collector) parse(d *ifparse.Dispatcher, e discover.Entry) (ifparse.HostMap, *DeviceFacts, error) {
	lines, err := e.Lines()
	if err != nil {
		return nil, nil, err
	}
	m := make(ifparse.HostMap)
	if err := d.Dispatch(e.Vendor, ifparse.NewSliceCursor(lines), m); err != nil {
		return nil, nil, err
	}
	f := Extract(e.Vendor, lines)
	if c.WithConfig {
		f.Config = lines
	}
	return m, &f, nil
}
