// Package discover finds the configuration backups in a directory and
// classifies them by the vendor tag RANCID writes into the first line:
//
//	#RANCID-CONTENT-TYPE: cisco
package discover

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/ifparse"
	"github.com/cfgfacts/cfgfacts/pkg/mytime"
	"github.com/cfgfacts/cfgfacts/pkg/pattern"
	"golang.org/x/exp/slices"
)

// Entry describes one configuration backup.
type Entry struct {
	// Name of file, which is the name of the device.
	Hostname string
	Path     string
	Vendor   string
}

// Options restrict the files returned by List.
type Options struct {
	// Shell pattern matched against file names, "*" if empty.
	Glob string
	// Skip files not modified for this many days, 0 = off.
	MaxAge int
}

// List returns the configuration backups in dir sorted by hostname.
// Hidden files, empty files and anything not a regular file are
// skipped.
func List(dir string, opt Options) ([]Entry, error) {
	glob := opt.Glob
	if glob == "" {
		glob = "*"
	}
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("Invalid pattern %q: %v", glob, err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("Can't %v", err)
	}
	paths, _ := filepath.Glob(filepath.Join(dir, glob))
	var result []Entry
	for _, p := range paths {
		name := filepath.Base(p)
		if strings.HasPrefix(name, ".") {
			continue
		}
		st, err := os.Stat(p)
		if err != nil || !st.Mode().IsRegular() || st.Size() == 0 {
			continue
		}
		if mytime.OlderThan(st.ModTime(), opt.MaxAge) {
			continue
		}
		vendor, err := readVendor(p)
		if err != nil {
			return nil, err
		}
		result = append(result, Entry{Hostname: name, Path: p, Vendor: vendor})
	}
	slices.SortFunc(result, func(a, b Entry) int {
		return strings.Compare(a.Hostname, b.Hostname)
	})
	return result, nil
}

func readVendor(p string) (string, error) {
	fh, err := os.Open(p)
	if err != nil {
		return "", fmt.Errorf("Can't %v", err)
	}
	defer fh.Close()
	r := bufio.NewReader(fh)
	first, _ := r.ReadString('\n')
	if v, found := pattern.RancidType(first); found {
		return v, nil
	}
	return ifparse.VendorUnknown, nil
}

// Lines reads the backup and returns its lines without line
// terminators.
func (e Entry) Lines() ([]string, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("Can't %v", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

// Open returns a cursor reading the backup lazily. The caller must
// close the returned file.
func (e Entry) Open() (*ifparse.ReaderCursor, *os.File, error) {
	fh, err := os.Open(e.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("Can't %v", err)
	}
	return ifparse.NewReaderCursor(fh), fh, nil
}

// File returns the entry of a single backup given by path p.
func File(p string) (Entry, error) {
	vendor, err := readVendor(p)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Hostname: filepath.Base(p), Path: p, Vendor: vendor}, nil
}
