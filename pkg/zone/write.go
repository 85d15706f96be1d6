package zone

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/pkg/diff"
)

// WriteOptions control how generated zones are written.
type WriteOptions struct {
	Dir string
	// Print changes against existing zone file to Diff, if set.
	Diff io.Writer
	// Compare only, don't write any file.
	DryRun bool
}

// Write stores each zone in its file below opt.Dir. Files with
// unchanged content are not touched. It returns the names of files
// changed.
func Write(outs []Output, opt WriteOptions) ([]string, error) {
	if !opt.DryRun {
		if err := os.MkdirAll(opt.Dir, 0755); err != nil {
			return nil, fmt.Errorf("Can't %v", err)
		}
	}
	var changed []string
	for _, o := range outs {
		p := filepath.Join(opt.Dir, o.Zone.File)
		old, err := os.ReadFile(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return changed, fmt.Errorf("Can't %v", err)
		}
		if string(old) == o.Text {
			errlog.Info("Unchanged %s", p)
			continue
		}
		changed = append(changed, o.Zone.File)
		if opt.Diff != nil {
			err := diff.Text(p, p+".new", string(old), o.Text, opt.Diff)
			if err != nil {
				return changed, err
			}
		}
		if opt.DryRun {
			continue
		}
		errlog.Info("Writing %s", p)
		if err := os.WriteFile(p, []byte(o.Text), 0644); err != nil {
			return changed, fmt.Errorf("Can't %v", err)
		}
	}
	return changed, nil
}
