package program

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/errlog"
)

var defaultVals = map[string]string{
	"cache_ttl": "86400", // refresh cached facts after one day
	"workers":   "8",
	"zone_dir":  "zones/",
	"max_age":   "0", // ignore configs older than this (in days), 0 = off
}

// Default directory with configuration backups.
const DefaultConfDir = "configs/"

type Config struct {
	// Directory with configuration backups, one file per device.
	ConfDir     string
	CacheDir    string
	CacheTTL    int
	RedisAddr   string
	Workers     int
	StripDomain string
	ZoneFile    string
	ZoneDir     string
	MaxAge      int
	// Name of file where config was read from, empty if none found.
	File string
}

// Use most specific config file; ignore others.
// No config file at all is fine, default values are used then.
func LoadConfig() (*Config, error) {
	home, _ := os.UserHomeDir()
	confPaths := []string{
		path.Join(home, ".cfgfacts"),
		"/usr/local/etc/cfgfacts",
		"/etc/cfgfacts",
	}
	var data []byte
	var file string
	for _, p := range confPaths {
		var err error
		data, err = os.ReadFile(p)
		if err == nil {
			file = p
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("Can't %v", err)
		}
	}

	c := Config{File: file}
	seen := make(map[string]bool)

	insert := func(key, val string) error {
		getInt := func() (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil {
				return i, fmt.Errorf("Expected integer value for '%s' in %s: %v",
					key, file, err)
			}
			if i < 0 {
				return 0, fmt.Errorf(
					"Expected positive integer for '%s' in %s: %v", key, file, i)
			}
			return i, nil
		}
		var err error
		switch key {
		case "conf_dir":
			c.ConfDir = val
		case "cache_dir":
			c.CacheDir = val
		case "cache_ttl":
			c.CacheTTL, err = getInt()
		case "redis_addr":
			c.RedisAddr = val
		case "workers":
			c.Workers, err = getInt()
			if err == nil && c.Workers == 0 {
				err = fmt.Errorf("Expected at least 1 for '%s' in %s", key, file)
			}
		case "strip_domain":
			c.StripDomain = val
		case "zone_file":
			c.ZoneFile = val
		case "zone_dir":
			c.ZoneDir = val
		case "max_age":
			c.MaxAge, err = getInt()
		default:
			errlog.Warning("Ignoring key '%s' in %s", key, file)
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		words := strings.Fields(line)
		if len(words) == 0 || words[0][0] == '#' {
			continue
		}
		if len(words) != 3 || words[1] != "=" {
			errlog.Warning("Ignoring line '%s' in %s", line, file)
			continue
		}
		key := words[0]
		if seen[key] {
			errlog.Warning("Ignoring duplicate key '%s' in %s", key, file)
			continue
		}
		seen[key] = true
		if err := insert(key, words[2]); err != nil {
			return nil, err
		}
	}
	for key, val := range defaultVals {
		if !seen[key] {
			if err := insert(key, val); err != nil {
				return nil, err
			}
		}
	}
	if c.CacheDir == "" {
		c.CacheDir = home
	}
	return &c, nil
}

// SelectConfDir returns the directory with configuration backups.
// It is taken from the first of
//   - argument dir, given on command line,
//   - environment variable CONF_DIR,
//   - last line of file ~/.conf_dir, if it names a directory,
//   - key conf_dir of config file,
//   - DefaultConfDir.
func (c *Config) SelectConfDir(dir string) string {
	if dir != "" {
		return dir
	}
	if d := os.Getenv("CONF_DIR"); d != "" {
		return d
	}
	if d := readConfDirFile(); d != "" {
		return d
	}
	if c.ConfDir != "" {
		return c.ConfDir
	}
	return DefaultConfDir
}

func readConfDirFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path.Join(home, ".conf_dir"))
	if err != nil {
		return ""
	}
	dir := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dir = line
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return ""
	}
	return dir
}

func (c *Config) GetVal(key string) string {
	switch key {
	case "conf_dir":
		return c.ConfDir
	case "cache_dir":
		return c.CacheDir
	case "cache_ttl":
		return strconv.Itoa(c.CacheTTL)
	case "redis_addr":
		return c.RedisAddr
	case "workers":
		return strconv.Itoa(c.Workers)
	case "strip_domain":
		return c.StripDomain
	case "zone_file":
		return c.ZoneFile
	case "zone_dir":
		return c.ZoneDir
	case "max_age":
		return strconv.Itoa(c.MaxAge)
	}
	return ""
}
