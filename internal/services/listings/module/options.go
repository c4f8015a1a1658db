package module

import (
	"strings"
	"time"

	"yukbul/internal/platform/config"
	"yukbul/internal/services/listings/service"
)

// Options holds configuration settings for the listings module
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	SearchLimit     int
	PGRetention     time.Duration
	PGMirror        bool

	PhoneMode     string
	Blacklist     []string
	BlacklistFile string

	GazetteerCache int
}

// FromConfig reads LISTINGS_*, EXTRACT_* and GAZETTEER_* settings
func FromConfig(cfg config.Conf) Options {
	l := cfg.Prefix("LISTINGS_")
	x := cfg.Prefix("EXTRACT_")
	return Options{
		TTL:             l.MayDuration("TTL", service.DefaultTTL),
		CleanupInterval: l.MayDuration("CLEANUP_INTERVAL", service.DefaultCleanupInterval),
		SearchLimit:     l.MayInt("SEARCH_LIMIT", 50),
		PGRetention:     l.MayDuration("PG_RETENTION", 24*time.Hour),
		PGMirror:        l.MayBool("PG_MIRROR", true),

		PhoneMode:     x.MayEnum("PHONE_MODE", "tolerant", "strict", "tolerant", "loose"),
		Blacklist:     x.MayCSV("BLACKLIST", nil),
		BlacklistFile: x.MayString("BLACKLIST_FILE", ""),

		GazetteerCache: cfg.Prefix("GAZETTEER_").MayInt("CACHE_SIZE", 1024),
	}
}

// blacklistFile is the YAML shape of EXTRACT_BLACKLIST_FILE
type blacklistFile struct {
	Entries []string `yaml:"entries"`
}

// LoadBlacklist returns the configured entries plus those of the file, if any
func (o Options) LoadBlacklist() ([]string, error) {
	out := append([]string(nil), o.Blacklist...)
	if strings.TrimSpace(o.BlacklistFile) == "" {
		return out, nil
	}
	var f blacklistFile
	if err := config.LoadYAML(o.BlacklistFile, &f); err != nil {
		return nil, err
	}
	return append(out, f.Entries...), nil
}
