// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/select2.yaml`                       – primary static file,
//   • `SELECT2_`-prefixed environment overrides – highest precedence.
//
// The aggregate is read once at startup, validated, and then threaded
// explicitly to the registry and widget construction sites; nothing reads
// configuration at import time.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database holds the DSN for the source tables auto widgets filter.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Cache section
//

// Cache configures the widget registry store.  Backend selects between
// the in-process store and Redis; Prefix namespaces registry keys; TTL is
// how long a rendered page keeps a live handle.
type Cache struct {
	Backend    string        `koanf:"backend" validate:"oneof=memory redis"`
	RedisAddrs []string      `koanf:"redis_addrs"`
	Prefix     string        `koanf:"prefix"`
	TTL        time.Duration `koanf:"ttl"`
	// Capacity bounds the memory backend's entry count.
	Capacity int `koanf:"capacity"`
}

//
// Select2 section
//

// Select2 holds widget-rendering toggles and the key-signing secret.
type Select2 struct {
	// AutoRenderStatics controls whether pages emit asset tags.
	AutoRenderStatics bool `koanf:"auto_render_statics"`
	// Bootstrap links the bootstrap theme stylesheet.
	Bootstrap bool `koanf:"bootstrap"`
	// SigningKey is the base64url HMAC key for registry tokens.  When
	// empty an ephemeral key is generated at startup.
	SigningKey string `koanf:"signing_key"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the process lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Cache    Cache    `koanf:"cache"`
	Select2  Select2  `koanf:"select2"`
}

// withDefaults fills the gaps YAML and env left open.
func (c *Config) withDefaults() {
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "select2_"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = 4096
	}
}
