package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithAddr sets the relay address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Relay.Addr = addr
	return b
}

// WithListen makes this side the listening (White) side.
func (b *ConfigBuilder) WithListen(listen bool) *ConfigBuilder {
	b.cfg.Relay.Listen = listen
	return b
}

// WithDialTimeout sets the connect and handshake timeout.
func (b *ConfigBuilder) WithDialTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Relay.DialTimeout = d
	return b
}

// WithArchiveDir enables archiving to dir.
func (b *ConfigBuilder) WithArchiveDir(dir string) *ConfigBuilder {
	b.cfg.Archive.Dir = dir
	return b
}

// WithInMemoryArchive enables an in-memory archive.
func (b *ConfigBuilder) WithInMemoryArchive(enabled bool) *ConfigBuilder {
	b.cfg.Archive.InMemory = enabled
	return b
}

// WithGameID sets the id the game is archived under.
func (b *ConfigBuilder) WithGameID(id string) *ConfigBuilder {
	b.cfg.Archive.GameID = id
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Replay.Workers = n
	return b
}

// WithJSON selects JSON replay reports.
func (b *ConfigBuilder) WithJSON(enabled bool) *ConfigBuilder {
	b.cfg.Replay.JSON = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
