package config

// Config carries optional overrides. Nil fields mean "not set", so layers
// merge without clobbering each other; precedence is file < env < flags.
type Config struct {
	TimeoutMS *int    `toml:"timeout_ms" yaml:"timeout_ms" json:"timeout_ms"`
	TTY       *string `toml:"tty" yaml:"tty" json:"tty"`
	Debug     *bool   `toml:"debug" yaml:"debug" json:"debug"`
}

// Settings is a fully resolved, validated configuration.
type Settings struct {
	TimeoutMS int
	TTY       string
	Debug     bool
}
