package main

import (
	"fmt"
	"net"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/alex65536/pagegate/internal/webui"
)

type HTTPSOptions struct {
	CachePath            string   `toml:"cache-path"`
	AllowedSecureDomains []string `toml:"allowed-secure-domains"`
	ExposeInsecure       bool     `toml:"expose-insecure"`
	SecurePort           string   `toml:"secure-port"`
}

type Options struct {
	Host      string        `toml:"host"`
	Port      string        `toml:"port"`
	FlagsPath string        `toml:"flags"`
	LogLevel  string        `toml:"log-level"`
	LogJSON   bool          `toml:"log-json"`
	Prefix    string        `toml:"prefix"`
	HTTPS     *HTTPSOptions `toml:"https"`
	WebUI     webui.Options `toml:"webui"`
}

func (o *Options) FillDefaults() {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.Port == "" {
		o.Port = "8080"
	}
	if o.HTTPS != nil && o.HTTPS.SecurePort == "" {
		o.HTTPS.SecurePort = "8443"
	}
}

func (o *Options) AddrWithPort() string {
	return net.JoinHostPort(o.Host, o.Port)
}

func (o *Options) SecureAddrWithPort() string {
	return net.JoinHostPort(o.Host, o.HTTPS.SecurePort)
}

func loadOptions(path string) (Options, error) {
	var opts Options
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	md, err := toml.Decode(string(raw), &opts)
	if err != nil {
		return Options{}, fmt.Errorf("unmarshal options: %w", err)
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		return Options{}, fmt.Errorf("unknown option %q", undec[0].String())
	}
	opts.FillDefaults()
	return opts, nil
}
