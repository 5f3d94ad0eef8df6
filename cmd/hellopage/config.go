// ABOUTME: Resolves server settings from defaults, a YAML config file, environment, and flags.
// ABOUTME: Later sources win: defaults < config file < HELLOPAGE_* environment < explicit flags.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/2389-research/hellopage/page"
	"github.com/2389-research/hellopage/web"
	"gopkg.in/yaml.v3"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 3000
)

// Environment variables recognized by the CLI.
const (
	envConfig  = "HELLOPAGE_CONFIG"
	envHost    = "HELLOPAGE_HOST"
	envPort    = "HELLOPAGE_PORT"
	envVariant = "HELLOPAGE_VARIANT"
	envPage    = "HELLOPAGE_PAGE"
)

// settings is the merged server configuration. Its YAML form is the config file.
type settings struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Variant         string        `yaml:"variant"`
	Page            string        `yaml:"page"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func defaultSettings() settings {
	return settings{
		Host:            defaultHost,
		Port:            defaultPort,
		Variant:         page.DefaultVariant,
		ShutdownTimeout: web.DefaultShutdownTimeout,
	}
}

// Addr joins host and port into a listen address.
func (s settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// PageDefinition loads the page file when one is configured, otherwise the
// named built-in variant.
func (s settings) PageDefinition() (page.Definition, error) {
	if s.Page != "" {
		return page.Load(s.Page)
	}
	return page.Builtin(s.Variant)
}

func (s settings) validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", s.Port)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %s: must be positive", s.ShutdownTimeout)
	}
	return nil
}

// resolveSettings merges every configuration source for cfg.
func resolveSettings(cfg config, getenv func(string) string) (settings, error) {
	s := defaultSettings()

	path, required := cfg.configFile, cfg.configFile != ""
	if !required {
		if p := getenv(envConfig); p != "" {
			path, required = p, true
		}
	}
	if !required {
		if dir, err := defaultConfigDir(); err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}
	if path != "" {
		if err := applyConfigFile(&s, path, required); err != nil {
			return settings{}, err
		}
	}

	if err := applyEnv(&s, getenv); err != nil {
		return settings{}, err
	}
	applyFlags(&s, cfg)

	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

// applyConfigFile overlays non-zero values from a YAML config file. A missing
// file is an error only when it was explicitly requested.
func applyConfigFile(s *settings, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file settings
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if file.Host != "" {
		s.Host = file.Host
	}
	if file.Port != 0 {
		s.Port = file.Port
	}
	if file.Variant != "" {
		s.Variant = file.Variant
	}
	if file.Page != "" {
		// Relative page paths are relative to the config file.
		if !filepath.IsAbs(file.Page) {
			file.Page = filepath.Join(filepath.Dir(path), file.Page)
		}
		s.Page = file.Page
	}
	if file.ShutdownTimeout != 0 {
		s.ShutdownTimeout = file.ShutdownTimeout
	}
	return nil
}

// applyEnv overlays HELLOPAGE_* variables. Like the -variant flag, a variant
// from the environment clears a page file from the config file.
func applyEnv(s *settings, getenv func(string) string) error {
	if v := getenv(envHost); v != "" {
		s.Host = v
	}
	if v := getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envPort, v, err)
		}
		s.Port = port
	}
	pageFromEnv := getenv(envPage)
	if v := getenv(envVariant); v != "" {
		s.Variant = v
		if pageFromEnv == "" {
			s.Page = ""
		}
	}
	if pageFromEnv != "" {
		s.Page = pageFromEnv
	}
	return nil
}

// applyFlags overlays flags the user passed explicitly. A variant flag clears
// any page file picked up from the environment or config file.
func applyFlags(s *settings, cfg config) {
	if cfg.isSet("host") {
		s.Host = cfg.host
	}
	if cfg.isSet("port") {
		s.Port = cfg.port
	}
	if cfg.isSet("variant") {
		s.Variant = cfg.variant
		if !cfg.isSet("page") {
			s.Page = ""
		}
	}
	if cfg.isSet("page") {
		s.Page = cfg.pageFile
	}
}
