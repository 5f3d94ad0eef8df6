// ABOUTME: CLI entrypoint for hellopage, which serves a static "Hello, World" page at the root path.
// ABOUTME: Parses flags, resolves configuration, and runs the web server until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2389-research/hellopage/page"
	"github.com/2389-research/hellopage/web"
)

var version = "dev"

// config holds all CLI configuration parsed from flags.
type config struct {
	host         string
	port         int
	variant      string
	pageFile     string
	configFile   string
	listVariants bool
	verbose      bool
	showVersion  bool

	set map[string]bool // flags given explicitly on the command line
}

func (c config) isSet(name string) bool {
	return c.set[name]
}

func main() {
	loadDotEnvAuto()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags(args []string) (config, error) {
	cfg := config{set: make(map[string]bool)}

	fs := flag.NewFlagSet("hellopage", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.host, "host", defaultHost, "Listen host")
	fs.IntVar(&cfg.port, "port", defaultPort, "Listen port")
	fs.StringVar(&cfg.variant, "variant", page.DefaultVariant, "Built-in page variant")
	fs.StringVar(&cfg.pageFile, "page", "", "YAML page definition to serve instead of a built-in variant")
	fs.StringVar(&cfg.configFile, "config", "", "YAML config file (default: $XDG_CONFIG_HOME/hellopage/config.yaml)")
	fs.BoolVar(&cfg.listVariants, "variants", false, "List built-in page variants and exit")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})
	return cfg, nil
}

// run dispatches to the appropriate mode based on the flags.
// Returns an exit code: 0 for success, 1 for failure, 2 for usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, version)
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'hellopage -help' for usage.")
		return 2
	}

	if cfg.showVersion {
		fmt.Fprintf(stdout, "hellopage %s\n", version)
		return 0
	}

	if cfg.listVariants {
		for _, name := range page.Variants() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	s, err := resolveSettings(cfg, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return runServer(s, cfg.verbose, stderr)
}

// runServer builds the web server and serves until interrupted.
func runServer(s settings, verbose bool, stderr io.Writer) int {
	def, err := s.PageDefinition()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:            s.Addr(),
		Page:            def,
		ShutdownTimeout: s.ShutdownTimeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if verbose {
		log.Printf("config host=%s port=%d variant=%s page=%q shutdown_timeout=%s",
			s.Host, s.Port, s.Variant, s.Page, s.ShutdownTimeout)
	}

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(stderr, "\nInterrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(stderr, "serving page %q on http://%s/\n", def.Name, s.Addr())
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}
