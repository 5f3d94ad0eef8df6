// ABOUTME: Help display for the hellopage CLI with styled section headings, flags, and examples.
// ABOUTME: Styling adapts to the output writer, so redirected help stays plain text.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2389-research/hellopage/page"
	"github.com/charmbracelet/lipgloss"
)

// printHelp writes usage, grouped flags, examples, and environment status to w.
func printHelp(w io.Writer, ver string) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	section := r.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	muted := r.NewStyle().Foreground(lipgloss.Color("241"))

	fmt.Fprintln(w, title.Render("hellopage "+ver)+" serves a static Hello, World page at /")
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Usage:"))
	fmt.Fprintln(w, "  hellopage [flags]")
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Server Flags:"))
	fmt.Fprintf(w, "  -host <host>          Listen host (default: %s)\n", defaultHost)
	fmt.Fprintf(w, "  -port <port>          Listen port (default: %d)\n", defaultPort)
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Page Flags:"))
	fmt.Fprintf(w, "  -variant <name>       Built-in page: %s (default: %s)\n", strings.Join(page.Variants(), ", "), page.DefaultVariant)
	fmt.Fprintln(w, "  -page <file.yaml>     Serve a custom page definition")
	fmt.Fprintln(w, "  -variants             List built-in page variants")
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Other:"))
	fmt.Fprintln(w, "  -config <file.yaml>   Config file (default: $XDG_CONFIG_HOME/hellopage/config.yaml)")
	fmt.Fprintln(w, "  -verbose              Verbose output")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Examples:"))
	fmt.Fprintln(w, "  hellopage")
	fmt.Fprintln(w, "  hellopage -port 8080 -variant classic")
	fmt.Fprintln(w, "  hellopage -page welcome.yaml")
	fmt.Fprintln(w)

	fmt.Fprintln(w, section.Render("Environment:"))
	for _, key := range []string{envConfig, envHost, envPort, envVariant, envPage} {
		fmt.Fprintf(w, "  %-21s %s\n", key, muted.Render(envStatus(key)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
