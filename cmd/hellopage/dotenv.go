// ABOUTME: Loads HELLOPAGE_* and other variables from .env files at startup.
// ABOUTME: Values already present in the environment always win over file contents.
package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// parseDotEnvLine splits one .env line into key and value. Blank lines,
// comments, and lines without '=' report ok=false. Accepts KEY=VALUE,
// KEY="VALUE", KEY='VALUE', and export KEY=VALUE.
func parseDotEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	// Values may themselves contain '='.
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if n := len(value); n >= 2 {
		if q := value[0]; (q == '"' || q == '\'') && value[n-1] == q {
			value = value[1 : n-1]
		}
	}
	return key, value, true
}

// loadDotEnv sets every variable from the file at path that is not already
// in the environment. A missing file is ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

// loadDotEnvAuto loads env files from, in order:
//  1. .env in the current directory and its parents
//  2. .env next to the current executable
//  3. config.env in the hellopage config directory
func loadDotEnvAuto() {
	for _, p := range dotEnvCandidates() {
		loadDotEnv(p)
	}
}

func dotEnvCandidates() []string {
	var paths []string
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		for dir := wd; ; {
			add(filepath.Join(dir, ".env"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if exe, err := os.Executable(); err == nil {
		add(filepath.Join(filepath.Dir(exe), ".env"))
	}
	if dir, err := defaultConfigDir(); err == nil {
		add(filepath.Join(dir, "config.env"))
	}
	return paths
}
