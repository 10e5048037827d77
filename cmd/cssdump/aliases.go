package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadAliases reads the harness's aliases_file: one "alias canonical"
// pair per line, blank lines and lines starting with '#' ignored. It
// lets a fixture's #expected section write a terse or historical
// property spelling ("bgcolor") while this tool resolves it to the
// CSS 2.1 name ("background-color") css.PropertyOpcode recognizes.
func loadAliases(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	aliases := map[string]string{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected \"alias canonical\", got %q", path, lineNo, line)
		}
		aliases[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return aliases, nil
}

// resolveProperty applies aliases, then falls through to name
// unchanged if it isn't aliased (most fixtures use the canonical name
// directly and never touch aliases_file at all).
func resolveProperty(aliases map[string]string, name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
