package config

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const configHeader = "# dockable configuration. Every key can be overridden with DOCKABLE_<SECTION>_<KEY>.\n"

var sectionHeader = regexp.MustCompile(`^(\s*)\[([^\]]+)\]\s*$`)

// WriteConfigOrdered writes cfg as TOML: fields in struct order, tables
// sorted by name so rewrites produce stable diffs.
func WriteConfigOrdered(cfg *Config, path string) error {
	data, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeConfig renders cfg the way WriteConfigOrdered stores it.
func EncodeConfig(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(configHeader + sortTOMLSections(buf.String())), nil
}

type tomlSection struct {
	name  string
	lines []string
}

// sortTOMLSections reorders TOML tables alphabetically. Keys before the
// first table stay on top; nested tables sort after their parent.
func sortTOMLSections(content string) string {
	var preamble []string
	var sections []tomlSection

	for _, line := range strings.Split(content, "\n") {
		if match := sectionHeader.FindStringSubmatch(line); match != nil {
			sections = append(sections, tomlSection{name: match[2], lines: []string{line}})
			continue
		}
		if len(sections) == 0 {
			preamble = append(preamble, line)
			continue
		}
		last := &sections[len(sections)-1]
		last.lines = append(last.lines, line)
	}

	slices.SortStableFunc(sections, func(a, b tomlSection) int {
		return cmp.Compare(a.name, b.name)
	})

	var out strings.Builder
	writeBlock := func(lines []string) {
		block := strings.TrimRight(strings.Join(lines, "\n"), "\n ")
		if block == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(strings.TrimLeft(block, "\n"))
	}

	writeBlock(preamble)
	for _, sec := range sections {
		writeBlock(sec.lines)
	}
	if out.Len() == 0 {
		return ""
	}
	out.WriteString("\n")
	return out.String()
}
