package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	lines := []string{"# ScaleMate configuration (TOML)", ""}
	top, sections, order := groupOptions(GetConfigOptions(), nil)
	for _, o := range top {
		appendOption(&lines, o)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			appendOption(&lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML appends options missing from an existing config and comments
// out keys that are no longer part of the schema. It reports whether
// anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	present := make(map[string]bool)
	section := ""
	in := strings.Split(existing, "\n")
	out := make([]string, 0, len(in))
	changed := false
	for _, line := range in {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if section != "" {
			full = section + "." + key
		}
		present[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema")
			out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}

	top, sections, order := groupOptions(GetConfigOptions(), present)
	if len(top) > 0 || len(order) > 0 {
		out = append(out, "", "# Added by config update")
		for _, o := range top {
			appendOption(&out, o)
		}
		for _, s := range order {
			out = append(out, "["+s+"]")
			for _, o := range sections[s] {
				appendOption(&out, o)
			}
		}
		changed = true
	}
	return strings.Join(out, "\n"), changed
}

// groupOptions splits dotted keys into sections, skipping keys in skip.
// Section options carry their short key.
func groupOptions(opts []ConfigOption, skip map[string]bool) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var top []ConfigOption
	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range opts {
		if skip[o.Key] {
			continue
		}
		name, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, seen := sections[name]; !seen {
			order = append(order, name)
		}
		sections[name] = append(sections[name], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func appendOption(lines *[]string, o ConfigOption) {
	if o.Comment != "" {
		*lines = append(*lines, "# "+o.Comment)
	}
	*lines = append(*lines, fmt.Sprintf("%s = %s", o.Key, formatTOMLValue(o.Default)), "")
}

func formatTOMLValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case []string:
		quoted := make([]string, 0, len(v))
		for _, s := range v {
			quoted = append(quoted, strconv.Quote(s))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
