package command

import "strings"

// Tokenize splits a shell line into dispatcher tokens.
//
// Lines starting with help, set or color are split on whitespace. Any other
// line, consts included, becomes a single token holding the whole line
// (trimmed), so expressions may contain spaces without quoting.
// A blank line yields no tokens.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case NameHelp, NameSet, NameColor:
		return fields
	default:
		return []string{strings.TrimSpace(line)}
	}
}
