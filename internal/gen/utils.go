package gen

import "strings"

func write(sb *strings.Builder, s ...string) {
	for _, str := range s {
		sb.WriteString(str)
	}
}

func writeln(sb *strings.Builder, s ...string) {
	write(sb, s...)
	sb.WriteByte('\n')
}

// writeRule writes a rule with no prerequisites whose recipe runs commands
// in order
func writeRule(sb *strings.Builder, target string, commands ...[]string) {
	writeln(sb, target, ":")
	for _, cmd := range commands {
		writeln(sb, "\t", strings.Join(cmd, " "))
	}
}
