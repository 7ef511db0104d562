package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one command-line flag for completion scripts.
type FlagCompletion struct {
	Long      string   // without "--"; may be empty
	Short     string   // without "-"; may be empty
	Help      string
	Values    []string // fixed suggestions; nil for booleans
	ValueName string   // non-empty when the flag takes a value
	IsFile    bool
	IsAlgo    bool // values come from the calculator registry
}

// flagRegistry drives every generator; adding a flag here is enough.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "op", Help: "Operation to run", Values: []string{"fib", "even", "len"}, ValueName: "operation"},
	{Short: "n", Help: "Fibonacci index", ValueName: "number"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "value", Help: "Integer for --op even", ValueName: "integer"},
	{Long: "text", Help: "Text for --op len", ValueName: "text"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "max-recursive", Help: "Largest index for the recursive algorithm", Values: []string{"30", "40", "45"}, ValueName: "number"},
	{Long: "verbose", Short: "v", Help: "Show full results"},
	{Long: "details", Short: "d", Help: "Show timing and size details"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "calculate", Short: "c", Help: "Print the computed value"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Write the result to a file", IsFile: true, ValueName: "file"},
	{Long: "format", Help: "Result encoding", Values: []string{"text", "json", "yaml"}, ValueName: "format"},
	{Long: "metrics-file", Help: "Prometheus textfile to write on exit", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "repl", Help: "Start the interactive prompt"},
	{Long: "tui", Help: "Start the interactive explorer"},
	{Long: "demo", Help: "Run the demonstration sequence"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// SupportedShells lists the shells GenerateCompletion accepts.
var SupportedShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
	}
}

func (f FlagCompletion) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func generateBashCompletion(out io.Writer, algorithms []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, f.spellings()...)
	}

	var b strings.Builder
	b.WriteString("# bash completion for numkit\n")
	b.WriteString("_numkit_completions() {\n")
	b.WriteString("    local cur prev opts algorithms\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    opts=\"%s\"\n", strings.Join(opts, " "))
	fmt.Fprintf(&b, "    algorithms=\"%s\"\n\n", strings.Join(algorithms, " "))
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flagRegistry {
		if f.ValueName == "" {
			continue
		}
		pattern := strings.Join(f.spellings(), "|")
		switch {
		case f.IsAlgo:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W \"${algorithms}\" -- \"${cur}\") )\n            return 0\n            ;;\n", pattern)
		case f.IsFile:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", pattern)
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", pattern, strings.Join(f.Values, " "))
		default:
			fmt.Fprintf(&b, "        %s)\n            return 0\n            ;;\n", pattern)
		}
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _numkit_completions numkit\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func generateZshCompletion(out io.Writer, algorithms []string) error {
	var b strings.Builder
	b.WriteString("#compdef numkit\n\n")
	b.WriteString("_numkit() {\n")
	b.WriteString("    _arguments \\\n")
	for _, f := range flagRegistry {
		action := ""
		switch {
		case f.IsAlgo:
			action = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(algorithms, " "))
		case f.IsFile:
			action = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(f.Values) > 0:
			action = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			action = fmt.Sprintf(":%s:", f.ValueName)
		}
		spell := f.spellings()
		if len(spell) == 2 {
			fmt.Fprintf(&b, "        '(%s)'{%s}'[%s]%s' \\\n", strings.Join(spell, " "), strings.Join(spell, ","), f.Help, action)
		} else {
			fmt.Fprintf(&b, "        '%s[%s]%s' \\\n", spell[0], f.Help, action)
		}
	}
	b.WriteString("        '*:text:'\n")
	b.WriteString("}\n\n")
	b.WriteString("_numkit \"$@\"\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func generateFishCompletion(out io.Writer, algorithms []string) error {
	var b strings.Builder
	b.WriteString("# fish completion for numkit\n\n")
	for _, f := range flagRegistry {
		line := "complete -c numkit"
		if f.Long != "" {
			line += " -l " + f.Long
		}
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch {
		case f.IsAlgo:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(algorithms, " "))
		case f.IsFile:
			line += " -r -F"
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		case f.ValueName != "":
			line += " -x"
		}
		line += fmt.Sprintf(" -d '%s'", f.Help)
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}
