package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

// aliases map alternative names onto registered formatters
var aliases = map[string]string{
	"table":           "console",
	"text":            "console",
	"console-verbose": "verbose",
	"detailed":        "verbose",
	"yml":             "yaml",
	"htm":             "html",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(JSONFormatter{})
	register(YAMLFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames returns the registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats report with the named formatter and writes it to w.
func Render(w io.Writer, name string, report *Report) error {
	f := GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted formats report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("npad_report_%s.%s", time.Now().Format("20060102_150405"), strings.TrimPrefix(ext, "."))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return filename, nil
}
