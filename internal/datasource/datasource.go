// Package datasource loads the records the demo offers as options and
// filters them as the user types.
package datasource

import (
	_ "embed"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/errors"
	"github.com/zhubert/combobox/internal/logger"
	"gopkg.in/yaml.v3"
)

//go:embed states.yaml
var defaultData []byte

// DefaultSource names the embedded data set in logs and errors.
const DefaultSource = "<embedded states>"

// Mode selects how Filter matches typed text.
type Mode string

const (
	// ModePrefix keeps records whose fields start with the term, ignoring case.
	ModePrefix Mode = "prefix"
	// ModeFuzzy keeps records matching the term as a subsequence, best first.
	ModeFuzzy Mode = "fuzzy"
)

// Modes lists the filter modes in display order.
func Modes() []Mode {
	return []Mode{ModePrefix, ModeFuzzy}
}

// ParseMode converts a flag or config value into a Mode. Empty means prefix.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePrefix:
		return ModePrefix, nil
	case ModeFuzzy:
		return ModeFuzzy, nil
	}
	return "", errors.UnknownFilterMode(s)
}

// Load reads a YAML list of records from path. An empty path loads the
// embedded US states.
func Load(path string) ([]combobox.Record, error) {
	if path == "" {
		return Parse(defaultData, DefaultSource)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.DataSourceNotFound(path, err)
	}
	if err != nil {
		return nil, errors.DataSourceReadFailed(path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML list of records. source is only used in errors.
func Parse(data []byte, source string) ([]combobox.Record, error) {
	var records []combobox.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.DataSourceParseFailed(source, err)
	}
	// A null entry decodes as a nil map
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	if dropped := len(records) - len(out); dropped > 0 {
		logger.Warn("dropped %d empty record(s) from %s", dropped, source)
	}
	logger.ComponentLogger("datasource").Debug("records loaded", "source", source, "count", len(out))
	return out, nil
}

// Filter returns the records matching term on any of the given fields. An
// empty term matches everything. Prefix mode keeps the input order; fuzzy
// mode orders by match quality.
func Filter(records []combobox.Record, term string, mode Mode, fields ...func(combobox.Record) string) []combobox.Record {
	if term == "" || len(fields) == 0 {
		return records
	}
	if mode == ModeFuzzy {
		return fuzzyFilter(records, term, fields)
	}

	term = strings.ToLower(term)
	var out []combobox.Record
	for _, r := range records {
		for _, field := range fields {
			if strings.HasPrefix(strings.ToLower(field(r)), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// searchable adapts records to fuzzy.Source.
type searchable struct {
	records []combobox.Record
	fields  []func(combobox.Record) string
}

func (s searchable) String(i int) string {
	parts := make([]string, len(s.fields))
	for j, field := range s.fields {
		parts[j] = field(s.records[i])
	}
	return strings.Join(parts, " ")
}

func (s searchable) Len() int { return len(s.records) }

func fuzzyFilter(records []combobox.Record, term string, fields []func(combobox.Record) string) []combobox.Record {
	matches := fuzzy.FindFrom(term, searchable{records: records, fields: fields})
	out := make([]combobox.Record, len(matches))
	for i, m := range matches {
		out[i] = records[m.Index]
	}
	return out
}
