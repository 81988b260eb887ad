package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/config"
	"github.com/zhubert/combobox/internal/datasource"
)

func attrsConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

func attrsRecords(t *testing.T) []combobox.Record {
	t.Helper()
	records, err := datasource.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return records
}

// attrLines splits the output into element name and attribute text.
func attrLines(out string) map[string]string {
	lines := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, "option ") {
			fields := strings.Fields(line)
			lines["option "+fields[1]] = line
			continue
		}
		name, rest, _ := strings.Cut(line, " ")
		lines[name] = strings.TrimSpace(rest)
	}
	return lines
}

func TestWriteAttributes_Closed(t *testing.T) {
	cfg := attrsConfig(t)
	cfg.Value = "AK"

	var buf bytes.Buffer
	err := writeAttributes(&buf, cfg, attrsRecords(t), attrsSnapshot{Filter: "ala", Cursor: -1})
	if err != nil {
		t.Fatalf("writeAttributes: %v", err)
	}
	lines := attrLines(buf.String())

	if got := lines["container"]; got != "" {
		t.Errorf("closed container attrs = %q, want none", got)
	}
	input := lines["input"]
	for _, want := range []string{`role="combobox"`, `aria-autocomplete="both"`, `aria-owns="combobox-list-`, `placeholder="Choose a state"`} {
		if !strings.Contains(input, want) {
			t.Errorf("input attrs %q missing %s", input, want)
		}
	}
	if got := lines["toggle"]; got != `aria-hidden="true" tabindex="-1"` {
		t.Errorf("toggle attrs = %q", got)
	}

	alaska := lines["option AK"]
	if !strings.HasSuffix(alaska, `role="option" selected="true" tabindex="-1"`) {
		t.Errorf("AK line = %q, want selected option", alaska)
	}
	alabama := lines["option AL"]
	if alabama == "" {
		t.Fatal("AL option missing from filtered output")
	}
	if !strings.HasSuffix(alabama, `role="option" tabindex="-1"`) {
		t.Errorf("AL line = %q, should not be selected", alabama)
	}
	if _, ok := lines["option TX"]; ok {
		t.Error("filter should exclude TX")
	}
}

func TestWriteAttributes_OpenWithCursor(t *testing.T) {
	cfg := attrsConfig(t)

	var buf bytes.Buffer
	err := writeAttributes(&buf, cfg, attrsRecords(t), attrsSnapshot{Filter: "new", Open: true, Cursor: 0})
	if err != nil {
		t.Fatalf("writeAttributes: %v", err)
	}
	lines := attrLines(buf.String())

	if got := lines["container"]; got != `is-open="true"` {
		t.Errorf("open container attrs = %q", got)
	}

	first := lines["option NH"]
	if first == "" {
		t.Fatalf("NH option missing:\n%s", buf.String())
	}
	start := strings.Index(first, `id="`) + len(`id="`)
	id := first[start : start+strings.Index(first[start:], `"`)]
	if !strings.Contains(lines["input"], `aria-activedescendant="`+id+`"`) {
		t.Errorf("input attrs %q should point at %s", lines["input"], id)
	}
}

func TestWriteAttributes_InvalidPath(t *testing.T) {
	cfg := attrsConfig(t)
	cfg.ValuePath = "a..b"

	var buf bytes.Buffer
	if err := writeAttributes(&buf, cfg, attrsRecords(t), attrsSnapshot{Cursor: -1}); err == nil {
		t.Error("writeAttributes should reject an invalid value path")
	}
}
