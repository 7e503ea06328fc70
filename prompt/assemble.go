// Package prompt assembles model-ready instruction bundles from a
// schema's field catalog and an assembled lab. Assembly is a pure
// function of its inputs: no I/O, no clock, no model call, so a bundle
// can be rendered for inspection without invoking anything.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhpds/showroom-tool/showroom"
)

// FieldType names the wire type of a schema field.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeStringList FieldType = "array of strings"
	TypeScore      FieldType = "number"
)

// Field describes one schema field: its wire name, its type, and the
// natural-language description that doubles as the model's behavioral
// directive for that field.
type Field struct {
	Name        string
	Type        FieldType
	Description string
}

// Bundle is the fully assembled instruction pair sent to the model.
// Bundles are transient: built fresh per invocation, never persisted.
type Bundle struct {
	System string `json:"system_instructions"`
	User   string `json:"user_content"`
}

// Build assembles the system and user content for one analysis run.
// The system half layers the base prompt, one behavioral block per
// field in declaration order, and an optional hints section; the user
// half serializes the lab. Identical inputs produce byte-identical
// bundles.
func Build(base string, fields []Field, lab *showroom.Lab, hints map[string]any) Bundle {
	system := base
	if len(fields) > 0 {
		system += "\n\n" + fieldInstructions(fields)
	}
	if len(hints) > 0 {
		system += hintSection(hints)
	}
	return Bundle{System: system, User: renderLab(lab)}
}

// fieldInstructions renders one behavioral-boundary block per field.
// Each block isolates its field's directive from all others to prevent
// cross-field instruction bleed.
func fieldInstructions(fields []Field) string {
	sections := make([]string, 0, len(fields))
	for _, f := range fields {
		sections = append(sections, fmt.Sprintf(
			"%s FIELD BEHAVIORAL INSTRUCTIONS:\nIGNORE everything except this field's specific focus. Your analytical approach for this field: %s\n",
			strings.ToUpper(f.Name), f.Description))
	}

	return "\nFIELD-SPECIFIC BEHAVIORAL INSTRUCTIONS:\n" +
		"Each field below requires a COMPLETELY DIFFERENT analytical approach. Do not mix behaviors between fields.\n\n" +
		strings.Join(sections, "\n") +
		"\n\nCRITICAL: Each field has its own FOCUS, IGNORE, and ACT LIKE instructions. Apply each field's behavioral approach independently. Do not let one field's focus contaminate another field's analysis."
}

// hintSection renders free-form context hints. Labels render in sorted
// order so bundles stay reproducible regardless of map iteration.
func hintSection(hints map[string]any) string {
	labels := make([]string, 0, len(hints))
	for label := range hints {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString("\n\nCONTEXT HINTS TO CONSIDER:\n")
	b.WriteString("Use these hints to improve accuracy and provide additional clarity, but do not summarize them.\n\n")
	for _, label := range labels {
		b.WriteString(strings.ToUpper(label) + ":\n")
		writeHintValue(&b, hints[label])
		b.WriteString("\n")
	}
	return b.String()
}

func writeHintValue(b *strings.Builder, value any) {
	switch v := value.(type) {
	case string:
		b.WriteString(v + "\n")
	case []string:
		for _, item := range v {
			fmt.Fprintf(b, "- %s\n", item)
		}
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "- %s: %s\n", k, v[k])
		}
	default:
		fmt.Fprintf(b, "%v\n", v)
	}
}
