package prompt

import (
	"fmt"
	"strings"

	"github.com/rhpds/showroom-tool/showroom"
)

// contentDelimiter visually fences each module's raw content so the
// model can attribute text to its source file.
var contentDelimiter = strings.Repeat("-", 50)

// renderLab serializes a lab for the user half of the bundle: site
// metadata first, then every module in navigation order with its raw
// content fenced by delimiter lines.
func renderLab(lab *showroom.Lab) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LAB TITLE: %s\n", lab.Name)
	fmt.Fprintf(&b, "REPOSITORY: %s\n", lab.SourceLocation)
	fmt.Fprintf(&b, "BRANCH/REF: %s\n", lab.Revision)
	fmt.Fprintf(&b, "TOTAL MODULES: %d\n", len(lab.Modules))
	b.WriteString("\n")

	for i, m := range lab.Modules {
		fmt.Fprintf(&b, "MODULE %d: %s\n", i+1, m.Title)
		fmt.Fprintf(&b, "FILENAME: %s\n", m.Filename)
		b.WriteString("CONTENT:\n")
		b.WriteString(contentDelimiter)
		b.WriteString("\n")
		b.WriteString(m.RawContent)
		b.WriteString("\n")
		b.WriteString(contentDelimiter)
		b.WriteString("\n")
		if i < len(lab.Modules)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
