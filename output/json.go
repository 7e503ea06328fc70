package output

import (
	"encoding/json"
	"io"

	"github.com/rhpds/showroom-tool/showroom"
)

// fetchPayload is the JSON shape of a fetch report: the lab overview
// without raw page content, plus the fetch diagnostics.
type fetchPayload struct {
	Lab    labOverview           `json:"lab"`
	Report *showroom.FetchReport `json:"report"`
}

type labOverview struct {
	Name           string           `json:"name"`
	SourceLocation string           `json:"source_location"`
	Revision       string           `json:"revision"`
	Modules        []moduleOverview `json:"modules"`
	TotalWords     int              `json:"total_words"`
	TotalLines     int              `json:"total_lines"`
}

type moduleOverview struct {
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	WordCount int    `json:"word_count"`
	LineCount int    `json:"line_count"`
}

func overview(lab *showroom.Lab) labOverview {
	modules := make([]moduleOverview, 0, len(lab.Modules))
	for _, mod := range lab.Modules {
		modules = append(modules, moduleOverview{
			Title:     mod.Title,
			Filename:  mod.Filename,
			WordCount: mod.WordCount,
			LineCount: mod.LineCount,
		})
	}
	return labOverview{
		Name:           lab.Name,
		SourceLocation: lab.SourceLocation,
		Revision:       lab.Revision,
		Modules:        modules,
		TotalWords:     lab.TotalWords(),
		TotalLines:     lab.TotalLines(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
