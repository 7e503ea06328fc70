package showroom

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// AssembleOptions configures one assembly pass over a checkout.
type AssembleOptions struct {
	// Source and Revision are recorded on the Lab verbatim; they
	// describe where the checkout came from, not how to read it.
	Source   string
	Revision string

	// RequireSiteMetadata makes an absent or untitled default-site.yml
	// fatal. The remote flow sets it; the local-directory flow instead
	// falls back to the first module's title for the lab name.
	RequireSiteMetadata bool

	Logger *slog.Logger
}

// Assemble normalizes the checkout under dir into a Lab: site metadata,
// the navigation's ordered page references, and one Module per readable
// page. A referenced page that is missing or unreadable is skipped with
// a warning, since navigation is often ahead of content while a lab is
// being written.
func Assemble(dir string, opts AssembleOptions) (*Lab, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	meta, err := ReadSiteMeta(dir)
	if err != nil || meta.Title == "" {
		if opts.RequireSiteMetadata {
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSiteMetadataMissing, err)
			}
			return nil, fmt.Errorf("%w: no site.title in %s", ErrSiteMetadataMissing, SiteConfigFile)
		}
		if err != nil {
			logger.Warn("ignoring unreadable site metadata", slog.String("error", err.Error()))
			meta = SiteMeta{}
		}
	}

	refs, err := ParseNavigation(filepath.Join(dir, NavigationPath))
	if err != nil {
		return nil, err
	}

	pagesDir := filepath.Join(dir, PagesDir)
	modules := make([]Module, 0, len(refs))
	for _, ref := range refs {
		mod, err := ExtractModule(pagesDir, ref, ModuleOptions{
			SiteTitle: meta.Title,
			StartPage: meta.StartPage,
		})
		if err != nil {
			logger.Warn("skipping unreadable page",
				slog.String("filename", ref),
				slog.String("error", err.Error()))
			continue
		}
		modules = append(modules, mod)
	}

	name := meta.Title
	if name == "" && len(modules) > 0 {
		name = modules[0].Title
	}

	logger.Debug("assembled lab",
		slog.String("name", name),
		slog.Int("modules", len(modules)))

	return &Lab{
		Name:           name,
		SourceLocation: opts.Source,
		Revision:       opts.Revision,
		Modules:        modules,
	}, nil
}
