package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abdul-hamid-achik/docsite/packages/artifact"
	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/abdul-hamid-achik/docsite/packages/docs"
	"github.com/abdul-hamid-achik/docsite/packages/links"
	"github.com/abdul-hamid-achik/docsite/packages/sidebar"
)

// DefaultOutDir is the output directory, relative to the site root.
const DefaultOutDir = "build"

// Options configures a pipeline run.
type Options struct {
	Root     string // site root, defaults to "."
	OutDir   string // artifact directory, defaults to <Root>/build
	DryRun   bool   // run every check but write nothing
	External bool   // probe external links over HTTP
	Prober   *links.Prober
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Stage records how long one pipeline stage took.
type Stage struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Result describes a pipeline run. Fields are filled as far as the run got.
type Result struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Docs      int           `json:"docs"`
	Sidebars  []string      `json:"sidebars,omitempty"`
	Routes    []string      `json:"routes,omitempty"`
	Report    *links.Report `json:"report,omitempty"`
	Artifact  string        `json:"artifact,omitempty"`
	Stages    []Stage       `json:"stages,omitempty"`
}

type pipeline struct {
	site   *config.SiteConfig
	opts   Options
	log    zerolog.Logger
	result *Result

	resources config.Resources
	index     *docs.Index
	extra     []string
}

// Run executes the pipeline for site, which must come from config.Load or
// config.LoadFile. site is only read.
func Run(ctx context.Context, site *config.SiteConfig, opts Options) (*Result, error) {
	if site == nil {
		return nil, errors.New("build: nil site configuration")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.OutDir == "" {
		opts.OutDir = filepath.Join(opts.Root, DefaultOutDir)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	p := &pipeline{
		site: site,
		opts: opts,
		result: &Result{
			ID:        uuid.NewString(),
			StartedAt: opts.Now(),
		},
	}
	p.log = opts.Logger.With().Str("build_id", p.result.ID).Logger()

	stages := []struct {
		name string
		run  func(ctx context.Context) error
	}{
		{"resources", p.resolveResources},
		{"docs", p.scanDocs},
		{"sidebars", p.checkSidebars},
		{"links", p.checkLinks},
		{"artifact", p.writeArtifact},
	}

	begin := time.Now()
	defer func() {
		p.result.Duration = time.Since(begin)
	}()

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return p.result, fmt.Errorf("build cancelled before %s: %w", stage.name, err)
		}
		start := time.Now()
		err := stage.run(ctx)
		took := time.Since(start)
		p.result.Stages = append(p.result.Stages, Stage{Name: stage.name, Duration: took})
		if err != nil {
			p.log.Error().Err(err).Str("stage", stage.name).Msg("build failed")
			return p.result, err
		}
		p.log.Debug().Str("stage", stage.name).Dur("took", took).Msg("stage complete")
	}

	p.log.Info().Int("docs", p.result.Docs).Str("artifact", p.result.Artifact).Msg("build complete")
	return p.result, nil
}

func (p *pipeline) resolveResources(_ context.Context) error {
	res, err := p.site.ResolveResources(p.opts.Root)
	if err != nil {
		return err
	}
	p.resources = res
	return nil
}

func (p *pipeline) scanDocs(_ context.Context) error {
	dir := config.ResolvePath(p.opts.Root, p.site.Docs.Path)
	idx, err := docs.Scan(dir, docs.Options{
		BaseURL:       p.site.BaseURL,
		RouteBasePath: p.site.Docs.RouteBasePath,
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &config.ResourceNotFoundError{Field: "docs.path", Path: p.site.Docs.Path, Resolved: dir, Err: err}
		}
		return fmt.Errorf("scanning docs: %w", err)
	}
	p.index = idx
	p.result.Docs = len(idx.Docs)
	return nil
}

func (p *pipeline) checkSidebars(_ context.Context) error {
	var violations []config.Violation

	var def *sidebar.Definition
	if p.resources.Sidebar != "" {
		loaded, err := sidebar.Load(p.resources.Sidebar)
		if err != nil {
			return &config.ConfigurationError{Source: p.resources.Sidebar, Err: err}
		}
		def = loaded.Expand(p.index.IDs())
		p.result.Sidebars = def.IDs()

		for _, id := range def.DocIDs() {
			if _, ok := p.index.ByID(id); !ok {
				violations = append(violations, config.Violation{
					Field:   "docs.sidebarPath",
					Value:   id,
					Message: fmt.Sprintf("sidebar references unknown doc id %q", id),
				})
			}
		}
		for _, slug := range def.Routes() {
			p.extra = append(p.extra, docs.JoinRoute(p.site.BaseURL, p.site.Docs.RouteBasePath, slug))
		}
	}

	for i, item := range p.site.ThemeConfig.Navbar.Items {
		if item.Type != config.NavItemDocSidebar {
			continue
		}
		field := fmt.Sprintf("themeConfig.navbar.items[%d].sidebarId", i)
		switch {
		case def == nil:
			violations = append(violations, config.Violation{
				Field:   field,
				Value:   item.SidebarID,
				Message: "docSidebar item requires docs.sidebarPath",
			})
		case !def.Has(item.SidebarID):
			violations = append(violations, config.Violation{
				Field:   field,
				Value:   item.SidebarID,
				Message: fmt.Sprintf("unknown sidebar %q", item.SidebarID),
			})
		}
	}

	if len(violations) > 0 {
		return &config.ConfigurationError{Source: p.resources.Sidebar, Violations: violations}
	}
	return nil
}

func (p *pipeline) checkLinks(ctx context.Context) error {
	checker := links.NewChecker(p.site, p.index,
		links.WithRoutes(p.extra...),
		links.WithStaticDir(filepath.Join(p.opts.Root, config.StaticDir)),
	)
	findings := checker.Check()

	if p.opts.External {
		prober := p.opts.Prober
		if prober == nil {
			prober = links.NewProber()
		}
		external, err := prober.Probe(ctx, checker.External())
		if err != nil {
			return err
		}
		findings = append(findings, external...)
	}

	routes := append(p.index.Routes(), p.extra...)
	sort.Strings(routes)
	p.result.Routes = routes

	report, err := links.Apply(p.site, findings)
	p.result.Report = report
	for _, f := range report.Warnings {
		p.log.Warn().Str("source", f.Source).Str("target", f.Target).Str("kind", string(f.Kind)).Msg(f.Reason)
	}
	return err
}

func (p *pipeline) writeArtifact(_ context.Context) error {
	if p.opts.DryRun {
		p.log.Debug().Msg("dry run, artifact not written")
		return nil
	}
	a := artifact.New(p.result.ID, p.result.StartedAt, p.site, p.result.Routes)
	path, err := artifact.Write(p.opts.OutDir, a)
	if err != nil {
		return err
	}
	p.result.Artifact = path
	return nil
}
