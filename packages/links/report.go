package links

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
)

// Kind classifies a finding and selects the policy that governs it.
type Kind string

const (
	KindLink     Kind = "link"
	KindMarkdown Kind = "markdown"
	KindExternal Kind = "external"
)

// Finding is one link that does not resolve.
type Finding struct {
	Kind   Kind   `json:"kind"`
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Source, f.Target, f.Reason)
}

// Report holds the findings that survived policy application.
type Report struct {
	Warnings []Finding `json:"warnings,omitempty"`
	Errors   []Finding `json:"errors,omitempty"`
}

// HasErrors reports whether any finding is governed by an error policy.
func (r *Report) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// ErrBrokenLinks classifies a build stopped by an error policy.
var ErrBrokenLinks = errors.New("broken links")

// BrokenLinksError is returned when findings exist under an error policy.
type BrokenLinksError struct {
	Findings []Finding
}

func (e *BrokenLinksError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d broken link(s)", len(e.Findings))
	for _, f := range e.Findings {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}

func (e *BrokenLinksError) Is(target error) bool {
	return target == ErrBrokenLinks
}

// Policy returns the policy of cfg that governs findings of kind.
func Policy(cfg *config.SiteConfig, kind Kind) config.BrokenLinkPolicy {
	if kind == KindMarkdown {
		return cfg.OnBrokenMarkdownLinks
	}
	return cfg.OnBrokenLinks
}

// Apply sorts findings by the policies of cfg.
func Apply(cfg *config.SiteConfig, findings []Finding) (*Report, error) {
	report := &Report{}
	for _, f := range findings {
		switch Policy(cfg, f.Kind) {
		case config.PolicyIgnore:
		case config.PolicyError:
			report.Errors = append(report.Errors, f)
		default:
			report.Warnings = append(report.Warnings, f)
		}
	}

	if report.HasErrors() {
		return report, &BrokenLinksError{Findings: report.Errors}
	}
	return report, nil
}
