// Package summary renders a human readable overview of a snapshot.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/ui/output"
	"go.trai.ch/depsub/internal/ui/style"
)

// Renderer formats snapshots with lipgloss styles bound to one writer.
type Renderer struct {
	title    lipgloss.Style
	manifest lipgloss.Style
	direct   lipgloss.Style
	indirect lipgloss.Style
	muted    lipgloss.Style
}

// New creates a renderer for w using profile.
func New(w io.Writer, profile output.ProfileFunc) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile())
	return &Renderer{
		title:    r.NewStyle().Bold(true).Foreground(style.Iris),
		manifest: r.NewStyle().Bold(true),
		direct:   r.NewStyle().Foreground(style.Green),
		indirect: r.NewStyle().Foreground(style.Slate),
		muted:    r.NewStyle().Foreground(style.Slate).Faint(true),
	}
}

// Write renders snapshot to w with the detected color profile.
func Write(w io.Writer, snapshot *domain.Snapshot) error {
	_, err := io.WriteString(w, New(w, output.Detect).Render(snapshot))
	return err
}

// Render returns the summary, one line per package, ending in a newline.
func (r *Renderer) Render(snapshot *domain.Snapshot) string {
	var b strings.Builder

	commit := snapshot.SHA()
	if commit == "" {
		commit = "(no commit)"
	}
	b.WriteString(r.title.Render("Snapshot " + commit))
	if snapshot.Ref() != "" {
		b.WriteString(r.muted.Render(" on " + snapshot.Ref()))
	}
	b.WriteByte('\n')

	d := snapshot.Detector()
	b.WriteString(r.muted.Render(fmt.Sprintf("Detector %s %s (%s)", d.Name, d.Version, d.URL)))
	b.WriteByte('\n')

	for _, m := range snapshot.Manifests() {
		b.WriteByte('\n')
		r.renderManifest(&b, m)
	}
	return b.String()
}

func (r *Renderer) renderManifest(b *strings.Builder, m *domain.Manifest) {
	direct := m.DirectDependencies()
	indirect := m.IndirectDependencies()

	header := m.Name()
	if m.SourceLocation() != "" && m.SourceLocation() != m.Name() {
		header += " (" + m.SourceLocation() + ")"
	}
	b.WriteString(r.manifest.Render(header))
	b.WriteString(r.muted.Render(fmt.Sprintf(": %d direct, %d indirect", len(direct), len(indirect))))
	b.WriteByte('\n')

	if len(direct)+len(indirect) == 0 {
		b.WriteString(r.muted.Render("  (no dependencies)"))
		b.WriteByte('\n')
		return
	}
	for _, pkg := range direct {
		r.renderPackage(b, m, pkg, r.direct.Render(style.Dot))
	}
	for _, pkg := range indirect {
		r.renderPackage(b, m, pkg, r.indirect.Render(style.Circle))
	}
}

func (r *Renderer) renderPackage(b *strings.Builder, m *domain.Manifest, pkg *domain.Package, icon string) {
	b.WriteString("  ")
	b.WriteString(icon)
	b.WriteByte(' ')
	b.WriteString(pkg.PackageID())
	if dep, ok := m.LookupDependency(pkg); ok && dep.Scope != domain.ScopeUnspecified {
		b.WriteString(r.muted.Render(" [" + string(dep.Scope) + "]"))
	}
	b.WriteByte('\n')
}
