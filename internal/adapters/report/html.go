package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// HTML artifact names
const (
	HTMLFile        = "index.html"
	MethodologyFile = "methodology.html"
)

//go:embed templates/*.html templates/*.md
var templateFS embed.FS

var funcs = template.FuncMap{
	"money":     FormatMoney,
	"price":     func(v int64) string { return FormatMoney(float64(v)) },
	"amount":    FormatAmount,
	"signedPct": FormatSignedPct,
	"pct":       func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	"title":     sectionTitle,
	"details":   details,
	"lower":     strings.ToLower,
	"badge":     badgeClass,
}

// HTMLWriter renders the browsable report and its methodology page
type HTMLWriter struct {
	markdown goldmark.Markdown
}

func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

func (w *HTMLWriter) Name() string { return FormatHTML }

// Write creates index.html and methodology.html, returning the index path
func (w *HTMLWriter) Write(rep *Report, dir string) (string, error) {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse templates: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", rep); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	index := filepath.Join(dir, HTMLFile)
	if err := os.WriteFile(index, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	body, err := w.methodology()
	if err != nil {
		return "", err
	}
	buf.Reset()
	data := struct {
		Title string
		Body  template.HTML
	}{rep.Title, body}
	if err := tmpl.ExecuteTemplate(&buf, "methodology.html", data); err != nil {
		return "", fmt.Errorf("failed to execute methodology template: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MethodologyFile), buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	return index, nil
}

func (w *HTMLWriter) methodology() (template.HTML, error) {
	src, err := templateFS.ReadFile("templates/methodology.md")
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := w.markdown.Convert(src, &out); err != nil {
		return "", fmt.Errorf("render methodology: %w", err)
	}
	// Embedded and trusted
	return template.HTML(out.String()), nil
}

func sectionTitle(t asset.Type) string {
	switch t {
	case asset.TypeLaptop:
		return "Laptops"
	case asset.TypePC:
		return "Desktop PCs"
	case asset.TypeMonitor:
		return "Monitors"
	case asset.TypePrinter:
		return "Printers"
	case asset.TypeScanner:
		return "Scanners"
	case asset.TypeServerDevice:
		return "Network & Server Equipment"
	}
	return string(t)
}

// details is the type-specific description column
func details(a AssetRow) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	switch a.Type {
	case asset.TypeLaptop, asset.TypePC:
		add(a.Processor)
		if a.Generation > 0 {
			add(fmt.Sprintf("Gen %d", a.Generation))
		}
		if a.RAMGB > 0 {
			add(fmt.Sprintf("%d GB RAM", a.RAMGB))
		}
		add(a.Storage)
		add(a.GPU)
	case asset.TypePrinter, asset.TypeScanner:
		add(a.Function)
		add(a.DeviceSerial)
	case asset.TypeServerDevice:
		add(a.DeviceSerial)
		add(a.Status)
	default:
		add(a.User)
	}
	return strings.Join(parts, " · ")
}

func badgeClass(category string) string {
	switch strings.ToLower(category) {
	case "excellent":
		return "badge-excellent"
	case "good":
		return "badge-good"
	case "moderate":
		return "badge-moderate"
	case "special":
		return "badge-special"
	}
	return "badge-default"
}
