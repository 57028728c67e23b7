package render

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"text/template"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// TemplateData is the data exposed to template-substitution targets. Colours
// are reached through the bound template functions; anything else a target's
// config language needs (shell-evaluated clock or weather expressions, for
// example) is written literally in the template and emitted verbatim.
type TemplateData struct {
	// Wallpaper is the absolute path of the selected wallpaper image.
	Wallpaper string
}

// templateStrategy renders a template into the destination, fully
// overwriting it.
type templateStrategy struct{}

func (templateStrategy) render(t Target, rc Context) error {
	content, err := loadTemplate(t.Template)
	if err != nil {
		return err
	}

	tmpl, err := template.New(t.Name).Funcs(templateFuncs(rc.Artifact.Palette)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, TemplateData{Wallpaper: rc.Wallpaper}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return writeFileAtomic(t.Destination, buf.Bytes(), 0o644)
}

// loadTemplate resolves a target's template reference. A filesystem path
// takes precedence; otherwise the reference names a built-in template.
func loadTemplate(ref string) ([]byte, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		content, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", ref, err)
		}
		return content, nil
	}

	content, err := builtinTemplates.ReadFile(path.Join("templates", ref+".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("no template file or built-in template named %q", ref)
	}
	return content, nil
}

// BuiltinTemplates lists the names of the embedded templates.
func BuiltinTemplates() []string {
	entries, err := builtinTemplates.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(".tmpl")])
	}
	return names
}
