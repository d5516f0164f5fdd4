package mail

import (
	"os"
	"path/filepath"
	"strings"

	domainerrors "bpr-presale.backend/internal/domain/errors"
)

// TemplateRenderer loads named email templates and substitutes
// {{key}} placeholders. This is deliberately a literal key-to-value
// substitution with a fixed set of recognized keys per template, not
// a template language: no conditionals, no loops.
type TemplateRenderer struct {
	dir string
}

// NewTemplateRenderer creates a renderer reading templates from dir
func NewTemplateRenderer(dir string) *TemplateRenderer {
	return &TemplateRenderer{dir: dir}
}

// Render loads <name>.html and replaces every {{key}} occurrence with
// the supplied value. A recognized key with an empty value renders as
// a single dash rather than being left blank.
func (r *TemplateRenderer) Render(name string, fields map[string]string) (string, error) {
	path := filepath.Join(r.dir, name+".html")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domainerrors.ErrTemplateNotFound
		}
		return "", err
	}

	content := string(raw)
	for key, value := range fields {
		if value == "" {
			value = "-"
		}
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content, nil
}
