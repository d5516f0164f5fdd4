package mail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "bpr-presale.backend/internal/domain/errors"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(content), 0o644))
}

func TestTemplateRenderer_SubstitutesAllPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "first-contact",
		`<p>Hello {{fullName}} ({{email}})</p><p>Wallet: {{walletAddress}}</p><p>Since {{registrationDate}}</p>`)

	r := NewTemplateRenderer(dir)
	out, err := r.Render("first-contact", map[string]string{
		"fullName":         "Ana",
		"email":            "a@b.com",
		"walletAddress":    "0xabcdef0123456789abcdef0123456789abcdef01",
		"registrationDate": "January 1, 2024",
	})
	require.NoError(t, err)
	require.NotContains(t, out, "{{")
	require.Contains(t, out, "Ana")
	require.Contains(t, out, "a@b.com")
	require.Contains(t, out, "January 1, 2024")
}

func TestTemplateRenderer_EmptyValueRendersDash(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "reminder", `Wallet: {{walletAddress}}`)

	r := NewTemplateRenderer(dir)
	out, err := r.Render("reminder", map[string]string{"walletAddress": ""})
	require.NoError(t, err)
	require.Equal(t, "Wallet: -", out)
}

func TestTemplateRenderer_RepeatedPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "reminder", `{{fullName}} and again {{fullName}}`)

	r := NewTemplateRenderer(dir)
	out, err := r.Render("reminder", map[string]string{"fullName": "Bob"})
	require.NoError(t, err)
	require.Equal(t, "Bob and again Bob", out)
}

func TestTemplateRenderer_UnknownKeyLeftAlone(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "reminder", `{{fullName}} {{unrecognized}}`)

	r := NewTemplateRenderer(dir)
	out, err := r.Render("reminder", map[string]string{"fullName": "Bob"})
	require.NoError(t, err)
	require.Equal(t, "Bob {{unrecognized}}", out)
}

func TestTemplateRenderer_MissingTemplate(t *testing.T) {
	r := NewTemplateRenderer(t.TempDir())
	_, err := r.Render("no-such-template", map[string]string{})
	require.ErrorIs(t, err, domainerrors.ErrTemplateNotFound)
}
