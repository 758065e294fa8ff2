package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	t.Run("with frontmatter", func(t *testing.T) {
		t.Parallel()

		tpl, err := mailer.ParseTemplate([]byte("---\nSubject: New Project Enquiry from {{.Name}}\nLayout: base.html\nPriority: high\n---\nHello **{{.Name}}**\n"))
		require.NoError(t, err)
		assert.Equal(t, "New Project Enquiry from {{.Name}}", tpl.Meta.Subject)
		assert.Equal(t, "base.html", tpl.Meta.Layout)
		assert.Equal(t, "high", tpl.Meta.Extra["Priority"])
		assert.Equal(t, "Hello **{{.Name}}**\n", tpl.Body)
	})

	t.Run("without frontmatter", func(t *testing.T) {
		t.Parallel()

		tpl, err := mailer.ParseTemplate([]byte("# Title\n\nbody"))
		require.NoError(t, err)
		assert.Empty(t, tpl.Meta.Subject)
		assert.Equal(t, "# Title\n\nbody", tpl.Body)
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		t.Parallel()

		tpl, err := mailer.ParseTemplate([]byte("---\n---\nbody"))
		require.NoError(t, err)
		assert.Empty(t, tpl.Meta.Subject)
		assert.Equal(t, "body", tpl.Body)
	})

	t.Run("windows line endings", func(t *testing.T) {
		t.Parallel()

		tpl, err := mailer.ParseTemplate([]byte("---\r\nSubject: Hi\r\n---\r\nline one\r\nline two"))
		require.NoError(t, err)
		assert.Equal(t, "Hi", tpl.Meta.Subject)
		assert.Equal(t, "line one\nline two", tpl.Body)
	})

	t.Run("horizontal rule in body is kept", func(t *testing.T) {
		t.Parallel()

		tpl, err := mailer.ParseTemplate([]byte("---\nSubject: Hi\n---\nabove\n\n---\n\nbelow"))
		require.NoError(t, err)
		assert.Equal(t, "above\n\n---\n\nbelow", tpl.Body)
	})

	t.Run("missing closing delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := mailer.ParseTemplate([]byte("---\nSubject: Hi\nbody"))
		require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
	})

	t.Run("nothing after opening delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := mailer.ParseTemplate([]byte("---\n"))
		require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := mailer.ParseTemplate([]byte("---\nSubject: [unclosed\n---\nbody"))
		require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
	})
}
