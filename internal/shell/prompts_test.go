package shell_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/shell"
)

func TestPrompter_PromptInt(t *testing.T) {
	t.Run("retries until a number is entered", func(t *testing.T) {
		var out bytes.Buffer
		p := shell.NewPrompter(strings.NewReader("abc\n12.5\n42\n"), &out)

		value, err := p.PromptInt("id: ")
		require.NoError(t, err)
		assert.Equal(t, 42, value)
		assert.Contains(t, out.String(), "valid whole number")
	})

	t.Run("end of input", func(t *testing.T) {
		p := shell.NewPrompter(strings.NewReader(""), io.Discard)
		_, err := p.PromptInt("id: ")
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestPrompter_PromptIntRange(t *testing.T) {
	var out bytes.Buffer
	p := shell.NewPrompter(strings.NewReader("17\n91\n25\n"), &out)

	value, err := p.PromptIntRange("age: ", 18, 90)
	require.NoError(t, err)
	assert.Equal(t, 25, value)
	assert.Contains(t, out.String(), "between 18 and 90")
}

func TestPrompter_PromptName(t *testing.T) {
	var out bytes.Buffer
	p := shell.NewPrompter(strings.NewReader("Ana2\n\nAna\n"), &out)

	name, err := p.PromptName("first name: ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)
}

func TestPrompter_PromptProvider(t *testing.T) {
	t.Run("young patient cannot pick PAMI", func(t *testing.T) {
		var out bytes.Buffer
		p := shell.NewPrompter(strings.NewReader("PAMI\nApres\n"), &out)

		provider, err := p.PromptProvider(45)
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderApres, provider)
		assert.Contains(t, out.String(), "aged 60 or older")
	})

	t.Run("older patient must pick PAMI", func(t *testing.T) {
		var out bytes.Buffer
		p := shell.NewPrompter(strings.NewReader("Swiss Medical\nPAMI\n"), &out)

		provider, err := p.PromptProvider(72)
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderPAMI, provider)
		assert.Contains(t, out.String(), "must use PAMI")
	})

	t.Run("unknown provider re-prompts", func(t *testing.T) {
		var out bytes.Buffer
		p := shell.NewPrompter(strings.NewReader("OSDE\nParticular\n"), &out)

		provider, err := p.PromptProvider(30)
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderParticular, provider)
		assert.Contains(t, out.String(), "Unknown insurance provider")
	})
}
