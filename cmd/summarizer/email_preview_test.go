package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailPreviewCommand(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"email-preview"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "https://example.com/article")
}

func TestEmailPreviewUnknownTemplate(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"email-preview", "--template", "welcome"})

	require.Error(t, cmd.Execute())
}
