package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuote(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := quoteCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := runQuote(t, "--amount", "10000", "--weight", "1200", "--country", "gb")
	require.NoError(t, err)
	assert.Contains(t, out, "10000 JPY")
	assert.Contains(t, out, "$67.00")
	assert.Contains(t, out, "shipping 1200g to GB")
	assert.Contains(t, out, "Standard Shipping\t¥2250")
	assert.Contains(t, out, "Express Shipping\t¥6000")
}

func TestQuoteCommandRejectsBadInput(t *testing.T) {
	_, err := runQuote(t, "--weight", "999999")
	assert.Error(t, err)

	_, err = runQuote(t, "--country", "XX")
	assert.Error(t, err)
}
