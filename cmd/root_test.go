package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{
		"summary", "matrix", "top", "opportunities", "trends", "similar",
		"locations", "outreach", "brand", "classify", "taxonomy", "report", "serve",
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "salesmix", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"sales", "mapping", "taxonomy", "auto-classify", "business-category", "from", "to"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}

func TestBrandCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range brandCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"match", "catalog", "fit", "market", "outreach"} {
		assert.True(t, names[name], "expected brand subcommand %q not found", name)
	}
	require.NotNil(t, brandCmd.PersistentFlags().Lookup("catalog"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestOutputFlags(t *testing.T) {
	for _, c := range []struct {
		name     string
		template bool
	}{
		{"top", false},
		{"outreach", true},
	} {
		cmd, _, err := rootCmd.Find([]string{c.name})
		require.NoError(t, err)
		assert.NotNil(t, cmd.Flags().Lookup("format"))
		assert.NotNil(t, cmd.Flags().Lookup("output"))
		assert.Equal(t, c.template, cmd.Flags().Lookup("template") != nil)
	}
}
