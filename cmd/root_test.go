package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscore/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Log:   config.LogConfig{Level: "info", Format: "json"},
		Batch: config.BatchConfig{MaxConcurrentProspects: 2},
		Scoring: config.ScoringConfig{
			DefaultICP: "ecommerce_dtc",
		},
		Metrics: config.MetricsConfig{
			Source:        config.MetricsSourceNone,
			Seed:          42,
			Burst:         1,
			RetryAttempts: 1,
		},
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"icps", "score", "leaks", "project", "evaluate", "import"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "leadscore", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestInputFlags_Registered(t *testing.T) {
	for _, c := range []string{"score", "leaks", "evaluate", "import"} {
		cmd, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		for _, flag := range []string{"file", "charset", "sheet", "sheet-index", "limit"} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%s should have --%s", c, flag)
		}
	}
}

func TestScoreCommand_Flags(t *testing.T) {
	flag := scoreCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, formatTable, flag.DefValue)
	assert.NotNil(t, scoreCmd.Flags().Lookup("best-match"))
	assert.NotNil(t, scoreCmd.Flags().Lookup("icp"))
}

func TestProjectCommand_Flags(t *testing.T) {
	flag := projectCmd.Flags().Lookup("baseline")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}
