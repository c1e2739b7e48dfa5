package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTemplateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"csv-template", "--lang", "es"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		templateLang, templateOut = "en", ""
	})

	require.NoError(t, rootCmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "dia,ejercicio,repeticiones,series,video", lines[0])
}

func TestCSVTemplateCommandToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "template.csv")
	rootCmd.SetArgs([]string{"csv-template", "--out", target})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		templateLang, templateOut = "en", ""
	})

	require.NoError(t, rootCmd.Execute())
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "date,exercise,reps,sets,video\n"))
}

func TestMigrateRequiresConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
}
