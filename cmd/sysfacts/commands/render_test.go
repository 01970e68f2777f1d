package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/facts"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

var sample = []facts.ResolvedFact{
	{Name: "memory.swap.total", Value: "2.00 GB", Kind: facts.KindPrimary},
	{Name: "memory.swap.total_bytes", Value: uint64(2147483648), Kind: facts.KindPrimary},
	{Name: "os.windows.edition_id", Value: nil, Kind: facts.KindPrimary},
	{Name: "processors.models", Value: []string{"Xeon", "Xeon"}, Kind: facts.KindPrimary},
	{Name: "swapsize", Value: "2.00 GB", Kind: facts.KindLegacy},
}

func TestRenderFacts_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFacts(&buf, sample, config.FormatText, false))

	assert.Equal(t, strings.Join([]string{
		"memory.swap.total => 2.00 GB",
		"memory.swap.total_bytes => 2147483648",
		"os.windows.edition_id => ",
		`processors.models => ["Xeon", "Xeon"]`,
		"swapsize => 2.00 GB",
	}, "\n")+"\n", buf.String())
}

func TestRenderFacts_TextBareValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFacts(&buf, sample[:1], config.FormatText, true))
	assert.Equal(t, "2.00 GB\n", buf.String())
}

func TestRenderFacts_JSONNests(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFacts(&buf, sample, config.FormatJSON, false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	memory := got["memory"].(map[string]any)
	swap := memory["swap"].(map[string]any)
	assert.Equal(t, "2.00 GB", swap["total"])
	assert.Equal(t, float64(2147483648), swap["total_bytes"])
	assert.Equal(t, "2.00 GB", got["swapsize"])

	windows := got["os"].(map[string]any)["windows"].(map[string]any)
	assert.Contains(t, windows, "edition_id")
	assert.Nil(t, windows["edition_id"])
}

func TestRenderFacts_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFacts(&buf, sample, config.FormatYAML, false))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2.00 GB", got["swapsize"])
	assert.Contains(t, buf.String(), "edition_id: null")
}

func TestRenderFacts_TOMLDropsNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFacts(&buf, sample, config.FormatTOML, false))

	var got map[string]any
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2.00 GB", got["swapsize"])
	assert.NotContains(t, got, "os", "a branch holding only nil values disappears")
}

func TestRenderFacts_UnknownFormat(t *testing.T) {
	err := RenderFacts(&bytes.Buffer{}, sample, "xml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTextValue(t *testing.T) {
	assert.Equal(t, "", textValue(nil))
	assert.Equal(t, "true", textValue(true))
	assert.Equal(t, "{a => 1, b => }", textValue(map[string]any{"b": nil, "a": 1}))
}

func TestSelectDomains(t *testing.T) {
	all, err := selectDomains(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	one, err := selectDomains([]string{"swap_memory"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "swap_memory", one[0].String())

	_, err = selectDomains([]string{"network"})
	require.Error(t, err)
}

func TestDomainsCmd_ListsSubValues(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{RunE: runDomains}
	cmd.Flags().Bool("resolve", false, "")
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"product_release"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "product_release")
	assert.Contains(t, out, "display_version")
	assert.NotContains(t, out, "swap_memory")
}

func TestWriteConfig(t *testing.T) {
	cfg := &config.Config{Gather: config.GatherConfig{Workers: 7}, Output: config.OutputConfig{Format: config.FormatJSON}}

	for _, format := range []string{"toml", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)
			require.NoError(t, writeConfig(cmd, cfg, format))
			assert.Contains(t, buf.String(), "workers")
			assert.Contains(t, buf.String(), "7")
		})
	}

	require.Error(t, writeConfig(&cobra.Command{}, cfg, "ini"))
}

func TestVersionCmd_JSON(t *testing.T) {
	var buf bytes.Buffer
	VersionCmd.SetOut(&buf)
	t.Cleanup(func() { VersionCmd.SetOut(nil) })
	require.NoError(t, VersionCmd.Flags().Set("json", "true"))
	t.Cleanup(func() { _ = VersionCmd.Flags().Set("json", "false") })

	VersionCmd.Run(VersionCmd, nil)

	var info map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Contains(t, info, "go_version")
}
