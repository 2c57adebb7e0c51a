package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/asset-divider/internal/infrastructure/config"
)

const laptopCSV = `Purchase,SL,Name,Model,RAM,Processor,Storage,Gen,GPU,User,Location,Level,Status,Remarks
New Purchase,,,,,,,,,,,,,
,1,Dell,P106F,8GB,i5,256GB SSD,8,,Alice,HQ,2,Active,Excellent
,2,Dell,P106F,8GB,i5,256GB SSD,8,,Omar,HQ,2,Active,Good
Reconditioned,,,,,,,,,,,,,
,3,HP,EliteBook 840 G5,8GB,i5,256GB SSD,8,,Bob,HQ,3,Active,Moderate
`

func monitorCSV() string {
	var b strings.Builder
	b.WriteString("SL,Name,Model,User,Location,Level,Status,Remarks\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "%d,Dell,P2419H,User %d,HQ,2,Active,Good\n", i, i)
	}
	b.WriteString(",,,,,,,\n")
	b.WriteString("x,Broken,,,,,,\n")
	return b.String()
}

type fixture struct {
	dir    string
	config string
	output string
	db     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		output: filepath.Join(dir, "output"),
		db:     filepath.Join(dir, "runs.db"),
	}

	laptops := filepath.Join(dir, "laptops.csv")
	monitors := filepath.Join(dir, "monitors.csv")
	require.NoError(t, os.WriteFile(laptops, []byte(laptopCSV), 0o644))
	require.NoError(t, os.WriteFile(monitors, []byte(monitorCSV()), 0o644))

	yaml := fmt.Sprintf(`sources:
  - name: Laptop
    kind: laptop
    path: %q
  - name: Monitor
    kind: monitor
    path: %q
output:
  dir: %q
  formats: [json, html]
storage:
  database_path: %q
observability:
  logging:
    level: error
`, laptops, monitors, f.output, f.db)
	require.NoError(t, os.WriteFile(f.config, []byte(yaml), 0o644))
	return f
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_WritesReportsAndRecordsHistory(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "--config", f.config, "run")
	require.NoError(t, err)

	assert.Contains(t, out, "WRITE mode")
	assert.Contains(t, out, "9 assets from 2 sources, 1 rows skipped")
	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "Reports:")
	assert.FileExists(t, filepath.Join(f.output, "allocation.json"))
	assert.FileExists(t, filepath.Join(f.output, "index.html"))
	assert.NoFileExists(t, filepath.Join(f.output, "allocation.xlsx"))

	out, err = execute(t, "--config", f.config, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "false")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "--config", f.config, "run", "--dry-run", "--output", filepath.Join(f.dir, "other"))
	require.NoError(t, err)

	assert.Contains(t, out, "DRY-RUN mode")
	assert.NotContains(t, out, "Reports:")
	assert.NoDirExists(t, f.output)
	assert.NoDirExists(t, filepath.Join(f.dir, "other"))
}

func TestRun_UnknownFormatFails(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "--config", f.config, "run", "--format", "pdf")
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "--config", f.config, "inspect")
	require.NoError(t, err)

	assert.Contains(t, out, "New=2 Reconditioned=1")
	assert.Contains(t, out, "Total: 9 assets | Laptop: 3 | Monitor: 6")
	assert.Contains(t, out, `Monitor row 9: non-numeric serial "x"`)
}

func TestQuote(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	out, err := execute(t, "--config", missing, "quote",
		"--type", "laptop", "--name", "Dell", "--model", "P106F", "--remark", "Excellent")
	require.NoError(t, err)

	assert.Contains(t, out, "Laptop #1 Dell P106F")
	assert.Contains(t, out, "110,000")
	assert.Contains(t, out, "(name+model)")
	assert.Contains(t, out, "30%")
	assert.Contains(t, out, "77,000.00")
}

func TestQuote_SpecialPC(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	out, err := execute(t, "--config", missing, "quote",
		"--type", "pc", "--serial", "11", "--name", "HP ProDesk", "--remark", "Excellent")
	require.NoError(t, err)
	assert.Contains(t, out, "90% (Special, x0.10)")
}

func TestQuote_RequiresType(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "quote", "--name", "Dell")
	require.Error(t, err)
}

func TestHistory_RequiresLedger(t *testing.T) {
	t.Setenv("ASSET_DIVIDER_DB_PATH", "")
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [unclosed"), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestRunFlags_ToOptions(t *testing.T) {
	cfg := config.Default()

	opts := RunFlags{}.ToOptions(cfg)
	assert.Equal(t, cfg.Output.Dir, opts.OutputDir)
	assert.Equal(t, cfg.Output.Formats, opts.Formats)
	assert.Equal(t, "BDT", opts.Currency)

	opts = RunFlags{OutputDir: "out", Formats: []string{"json"}, DryRun: true, Title: "Q3"}.ToOptions(cfg)
	assert.Equal(t, "out", opts.OutputDir)
	assert.Equal(t, []string{"json"}, opts.Formats)
	assert.True(t, opts.DryRun)
	assert.Equal(t, "Q3", opts.Title)
}
