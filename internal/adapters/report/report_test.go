package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/remark"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	assets := []*asset.Asset{
		{Type: asset.TypeLaptop, Serial: 2, Name: "Dell", Model: "P106F", Processor: "i7", Generation: 11, RAMGB: 16,
			PurchaseType: asset.PurchaseNew, ConditionRemark: "Excellent", MarketPrice: 110000, CurrentValue: 77000,
			DepreciationRate: "30%", RemarkCategory: "Excellent"},
		{Type: asset.TypeLaptop, Serial: 1, Name: "HP", Model: "440 G8", MarketPrice: 85000, CurrentValue: 51000,
			PurchaseType: asset.PurchaseNew, ConditionRemark: "Good", DepreciationRate: "40%", RemarkCategory: "Good"},
		{Type: asset.TypePC, Serial: 11, Name: "HP ProDesk", MarketPrice: 60000, CurrentValue: 6000,
			ConditionRemark: "Good", DepreciationRate: "90%", RemarkCategory: "Special"},
		{Type: asset.TypeMonitor, Serial: 1, Name: "Samsung", MarketPrice: 15000, CurrentValue: 10500,
			ConditionRemark: "Excellent", DepreciationRate: "30%", RemarkCategory: "Excellent"},
		{Type: asset.TypeServerDevice, Serial: 1, Name: "UPS generic", DeviceSerial: "AS1", MarketPrice: 160000,
			CurrentValue: 80000, ConditionRemark: "Moderate", DepreciationRate: "50%", RemarkCategory: "Moderate"},
		{Type: asset.TypeScanner, Serial: 1, Name: "Canon scanner", Function: "Scan", MarketPrice: 10000,
			CurrentValue: 7000, ConditionRemark: "Excellent", DepreciationRate: "30%", RemarkCategory: "Excellent"},
	}
	result := allocator.Partition(assets, allocator.DefaultConfig())
	remark.Annotate(result)

	return Build(result, Meta{
		RunID:       "run-123",
		Title:       "Test Division",
		Currency:    "BDT",
		GeneratedAt: time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		Sources:     5,
		Skipped:     2,
	})
}

func TestBuild(t *testing.T) {
	rep := sampleReport(t)

	assert.Equal(t, "run-123", rep.RunID)
	assert.Equal(t, 6, rep.AssetCount)
	assert.InDelta(t, 231500, rep.TotalValue, 1e-9)
	assert.InDelta(t, 77166.67, rep.TargetValue, 1e-9)
	require.Len(t, rep.Groups, 3)
	require.Len(t, rep.Assets, 6)

	// Type order first, then group, then serial
	var types []asset.Type
	for _, a := range rep.Assets {
		types = append(types, a.Type)
	}
	assert.Equal(t, []asset.Type{
		asset.TypeLaptop, asset.TypeLaptop, asset.TypePC, asset.TypeMonitor, asset.TypeScanner, asset.TypeServerDevice,
	}, types)

	var total float64
	count := 0
	for _, g := range rep.Groups {
		total += g.Total
		count += g.Count
		n := 0
		for _, s := range g.Sections {
			n += len(s.Assets)
		}
		assert.Equal(t, g.Count, n)
	}
	assert.Equal(t, 6, count)
	assert.InDelta(t, rep.TotalValue, total, 0.02)

	assert.Equal(t, []TypeCount{
		{asset.TypeLaptop, 2}, {asset.TypePC, 1}, {asset.TypeMonitor, 1},
		{asset.TypeScanner, 1}, {asset.TypeServerDevice, 1},
	}, rep.TypeCounts)

	// 80,000 alone exceeds the target, so balancing stops short and says why
	assert.Equal(t, 4, rep.HighValueCount)
	assert.False(t, rep.Converged)
	assert.True(t, rep.Stalled)
	assert.False(t, rep.Exhausted)
	assert.Equal(t, allocator.OutcomeStalled, rep.Outcome)
}

func TestBuild_Defaults(t *testing.T) {
	rep := Build(allocator.Partition(nil, allocator.DefaultConfig()), Meta{})
	assert.Equal(t, defaultTitle, rep.Title)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Len(t, rep.Groups, 3)
	assert.Empty(t, rep.Assets)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,568", FormatMoney(1234567.5))
	assert.Equal(t, "77,166.67", FormatAmount(77166.666))
	assert.Equal(t, "+0.42%", FormatSignedPct(0.4213))
	assert.Equal(t, "-1.50%", FormatSignedPct(-1.5))
}

func TestNewWriters(t *testing.T) {
	writers, err := NewWriters([]string{"json", "HTML", "xlsx", "json"})
	require.NoError(t, err)
	require.Len(t, writers, 3)
	assert.Equal(t, "json", writers[0].Name())
	assert.Equal(t, "html", writers[1].Name())

	_, err = NewWriters([]string{"pdf"})
	assert.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	rep := sampleReport(t)
	dir := filepath.Join(t.TempDir(), "out")

	writers, err := NewWriters([]string{"html", "json", "xlsx"})
	require.NoError(t, err)

	paths, err := WriteAll(rep, dir, writers)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, HTMLFile), paths["html"])
	assert.Equal(t, filepath.Join(dir, JSONFile), paths["json"])
	assert.Equal(t, filepath.Join(dir, ExcelFile), paths["xlsx"])
	assert.FileExists(t, filepath.Join(dir, MethodologyFile))
}

func TestJSONWriter(t *testing.T) {
	rep := sampleReport(t)
	dir := t.TempDir()

	path, err := NewJSONWriter().Write(rep, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		RunID   string `json:"run_id"`
		Outcome string `json:"outcome"`
		Stalled bool   `json:"stalled"`
		Groups []struct {
			Name   string `json:"name"`
			Count  int    `json:"count"`
			Assets []struct {
				Serial int `json:"serial"`
			} `json:"assets"`
		} `json:"groups"`
		AllAssets []map[string]any `json:"all_assets"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-123", decoded.RunID)
	assert.Equal(t, "no improving swap", decoded.Outcome)
	assert.True(t, decoded.Stalled)
	require.Len(t, decoded.Groups, 3)
	assert.Equal(t, "A", decoded.Groups[0].Name)
	assert.Len(t, decoded.AllAssets, 6)
	assert.Equal(t, decoded.Groups[0].Count, len(decoded.Groups[0].Assets))
}

func TestExcelWriter(t *testing.T) {
	rep := sampleReport(t)
	dir := t.TempDir()

	path, err := NewExcelWriter().Write(rep, dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "All Assets"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Group", "Total Assets", "Total Value (BDT)", "Variance %"}, summary[0])
	assert.Equal(t, "TOTAL", summary[4][0])
	assert.Equal(t, "6", summary[4][1])
	assert.Equal(t, "-", summary[4][3])

	rows, err := f.GetRows("All Assets")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "Asset Type", rows[0][1])
	assert.Equal(t, "Current Value (BDT)", rows[0][17])
	assert.Equal(t, "Laptop", rows[1][1])
	assert.Equal(t, "Server Device", rows[6][1])

	width, err := f.GetColWidth("All Assets", "E")
	require.NoError(t, err)
	assert.Equal(t, 28.0, width)
}

func TestHTMLWriter(t *testing.T) {
	rep := sampleReport(t)
	dir := t.TempDir()

	path, err := NewHTMLWriter().Write(rep, dir)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "Test Division", doc.Find("title").Text())
	assert.Equal(t, 3, doc.Find(".group").Length())
	assert.Equal(t, 6, doc.Find("tr.asset-row").Length())
	assert.Contains(t, doc.Find("#total-value .value").Text(), "231,500")
	assert.Contains(t, doc.Find("#notice").Text(), "2 rows were skipped")
	assert.Equal(t, "(no improving swap)", doc.Find("#outcome").Text())

	// Every group shows its count and an allocation remark per asset
	doc.Find(".group").Each(func(_ int, s *goquery.Selection) {
		count := strings.TrimSpace(s.Find(`[data-stat="count"]`).Text())
		assert.Equal(t, count, strconv.Itoa(s.Find("tr.asset-row").Length()))
		s.Find("td.remark-cell").Each(func(_ int, td *goquery.Selection) {
			assert.NotEmpty(t, strings.TrimSpace(td.Text()))
		})
	})

	assert.Equal(t, 1, doc.Find(`.asset-section[data-type="Scanner"]`).Length())

	mf, err := os.Open(filepath.Join(dir, MethodologyFile))
	require.NoError(t, err)
	defer mf.Close()
	mdoc, err := goquery.NewDocumentFromReader(mf)
	require.NoError(t, err)
	assert.Equal(t, "Methodology", mdoc.Find("#methodology h1").Text())
	assert.Equal(t, 1, mdoc.Find("#methodology table").Length())
}
