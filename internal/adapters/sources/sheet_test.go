package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

func TestParseRows_LaptopSections(t *testing.T) {
	rows := [][]string{
		{"IT Asset List - Laptop"},
		{"New Purchase"},
		{"", "Serial", "Name", "Model", "RAM", "Processor", "Storage", "Gen", "GPU", "User", "Location", "Level", "Status", "Remarks"},
		{"", "1", "Dell", "P106F", "16GB", "i7", "512 SSD", "11th", "", "Rahim", "HQ", "3", "Active", "Excellent"},
		{"", "2", "HP Probook", "440 G8", "8", "i5", "256", "11", "", "Karim", "HQ", "2", "Active", ""},
		{},
		{"Reconditioned / used"},
		{"", "3", "Lenovo", "X230", "4", "i5", "", "3", "", "", "Branch", "", "", "Moderate"},
	}

	res := ParseRows("Laptop", "Sheet1", KindLaptop, rows)
	require.Len(t, res.Assets, 3)
	assert.Empty(t, res.Skipped)

	first := res.Assets[0]
	assert.Equal(t, asset.TypeLaptop, first.Type)
	assert.Equal(t, 1, first.Serial)
	assert.Equal(t, "Dell", first.Name)
	assert.Equal(t, "P106F", first.Model)
	assert.Equal(t, 16, first.RAMGB)
	assert.Equal(t, 11, first.Generation)
	assert.Equal(t, "Rahim", first.User)
	assert.Equal(t, asset.PurchaseNew, first.PurchaseType)
	assert.Equal(t, asset.ConditionExcellent, first.Condition)
	assert.Equal(t, "Laptop", first.Source)

	assert.Equal(t, "Good", res.Assets[1].ConditionRemark, "missing remark defaults to Good")
	assert.Equal(t, asset.PurchaseReconditioned, res.Assets[2].PurchaseType)
	assert.Equal(t, asset.ConditionModerate, res.Assets[2].Condition)
}

func TestParseRows_PrinterScannerSection(t *testing.T) {
	rows := [][]string{
		{"Category", "S/L", "Name", "Model", "Device Serial", "Function", "Location", "Level", "Status", "Remarks"},
		{"Printer", "1", "HP LaserJet", "M404", "PHB123", "Print", "HQ", "1", "OK", "Good"},
		{"", "2", "Canon", "LBP2900", "", "Print", "HQ", "1", "OK", "Good"},
		{"SCANNER"},
		{"", "1", "Canon EUROPA scanner", "", "", "Scan", "HQ", "", "", "Excellent"},
	}

	res := ParseRows("Printer Scaneer", "", KindPrinter, rows)
	require.Len(t, res.Assets, 3)
	assert.Equal(t, asset.TypePrinter, res.Assets[0].Type)
	assert.Equal(t, "PHB123", res.Assets[0].DeviceSerial)
	assert.Equal(t, "Print", res.Assets[0].Function)
	assert.Equal(t, asset.TypePrinter, res.Assets[1].Type)
	assert.Equal(t, asset.TypeScanner, res.Assets[2].Type)
	assert.Empty(t, res.Assets[2].PurchaseType)
}

func TestParseRows_HeaderShiftsColumns(t *testing.T) {
	// Monitor sheet with an extra leading column
	rows := [][]string{
		{"#", "Serial", "Name", "Model", "User", "Location", "Level", "Status", "Remarks"},
		{"x", "4", "Samsung", "S24", "Ana", "HQ", "2", "Active", "Good"},
	}

	res := ParseRows("Monitor", "", KindMonitor, rows)
	require.Len(t, res.Assets, 1)
	a := res.Assets[0]
	assert.Equal(t, 4, a.Serial)
	assert.Equal(t, "Samsung", a.Name)
	assert.Equal(t, "S24", a.Model)
	assert.Equal(t, "Good", a.ConditionRemark)
}

func TestParseRows_NoHeaderAssumesTwoRows(t *testing.T) {
	rows := [][]string{
		{"Server Room"},
		{"No", "Device", "Model", "Device No", "Status", "Remarks"},
		{"1", "Cisco Switch", "SG350", "FOC1", "Running", "Good"},
	}

	res := ParseRows("Server", "", KindServer, rows)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, asset.TypeServerDevice, res.Assets[0].Type)
	assert.Equal(t, "FOC1", res.Assets[0].DeviceSerial)
	assert.Equal(t, "Running", res.Assets[0].Status)
}

func TestParseRows_SkipsMalformedRows(t *testing.T) {
	rows := [][]string{
		{"Serial", "Name", "Model"},
		{"1", "Dell", "E2216"},
		{"abc", "Broken", ""},
		{"2", "", "NoName"},
		{"", "Orphan", ""},
		{"0", "Zero", ""},
		{"3.0", "LG", "22MK"},
	}

	res := ParseRows("Monitor", "Sheet1", KindMonitor, rows)
	require.Len(t, res.Assets, 2)
	assert.Equal(t, 3, res.Assets[1].Serial)
	assert.Equal(t, 6, res.Rows)

	require.Len(t, res.Skipped, 4)
	assert.Equal(t, 3, res.Skipped[0].Row)
	assert.Contains(t, res.Skipped[0].Reason, "non-numeric serial")
	assert.Contains(t, res.Skipped[1].Reason, "name")
	assert.Equal(t, "missing serial", res.Skipped[2].Reason)
	assert.Contains(t, res.Skipped[3].Reason, "serial")
	assert.Equal(t, "Sheet1", res.Skipped[0].Sheet)
}

func TestParseRows_RepeatedHeaderIsConsumed(t *testing.T) {
	rows := [][]string{
		{"Serial", "Name"},
		{"1", "Dell"},
		{"Serial", "Name"},
		{"2", "HP"},
	}

	res := ParseRows("Monitor", "", KindMonitor, rows)
	assert.Len(t, res.Assets, 2)
	assert.Empty(t, res.Skipped)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("printer")
	require.NoError(t, err)
	assert.Equal(t, KindPrinter, k)
	assert.Equal(t, asset.TypePrinter, k.AssetType())

	_, err = ParseKind("fax")
	assert.Error(t, err)
}

func TestLeadingInt(t *testing.T) {
	tests := map[string]int{"8GB": 8, "11th": 11, "": 0, "n/a": 0, "16 GB": 16}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, leadingInt(in))
		})
	}
}
