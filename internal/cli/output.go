package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eshaffer321/asset-divider/internal/adapters/report"
	"github.com/eshaffer321/asset-divider/internal/adapters/sources"
	"github.com/eshaffer321/asset-divider/internal/application/distribute"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// PrintHeader prints the application header
func PrintHeader(w io.Writer, dryRun bool) {
	mode := "WRITE"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Fprintf(w, "asset-divider (%s mode)\n\n", mode)
}

// PrintRunSummary prints group totals and written artifacts
func PrintRunSummary(w io.Writer, result *distribute.Result, currency string) {
	p := result.Partition

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Run %s: %d assets from %d sources, %d rows skipped\n",
		result.RunID, len(result.Assets), result.Sources, len(result.Skipped))
	fmt.Fprintf(w, "Total value: %s %s | Target per group: %s %s\n\n",
		report.FormatMoney(p.TotalValue), currency, report.FormatMoney(p.TargetValue), currency)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tASSETS\tTOTAL\tVARIANCE")
	for _, g := range p.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			g.Name, g.Count(), report.FormatAmount(g.Total), report.FormatSignedPct(p.GroupVariancePct(g)))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nSpread: %s (%.2f%%), %d passes, %d swaps, %s\n",
		report.FormatAmount(p.Spread), p.VariancePct, p.Iterations, p.Swaps, p.Outcome())

	if len(result.Artifacts) > 0 {
		fmt.Fprintln(w, "\nReports:")
		formats := make([]string, 0, len(result.Artifacts))
		for f := range result.Artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
		for _, f := range formats {
			fmt.Fprintf(w, "  %-5s %s\n", f, result.Artifacts[f])
		}
	}
	fmt.Fprintf(w, "\nCompleted in %s\n", result.Duration.Round(time.Millisecond))
}

// PrintInspection prints per-source counts and every skipped row
func PrintInspection(w io.Writer, load *sources.Load) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tKIND\tSHEET\tROWS\tASSETS\tSKIPPED\tBREAKDOWN")
	for _, r := range load.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.Source, r.Kind, r.Sheet, r.Rows, len(r.Assets), len(r.Skipped), breakdown(r))
	}
	_ = tw.Flush()

	counts := asset.CountByType(load.Assets)
	fmt.Fprintf(w, "\nTotal: %d assets", len(load.Assets))
	for _, t := range asset.Types() {
		if n := counts[t]; n > 0 {
			fmt.Fprintf(w, " | %s: %d", t, n)
		}
	}
	fmt.Fprintln(w)

	if len(load.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped rows:")
		for _, s := range load.Skipped {
			fmt.Fprintf(w, "  - %s row %d: %s\n", s.Source, s.Row, s.Reason)
		}
	}
}

func breakdown(r *sources.LoadResult) string {
	var parts []string
	counts := asset.CountByType(r.Assets)
	for _, t := range asset.Types() {
		if n := counts[t]; n > 0 && len(counts) > 1 {
			parts = append(parts, fmt.Sprintf("%s=%d", t, n))
		}
	}
	purchases := r.CountByPurchase()
	for _, pt := range []asset.PurchaseType{asset.PurchaseNew, asset.PurchaseReconditioned} {
		if n := purchases[pt]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", pt, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// PrintQuote prints how a single asset was valued
func PrintQuote(w io.Writer, a *asset.Asset, v distribute.Valuation, currency string) {
	fmt.Fprintln(w, a.Label())
	fmt.Fprintf(w, "  Market price:  %s %s (%s)\n", report.FormatMoney(float64(v.Quote.Price)), currency, describeBasis(v))
	fmt.Fprintf(w, "  Condition:     %s\n", a.Resolved().Title())
	fmt.Fprintf(w, "  Depreciation:  %s (%s, x%.2f)\n", v.Depreciation.RateLabel, v.Depreciation.Tier, v.Depreciation.Multiplier)
	fmt.Fprintf(w, "  Current value: %s %s\n", report.FormatAmount(v.Depreciation.CurrentValue), currency)
}

// PrintHistory prints recorded runs, newest first
func PrintHistory(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tASSETS\tTOTAL\tVARIANCE\tDRY-RUN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%.2f%%\t%t\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status,
			r.AssetCount, report.FormatMoney(r.TotalValue), r.VariancePct, r.DryRun)
	}
	_ = tw.Flush()
}
