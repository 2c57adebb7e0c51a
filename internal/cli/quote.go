package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/asset-divider/internal/application/distribute"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
)

// QuoteFlags describe one ad-hoc asset
type QuoteFlags struct {
	Type          string
	Serial        int
	Name          string
	Model         string
	Processor     string
	Generation    int
	RAMGB         int
	Remark        string
	Reconditioned bool
}

// Asset builds the record to value
func (f QuoteFlags) Asset() (*asset.Asset, error) {
	typ, err := asset.ParseType(f.Type)
	if err != nil {
		return nil, err
	}
	a := &asset.Asset{
		Type:            typ,
		Serial:          f.Serial,
		Name:            f.Name,
		Model:           f.Model,
		Processor:       f.Processor,
		Generation:      f.Generation,
		RAMGB:           f.RAMGB,
		ConditionRemark: f.Remark,
	}
	if typ == asset.TypeLaptop {
		a.PurchaseType = asset.PurchaseNew
		if f.Reconditioned {
			a.PurchaseType = asset.PurchaseReconditioned
		}
	}
	a.Condition = asset.ResolveCondition(a.ConditionRemark)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func newQuoteCommand(global *GlobalFlags) *cobra.Command {
	var flags QuoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price and depreciate a single asset",
		Example: `  asset-divider quote --type laptop --name Dell --model P106F --remark Good
  asset-divider quote --type pc --serial 11 --name "HP ProDesk"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, "quote")
			if err != nil {
				return err
			}
			item, err := flags.Asset()
			if err != nil {
				return err
			}
			pricer, err := a.pricer()
			if err != nil {
				return err
			}

			o := distribute.NewOrchestrator(nil, pricer, depreciation.NewModel(a.cfg.Depreciation), a.cfg.Allocation, nil, a.logger)
			PrintQuote(cmd.OutOrStdout(), item, o.Value(item), a.cfg.Output.Currency)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Asset type: laptop, pc, monitor, printer, scanner, server")
	cmd.Flags().IntVar(&flags.Serial, "serial", 1, "Serial number (matters for listed exceptions)")
	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Asset name")
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "", "Model")
	cmd.Flags().StringVar(&flags.Processor, "processor", "", "Processor, e.g. i5")
	cmd.Flags().IntVar(&flags.Generation, "gen", 0, "Processor generation")
	cmd.Flags().IntVar(&flags.RAMGB, "ram", 0, "RAM in GB")
	cmd.Flags().StringVarP(&flags.Remark, "remark", "r", "", "Condition remark, e.g. Good")
	cmd.Flags().BoolVar(&flags.Reconditioned, "reconditioned", false, "Laptop was bought reconditioned")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func describeBasis(v distribute.Valuation) string {
	if v.Quote.Rule >= 0 {
		return fmt.Sprintf("%s #%d", v.Quote.Basis, v.Quote.Rule+1)
	}
	return string(v.Quote.Basis)
}
