package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eshaffer321/asset-divider/internal/infrastructure/config"
)

// NewRegistryFromConfig builds and registers a source per configured sheet.
// A Sheets client is created only when a gsheet source is present.
func NewRegistryFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry(logger)

	var getter ValuesGetter
	for _, sc := range cfg.Sources {
		kind, err := ParseKind(sc.Kind)
		if err != nil {
			return nil, err
		}

		var src Source
		switch sc.ResolvedFormat() {
		case "csv":
			src = NewCSVSource(sc.DisplayName(), kind, sc.Path)
		case "gsheet":
			if getter == nil {
				client, err := NewSheetsClient(ctx, cfg.GoogleSheets.CredentialsFile, cfg.GoogleSheets.CredentialsJSON)
				if err != nil {
					return nil, err
				}
				getter = client
			}
			src = NewSheetSource(sc.DisplayName(), kind, getter, sc.SpreadsheetID, sc.Range)
		case "xlsx":
			src = NewXLSXSource(sc.DisplayName(), kind, sc.Path, sc.Sheet)
		default:
			return nil, fmt.Errorf("source %s: unsupported format %q", sc.DisplayName(), sc.ResolvedFormat())
		}

		if err := registry.Register(src); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
