package sources

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValuesGetter fetches a cell range from a spreadsheet
type ValuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// SheetsClient reads ranges through the Google Sheets API
type SheetsClient struct {
	service *sheets.Service
}

// NewSheetsClient creates a read-only Sheets client. Inline JSON
// credentials win over a credentials file.
func NewSheetsClient(ctx context.Context, credentialsFile, credentialsJSON string) (*SheetsClient, error) {
	data := []byte(credentialsJSON)
	if len(data) == 0 {
		if credentialsFile == "" {
			return nil, fmt.Errorf("google sheets credentials are not configured")
		}
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials: %w", err)
		}
		data = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &SheetsClient{service: service}, nil
}

// GetValues returns the formatted values of readRange
func (c *SheetsClient) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// SheetSource reads an inventory held in Google Sheets
type SheetSource struct {
	name          string
	kind          Kind
	spreadsheetID string
	readRange     string
	getter        ValuesGetter
}

// NewSheetSource creates a Google Sheets source. An empty range reads the
// first tab.
func NewSheetSource(name string, kind Kind, getter ValuesGetter, spreadsheetID, readRange string) *SheetSource {
	if readRange == "" {
		readRange = "A:Z"
	}
	return &SheetSource{
		name:          name,
		kind:          kind,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		getter:        getter,
	}
}

func (s *SheetSource) Name() string { return s.name }
func (s *SheetSource) Kind() Kind   { return s.kind }

// Load fetches the range and parses it
func (s *SheetSource) Load(ctx context.Context) (*LoadResult, error) {
	values, err := s.getter.GetValues(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, fmt.Errorf("fetch %s!%s: %w", s.spreadsheetID, s.readRange, err)
	}

	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = fmt.Sprint(v)
		}
	}
	return ParseRows(s.name, s.readRange, s.kind, rows), nil
}
