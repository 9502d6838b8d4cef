package export

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const (
	balancesSheet = "BALANCES"
	historySheet  = "HISTORY"
)

// SheetsWriter implements SheetWriter using the Google Sheets API.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Write rewrites the BALANCES sheet and appends one line to HISTORY.
func (w *SheetsWriter) Write(ctx context.Context, report Report) error {
	ids, err := w.ensureSheets(ctx, balancesSheet, historySheet)
	if err != nil {
		return err
	}

	_, err = w.svc.Spreadsheets.Values.Clear(
		w.spreadsheetID,
		balancesSheet+"!A:E",
		&sheets.ClearValuesRequest{},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing %s: %w", balancesSheet, err)
	}

	_, err = w.svc.Spreadsheets.Values.Update(
		w.spreadsheetID,
		balancesSheet+"!A1",
		&sheets.ValueRange{Values: buildBalances(report)},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing %s: %w", balancesSheet, err)
	}

	if err := w.appendHistory(ctx, report); err != nil {
		return err
	}

	return w.freezeHeaders(ctx, ids)
}

// buildBalances builds the BALANCES sheet data.
// Columns: Asset | Issuer | Balance | USD | Max transferable
func buildBalances(report Report) [][]any {
	data := make([][]any, 0, len(report.Rows)+1)
	data = append(data, headerCells())
	for _, row := range report.Rows {
		data = append(data, row.cells())
	}
	return data
}

// buildHistoryRow builds one HISTORY line.
// Columns: Date | Account | Total USD | Assets
func buildHistoryRow(report Report) []any {
	return []any{
		report.At.Format("02.01.2006 15:04"),
		report.AccountID,
		toFloat(report.TotalUSD()),
		float64(len(report.Rows)),
	}
}

// appendHistory writes the HISTORY header if the sheet is empty, then appends
// one line for this run.
func (w *SheetsWriter) appendHistory(ctx context.Context, report Report) error {
	existing, err := w.svc.Spreadsheets.Values.Get(
		w.spreadsheetID, historySheet+"!A1:A1",
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading %s header: %w", historySheet, err)
	}

	if len(existing.Values) == 0 {
		_, err = w.svc.Spreadsheets.Values.Update(
			w.spreadsheetID,
			historySheet+"!A1",
			&sheets.ValueRange{Values: [][]any{{"Date", "Account", "Total USD", "Assets"}}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("writing %s header: %w", historySheet, err)
		}
	}

	_, err = w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		historySheet+"!A:D",
		&sheets.ValueRange{Values: [][]any{buildHistoryRow(report)}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending %s row: %w", historySheet, err)
	}
	return nil
}

// freezeHeaders pins and highlights the header row of every sheet.
func (w *SheetsWriter) freezeHeaders(ctx context.Context, ids map[string]int64) error {
	// #D9EAD3
	lightGreen := &sheets.Color{Red: 0.851, Green: 0.918, Blue: 0.827}

	var reqs []*sheets.Request
	for _, id := range ids {
		reqs = append(reqs,
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        id,
						GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{SheetId: id, StartRowIndex: 0, EndRowIndex: 1},
					Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: lightGreen,
						TextFormat:      &sheets.TextFormat{Bold: true},
					}},
					Fields: "userEnteredFormat(backgroundColor,textFormat)",
				},
			},
		)
	}

	_, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: reqs},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("formatting headers: %w", err)
	}
	return nil
}

// ensureSheets creates any of the named sheets that do not already exist and
// returns the sheet ids by title.
func (w *SheetsWriter) ensureSheets(ctx context.Context, names ...string) (map[string]int64, error) {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	ids := make(map[string]int64, len(names))
	existing := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		existing[s.Properties.Title] = s.Properties.SheetId
	}

	var requests []*sheets.Request
	for _, name := range names {
		if id, ok := existing[name]; ok {
			ids[name] = id
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		})
	}

	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating sheets: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}

	return ids, nil
}
