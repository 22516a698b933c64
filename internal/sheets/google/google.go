package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"comissoes/internal/log"
	"comissoes/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads spreadsheet tabs through the Google Sheets API v4.
type Client struct {
	svc *gsheet.Service
}

// Ensure interface conformance
var _ sheets.TableReader = (*Client)(nil)

// Credentials lists the places a service-account key can come from, in
// priority order: inline content (raw JSON or base64), base64, file path.
type Credentials struct {
	JSONContent string
	Base64      string
	File        string
}

// New creates a read-only Sheets client using service-account credentials.
func New(ctx context.Context, creds Credentials) (*Client, error) {
	credentialsJSON, err := creds.Resolve()
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentSheets).InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Resolve returns the service-account JSON key.
func (c Credentials) Resolve() ([]byte, error) {
	switch {
	case strings.TrimSpace(c.JSONContent) != "":
		content := strings.TrimSpace(c.JSONContent)
		if json.Valid([]byte(content)) {
			return []byte(content), nil
		}
		return decodeBase64JSON(content)
	case strings.TrimSpace(c.Base64) != "":
		return decodeBase64JSON(strings.TrimSpace(c.Base64))
	case strings.TrimSpace(c.File) != "":
		data, err := os.ReadFile(strings.TrimSpace(c.File))
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GSHEETS_CREDENTIALS_JSON_CONTENT, GSHEETS_CREDENTIALS_B64, GSHEETS_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func decodeBase64JSON(s string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64 credentials: %w", err)
	}
	if !json.Valid(decoded) {
		return nil, errors.New("decoded credentials are not valid JSON")
	}
	return decoded, nil
}

// FetchTable resolves the tab whose numeric id equals sheetID and reads all
// of its formatted values.
func (c *Client) FetchTable(ctx context.Context, spreadsheetID string, sheetID int64) (sheets.Table, error) {
	if c.svc == nil {
		return sheets.Table{}, errors.New("sheets service not initialized")
	}

	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return sheets.Table{}, fmt.Errorf("read spreadsheet %s metadata: %w", spreadsheetID, err)
	}
	title, ok := sheetTitle(ss, sheetID)
	if !ok {
		return sheets.Table{}, fmt.Errorf("gid %d in spreadsheet %s: %w", sheetID, spreadsheetID, sheets.ErrSheetNotFound)
	}

	rng := quoteSheetName(title)
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return sheets.Table{}, fmt.Errorf("read %s: %w", rng, err)
	}

	t := sheets.FromInterfaces(resp.Values)
	log.FromContext(ctx).WithComponent(log.ComponentSheets).DebugContext(ctx, "Sheet fetched",
		log.FieldSpreadsheet, spreadsheetID,
		log.FieldSheetID, sheetID,
		"title", title,
		log.FieldRows, len(t.Rows))
	return t, nil
}

func sheetTitle(ss *gsheet.Spreadsheet, sheetID int64) (string, bool) {
	if ss == nil {
		return "", false
	}
	for _, sh := range ss.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		if sh.Properties.SheetId == sheetID {
			return sh.Properties.Title, true
		}
	}
	return "", false
}

// quoteSheetName returns an A1 range covering the whole tab. Titles are
// always quoted so names with spaces or digits are accepted.
func quoteSheetName(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
