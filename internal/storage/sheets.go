package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

// SheetsStore keeps sessions as rows of one Google Sheets tab. The first
// row is the header; columns may be in any order.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsStore(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if sheetName == "" {
		sheetName = "Sessions"
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("Failed to create sheets service: %w", err)
	}
	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func (s *SheetsStore) sheetRange(suffix string) string {
	name := "'" + strings.ReplaceAll(s.sheetName, "'", "''") + "'"
	if suffix == "" {
		return name
	}
	return name + "!" + suffix
}

func classifySheetsErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
		return rejected(op, err)
	}
	return unavailable(op, err)
}

func toCells(row []any) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		cells[i] = fmt.Sprint(v)
	}
	return cells
}

func (s *SheetsStore) get(ctx context.Context, rng string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *SheetsStore) ReadAll(ctx context.Context) (ReadResult, error) {
	values, err := s.get(ctx, s.sheetRange(""))
	if err != nil {
		return ReadResult{}, unavailable("read", err)
	}
	if len(values) == 0 {
		return ReadResult{}, nil
	}

	header := ingest.NewHeader(toCells(values[0]))
	if !header.Has(ingest.ColDate) || !header.Has(ingest.ColDiscipline) {
		return ReadResult{}, rejected("read", fmt.Errorf("sheet %q needs Date and Discipline columns", s.sheetName))
	}
	var res ReadResult
	for i, row := range values[1:] {
		cells := toCells(row)
		if isEmptyRow(cells) {
			continue
		}
		session, err := ingest.ParseRecord(header, cells)
		if err != nil {
			logrus.WithError(err).WithField("row", i+2).Debug("skipping unreadable sheet row")
			res.Skipped++
			continue
		}
		res.Sessions = append(res.Sessions, session)
	}
	return res, nil
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (s *SheetsStore) writeHeader(ctx context.Context, names []string) error {
	row := make([]any, len(names))
	for i, c := range names {
		row[i] = c
	}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.sheetRange("A1"), &sheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// header returns the sheet's header row ready to hold session. An empty
// sheet gets the default header; an existing one is extended to the right
// with any column session needs. A header without Date and Discipline is
// not a session sheet and is rejected.
func (s *SheetsStore) header(ctx context.Context, session models.WorkoutSession) (ingest.Header, error) {
	values, err := s.get(ctx, s.sheetRange("1:1"))
	if err != nil {
		return ingest.Header{}, classifySheetsErr("append", err)
	}
	if len(values) == 0 || isEmptyRow(toCells(values[0])) {
		if err := s.writeHeader(ctx, ingest.DefaultColumns); err != nil {
			return ingest.Header{}, classifySheetsErr("append", err)
		}
		logrus.WithField("sheet", s.sheetName).Info("wrote header to empty sheet")
		return ingest.NewHeader(ingest.DefaultColumns), nil
	}

	h := ingest.NewHeader(toCells(values[0]))
	if !h.Has(ingest.ColDate) || !h.Has(ingest.ColDiscipline) {
		return ingest.Header{}, rejected("append", fmt.Errorf("sheet %q needs Date and Discipline columns", s.sheetName))
	}
	missing := h.MissingFor(session)
	if len(missing) == 0 {
		return h, nil
	}
	h = h.Extend(missing...)
	if err := s.writeHeader(ctx, h.Names); err != nil {
		return ingest.Header{}, classifySheetsErr("append", err)
	}
	logrus.WithFields(logrus.Fields{"sheet": s.sheetName, "columns": missing}).Info("added columns to sheet header")
	return h, nil
}

func (s *SheetsStore) Append(ctx context.Context, session models.WorkoutSession) error {
	session, err := prepare("append", session)
	if err != nil {
		return err
	}
	return s.appendRow(ctx, session)
}

func (s *SheetsStore) Restore(ctx context.Context, session models.WorkoutSession) error {
	session, err := prepareStored("restore", session)
	if err != nil {
		return err
	}
	return s.appendRow(ctx, session)
}

func (s *SheetsStore) appendRow(ctx context.Context, session models.WorkoutSession) error {
	h, err := s.header(ctx, session)
	if err != nil {
		return err
	}

	cells := ingest.FormatRecord(h, session)
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetRange(""), &sheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return classifySheetsErr("append", err)
	}
	return nil
}

func (s *SheetsStore) Close() error {
	return nil
}
