// Package sheet mirrors leaderboard mutations into a Google Sheets
// worksheet.
//
// The worksheet layout is fixed: row 1 is the header, team names live in
// column A, the running score in column B, and each configured problem owns
// a solved-mark/time column pair laid out left to right in configuration
// order.
package sheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/internal/domain/resolve"
)

const (
	scoreColumn = 2 // B
	headerRows  = 1

	solvedMark   = "✅"
	unsolvedMark = "❌"
)

// Sink applies award/revoke mutations against one worksheet. Cycles are
// sequential and this process is the only writer, so the read-modify-write
// of the score cell needs no locking.
type Sink struct {
	svc             *sheets.Service
	credentialsFile string
	spreadsheetID   string
	sheetName       string
	columns         map[string]int // problem key -> solved-mark column, 1-based
}

// New builds a sink over the given spreadsheet. problems must be the full
// configured set in leaderboard column order.
func New(ctx context.Context, spreadsheetID, sheetName string, problems []model.Problem, opts ...Option) (*Sink, error) {
	s := &Sink{
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		columns:       make(map[string]int, len(problems)),
	}
	for i, p := range problems {
		s.columns[p.Key()] = solvedColumn(i)
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.svc == nil {
		clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
		if s.credentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(s.credentialsFile))
		}
		svc, err := sheets.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		s.svc = svc
	}
	return s, nil
}

// Apply performs one mutation: the score delta, the solved mark and the
// time label go out as a single batch write so the sheet never holds a
// partially applied mutation.
func (s *Sink) Apply(ctx context.Context, m model.Mutation) error {
	col, ok := s.columns[m.Problem.Key()]
	if !ok {
		return fmt.Errorf("problem %s has no leaderboard column", m.Problem.Key())
	}

	row, score, err := s.findRow(ctx, m.Team)
	if err != nil {
		return err
	}

	var mark, label string
	switch m.Action {
	case model.ActionAward:
		score += m.Problem.Points
		mark, label = solvedMark, m.SolvedAt
	case model.ActionRevoke:
		score -= m.Problem.Points
		mark, label = unsolvedMark, ""
	default:
		return fmt.Errorf("unknown mutation action %q", m.Action)
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data: []*sheets.ValueRange{
			{Range: s.cellRef(row, scoreColumn), Values: [][]interface{}{{score}}},
			{Range: s.cellRef(row, col), Values: [][]interface{}{{mark}}},
			{Range: s.cellRef(row, col+1), Values: [][]interface{}{{label}}},
		},
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("apply %s for %s on %s: %w", m.Action, m.Team, m.Problem.Key(), err)
	}
	return nil
}

// findRow locates the team's 1-based sheet row and its current score.
func (s *Sink) findRow(ctx context.Context, team string) (int, int, error) {
	readRange := fmt.Sprintf("%s!A%d:B", s.sheetName, headerRows+1)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return 0, 0, fmt.Errorf("read leaderboard rows: %w", err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 || fmt.Sprint(row[0]) != team {
			continue
		}
		score := 0
		if len(row) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(row[1]))); err == nil {
				score = n
			}
		}
		return headerRows + 1 + i, score, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", resolve.ErrTeamNotFound, team)
}

// cellRef renders an A1 reference for one cell on the sink's worksheet.
func (s *Sink) cellRef(row, col int) string {
	return fmt.Sprintf("%s!%s%d", s.sheetName, columnName(col), row)
}

// solvedColumn returns the 1-based solved-mark column for the problem at
// position i; its time column sits immediately to the right.
func solvedColumn(i int) int {
	return 2*i + 3
}

// columnName converts a 1-based column number to its A1 letters.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
