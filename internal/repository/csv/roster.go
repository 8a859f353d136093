package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/madwell/signin-backend-go/internal/domain/roster"
)

const (
	colFullName     = "FULL_NAME"
	colPTOName      = "JW_NAME"
	colDepartment   = "DEPARTMENT"
	colOffice       = "OFFICE"
	colRequiredDays = "REQUIRED_DAYS"
)

var rosterColumns = []string{colFullName, colPTOName, colDepartment, colOffice, colRequiredDays}

// RosterSource reads the roster CSV from an http(s) URL or a local path.
type RosterSource struct {
	location string
	client   *http.Client
}

func NewRosterSource(location string, client *http.Client) roster.Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &RosterSource{location: location, client: client}
}

// Load implements roster.Source.
func (s *RosterSource) Load(ctx context.Context) ([]roster.Entry, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ParseRoster(rc)
}

func (s *RosterSource) open(ctx context.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(s.location, "http://") && !strings.HasPrefix(s.location, "https://") {
		f, err := os.Open(s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to open roster file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch roster: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ParseRoster decodes roster rows. Columns are located by header name.
func ParseRoster(r io.Reader) ([]roster.Entry, error) {
	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, roster.ErrEmptyRoster
		}
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	idx := columnIndex(header)
	for _, col := range rosterColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", roster.ErrMissingColumn, col)
		}
	}

	var entries []roster.Entry
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		required, err := parseRequiredDays(field(row, idx, colRequiredDays))
		if err != nil {
			return nil, fmt.Errorf("roster row %d: %w", line, err)
		}

		entries = append(entries, roster.Entry{
			FullName:     field(row, idx, colFullName),
			PTOName:      field(row, idx, colPTOName),
			Department:   field(row, idx, colDepartment),
			Office:       field(row, idx, colOffice),
			RequiredDays: required,
		})
	}

	return entries, nil
}

// parseRequiredDays accepts "3" as well as spreadsheet-style "3.0"; blanks count as zero.
func parseRequiredDays(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: %q", roster.ErrInvalidRequiredDays, v)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", roster.ErrInvalidRequiredDays, v)
	}
	return int(f), nil
}
