package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/signin"
)

const (
	colName   = "Name"
	colSite   = "Site"
	colGroup  = "Group"
	colInTime = "In time"

	// InTimeLayout is the badge export format, e.g. "6/11/2024 9:05 AM".
	InTimeLayout = "1/2/2006 3:04 PM"
)

// SignInParser reads badge exports, interpreting "In time" in the office time zone.
type SignInParser struct {
	loc *time.Location
}

func NewSignInParser(loc *time.Location) signin.Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &SignInParser{loc: loc}
}

// Parse implements signin.Parser. Files are concatenated in the order given,
// each with its own header row.
func (p *SignInParser) Parse(files ...signin.File) ([]signin.Record, error) {
	var records []signin.Record
	for _, file := range files {
		rows, err := p.parseFile(file)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}

	if len(records) == 0 {
		return nil, signin.ErrEmptyUpload
	}
	return records, nil
}

func (p *SignInParser) parseFile(file signin.File) ([]signin.Record, error) {
	reader := stdcsv.NewReader(file.Reader)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &signin.RowError{File: file.Name, Row: 1, Err: err}
	}

	idx := columnIndex(header)
	for _, col := range []string{colName, colInTime} {
		if _, ok := idx[col]; !ok {
			return nil, &signin.RowError{File: file.Name, Row: 1, Err: fmt.Errorf("%w: %s", signin.ErrMissingColumn, col)}
		}
	}

	var records []signin.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &signin.RowError{File: file.Name, Row: line, Err: err}
		}
		if isBlank(row) {
			continue
		}

		name := field(row, idx, colName)
		if name == "" {
			return nil, &signin.RowError{File: file.Name, Row: line, Err: fmt.Errorf("%w: %s is empty", signin.ErrMissingColumn, colName)}
		}

		inTime, err := p.parseInTime(field(row, idx, colInTime))
		if err != nil {
			return nil, &signin.RowError{File: file.Name, Row: line, Err: err}
		}

		records = append(records, signin.Record{
			Name:   name,
			Site:   field(row, idx, colSite),
			Group:  field(row, idx, colGroup),
			InTime: inTime,
		})
	}

	return records, nil
}

func (p *SignInParser) parseInTime(v string) (time.Time, error) {
	t, err := time.ParseInLocation(InTimeLayout, strings.ToUpper(strings.Join(strings.Fields(v), " ")), p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", signin.ErrInvalidTimestamp, v)
	}
	return t, nil
}
