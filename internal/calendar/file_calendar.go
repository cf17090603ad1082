package calendar

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

// Source loads the fixed non-working dates
type Source interface {
	Load(ctx context.Context) (*HolidaySet, error)
	// Name identifies the source in logs and errors
	Name() string
}

// FileSource implements Source using a local CSV file
type FileSource struct {
	filePath string
	logger   *zap.Logger
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

func (fs *FileSource) Name() string {
	return fs.filePath
}

// Load loads calendar data from file
func (fs *FileSource) Load(ctx context.Context) (*HolidaySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	set, err := ParseHolidayCSV(file, fs.logger)
	if err != nil {
		return nil, fmt.Errorf("error reading holiday file %s: %w", fs.filePath, err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("dates", set.Len()))

	return set, nil
}

// utf8BOM is prepended by some spreadsheet exports
const utf8BOM = "\ufeff"

// ParseHolidayCSV reads comma-separated d/m/yyyy literals. Rows may hold any
// number of fields; blank and unparseable fields are skipped one by one.
func ParseHolidayCSV(r io.Reader, logger *zap.Logger) (*HolidaySet, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.Comment = '#'

	var dates []dateutil.Date
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Debug("Skipping malformed CSV row", zap.Error(err))
				skipped++
				continue
			}
			return nil, err
		}

		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			date, err := dateutil.ParseDMY(field)
			if err != nil {
				logger.Debug("Skipping unparseable holiday entry",
					zap.String("value", field),
					zap.Error(err))
				skipped++
				continue
			}
			dates = append(dates, date)
		}
	}

	if skipped > 0 {
		logger.Debug("Holiday entries discarded", zap.Int("count", skipped))
	}

	return NewHolidaySet(dates...), nil
}
