package fetcher

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/automind/leadscope/internal/model"
)

// ReadCSV parses a CSV stream into a table. Variable field counts are
// tolerated; quoting is lazy because real exports are rarely strict.
func ReadCSV(r io.Reader, opts Options) (*model.Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	var header []string
	var rows [][]string
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read csv row")
		}
		if first {
			first = false
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, eris.New("fetcher: csv file has no header row")
	}

	return model.NewTable(header, rows), nil
}
