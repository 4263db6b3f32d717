package datasets

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrColumnCount is returned when a line doesn't have one field per declared column
var ErrColumnCount = errors.New("wrong number of columns")

// maxLineSize bounds a single row; teacher score arrays can make lines long
const maxLineSize = 16 * 1024 * 1024

// ReadColumns reads tab separated lines, naming the fields positionally by columns.
// Fields are taken verbatim, there is no quoting. Empty lines are skipped.
func ReadColumns(r io.Reader, columns []string) (rows []Row, err error) {
	if len(columns) == 0 {
		return nil, errors.New("no columns to read")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(columns) {
			return nil, errors.Wrapf(ErrColumnCount, "line %d: got %d fields, want %d", lineno, len(fields), len(columns))
		}
		row := make(Row, len(columns))
		for i, name := range columns {
			row[name] = fields[i]
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading line %d", lineno+1)
	}
	return rows, nil
}

// ReadColumnsFromFile opens path and reads it with ReadColumns
func ReadColumnsFromFile(path string, columns []string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening data file")
	}
	defer file.Close()

	rows, err := ReadColumns(file, columns)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return rows, nil
}
