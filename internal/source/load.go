package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Supported reports whether LoadFile understands path's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".json", ".geojson":
		return true
	}
	return false
}

// LoadFile reads a dataset, choosing the reader by extension.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var d *Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		d, err = ReadCSV(f)
	case ".tsv":
		d, err = readDelimited(f, '\t')
	case ".json", ".geojson":
		d, err = ReadJSON(f)
	default:
		return nil, fmt.Errorf("unsupported data file: %s", filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	d.Name = filepath.Base(path)
	return d, nil
}

// spaceRun separates columns of pasted tables whose tabs were expanded to
// spaces on the way in.
var spaceRun = regexp.MustCompile(` {2,}`)

// ParseInline reads pasted text: JSON when it starts with a bracket or
// brace, otherwise a CSV table, tab separated when the header has tabs.
// A header with neither commas nor tabs splits on runs of two or more
// spaces.
func ParseInline(text string) (*Dataset, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("nothing to parse")
	}
	var (
		d   *Dataset
		err error
	)
	switch {
	case strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{"):
		d, err = ReadJSON(strings.NewReader(s))
	default:
		header, _, _ := strings.Cut(s, "\n")
		comma := ','
		switch {
		case strings.Contains(header, ","):
		case strings.Contains(header, "\t"):
			comma = '\t'
		case spaceRun.MatchString(header):
			comma = '\t'
			lines := strings.Split(s, "\n")
			for i, l := range lines {
				lines[i] = spaceRun.ReplaceAllString(strings.TrimRight(l, " \r"), "\t")
			}
			s = strings.Join(lines, "\n")
		}
		d, err = readDelimited(strings.NewReader(s), comma)
	}
	if err != nil {
		return nil, err
	}
	d.Name = "pasted"
	return d, nil
}
