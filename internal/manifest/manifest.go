// Package manifest reads CSV manifests for bulk poster rendering.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	imagepkg "github.com/youruser/posterapp/internal/image"
)

// Entry is one poster to render.
type Entry struct {
	Line     int
	Poster   string
	Backdrop string
	Output   string
	Info     imagepkg.PosterInfo
}

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	var out []string
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadFile reads the manifest at path. Relative image paths are resolved
// against the manifest's directory; outputs are left as written.
func LoadFile(path string) ([]Entry, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	entries, err := Read(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range entries {
		e := &entries[i]
		e.Poster = resolve(dir, e.Poster)
		e.Backdrop = resolve(dir, e.Backdrop)
	}
	return entries, nil
}

// Read parses a manifest. Paths are returned as written; an empty output
// becomes poster-NNN.png.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("manifest has no header")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"poster", "title"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("manifest has no %q column", required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var out []Entry
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		e := Entry{
			Line:     line,
			Poster:   get(row, "poster"),
			Backdrop: get(row, "backdrop"),
			Output:   get(row, "output"),
			Info: imagepkg.PosterInfo{
				Title:    get(row, "title"),
				Subtitle: get(row, "subtitle"),
				Makers:   parseListCell(get(row, "makers")),
				Score:    get(row, "score"),
				Tags:     parseListCell(get(row, "tags")),
			},
		}
		if e.Poster == "" || e.Info.Title == "" {
			return nil, fmt.Errorf("line %d: poster and title are required", line)
		}
		if e.Output == "" {
			e.Output = fmt.Sprintf("poster-%03d.png", len(out)+1)
		}
		out = append(out, e)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// OutputPath places the entry's output under dir unless it is absolute.
func (e Entry) OutputPath(dir string) string {
	return resolve(dir, e.Output)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
