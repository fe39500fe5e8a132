package artifact

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
)

// Column prefixes of the one-hot attribute columns in the catalog CSV.
const (
	effectPrefix  = "Effects_"
	terpenePrefix = "Terpene Profile_"
	relievePrefix = "May Relieve_"
)

// LoadCatalog reads the strain catalog CSV and builds an immutable snapshot.
// A duplicate strain name is a fatal load error.
func LoadCatalog(path string) (*catalog.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"strain_id", "Strain_Name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog header missing %q column", required)
		}
	}

	var rows []catalog.Row
	for line := 2; ; line++ {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read catalog line %d: %w", line, err)
		}

		id, err := strconv.ParseInt(field(record, col, "strain_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad strain_id: %w", line, err)
		}

		row := catalog.Row{
			ID:   id,
			Name: field(record, col, "Strain_Name"),
			Type: field(record, col, "Type"),
		}
		if s := field(record, col, "Rating"); s != "" {
			rating, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("catalog line %d: bad rating: %w", line, err)
			}
			row.Rating = rating
		}
		for name, idx := range col {
			if idx >= len(record) || !truthy(record[idx]) {
				continue
			}
			switch {
			case strings.HasPrefix(name, effectPrefix):
				row.Effects = append(row.Effects, strings.TrimPrefix(name, effectPrefix))
			case strings.HasPrefix(name, terpenePrefix):
				row.Terpenes = append(row.Terpenes, strings.TrimPrefix(name, terpenePrefix))
			case strings.HasPrefix(name, relievePrefix):
				row.MayRelieve = append(row.MayRelieve, strings.TrimPrefix(name, relievePrefix))
			}
		}
		rows = append(rows, row)
	}

	return catalog.Build(rows)
}

// vectorsFile is the on-disk embedding format.
type vectorsFile struct {
	Dimensions int                  `json:"dimensions"`
	Vectors    map[string][]float64 `json:"vectors"`
}

// LoadVectors reads the strain embedding file into a vector table keyed by
// strain id.
func LoadVectors(path string) (*vector.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	var file vectorsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode vectors: %w", err)
	}

	vectors := make(map[int64]vector.Vector, len(file.Vectors))
	dim := file.Dimensions
	for key, values := range file.Vectors {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad vector key %q: %w", key, err)
		}
		if dim == 0 {
			dim = len(values)
		}
		vectors[id] = values
	}
	if len(vectors) == 0 {
		return nil, errors.New("vectors file holds no embeddings")
	}

	return vector.NewTable(dim, vectors)
}

func field(record []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func truthy(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "1.0", "true", "True":
		return true
	}
	return false
}
