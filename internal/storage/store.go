// Package storage persists traced field-line runs: a metadata.json per
// run plus a points.csv holding the section crossings of every line in
// both solver-internal and physical coordinates.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/trace"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Equilibrium string    `json:"equilibrium"`
	Geometry    string    `json:"geometry"`
	Volume      int       `json:"volume"`
	Timestamp   time.Time `json:"timestamp"`
	Step        float64   `json:"step"`
	Turns       int       `json:"turns"`
	Lines       int       `json:"lines"`
	Integrator  string    `json:"integrator"`
	PlotKind    string    `json:"plot_kind"`
	XLabel      string    `json:"xlabel"`
	YLabel      string    `json:"ylabel"`
}

// Save writes one run: the metadata plus every line's crossings. The
// physical points are produced through the tracer's own problem, so the
// stored projection always matches the stored metadata.
func (s *Store) Save(name string, tr *trace.Tracer, cfg trace.Config, integrator string, results []*trace.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	prob := tr.Problem()
	proj := prob.Projection()

	meta := RunMetadata{
		ID:          runID,
		Equilibrium: name,
		Geometry:    prob.Geometry().String(),
		Volume:      prob.Volume(),
		Timestamp:   time.Now(),
		Step:        cfg.Step,
		Turns:       cfg.Turns,
		Lines:       len(results),
		Integrator:  integrator,
		PlotKind:    string(proj.Kind),
		XLabel:      proj.XLabel,
		YLabel:      proj.YLabel,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "points.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"line", "turn", "s", "theta", "x", "y", "z"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for li, res := range results {
		points, err := tr.Convert(res)
		if err != nil {
			return "", err
		}
		for ci, st := range res.Crossings {
			row := []string{
				strconv.Itoa(li),
				strconv.Itoa(ci),
				strconv.FormatFloat(st[0], 'f', 9, 64),
				strconv.FormatFloat(st[1], 'f', 9, 64),
				strconv.FormatFloat(points[ci][0], 'f', 9, 64),
				strconv.FormatFloat(points[ci][1], 'f', 9, 64),
				strconv.FormatFloat(points[ci][2], 'f', 9, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		raw, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoints reads back the physical points of a run, grouped by line.
func (s *Store) LoadPoints(runID string) ([][]flux.State, error) {
	csvPath := filepath.Join(s.baseDir, runID, "points.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lines := make([][]flux.State, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 7 {
			continue
		}

		li, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		for li >= len(lines) {
			lines = append(lines, nil)
		}

		point := make(flux.State, 3)
		bad := false
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(record[4+j], 64)
			if err != nil {
				bad = true
				break
			}
			point[j] = v
		}
		if bad {
			continue
		}
		lines[li] = append(lines[li], point)
	}

	return lines, nil
}
