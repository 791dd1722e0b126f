package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"TickerDesk/internal/model"
)

var csvHeader = []string{"Symbol", "Name", "Category"}

// LoadOrInit builds the startup index. With an empty path it uses the builtin
// dataset. Otherwise it loads the CSV catalog at path, seeding the file from
// the builtin dataset first if it does not exist yet.
func LoadOrInit(path string) (*Index, error) {
	if path == "" {
		return New(Builtin())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteFile(path, Builtin()); err != nil {
			log.Printf("[WARN] seed catalog file %s: %v", path, err)
			return New(Builtin())
		}
		log.Printf("[INFO] seeded catalog file: %s", path)
	}
	list, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return New(list)
}

// LoadFile reads a CSV catalog file.
func LoadFile(path string) ([]model.Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV catalog rows: Symbol,Name,Category with a header line.
// The category column is optional for compatibility with hand-edited files.
func Read(r io.Reader) ([]model.Instrument, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var list []model.Instrument
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && rec[0] == csvHeader[0] {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: want at least 2 fields, got %d", line, len(rec))
		}
		ins := model.Instrument{Symbol: rec[0], Name: rec[1], Category: model.CategoryOther}
		if len(rec) >= 3 {
			ins.Category = model.ParseCategory(rec[2])
		}
		list = append(list, ins)
	}
	return list, nil
}

// WriteFile writes a CSV catalog file, creating parent directories as needed.
func WriteFile(path string, list []model.Instrument) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, list)
}

// Write emits CSV catalog rows with a header line.
func Write(w io.Writer, list []model.Instrument) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ins := range list {
		if err := cw.Write([]string{ins.Symbol, ins.Name, string(ins.Category)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
