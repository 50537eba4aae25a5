package tileset

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// rawEnd mirrors End with an optional strength so that omitted strengths default to 1.
type rawEnd struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Strength *int   `yaml:"strength"`
	Use      string `yaml:"use,omitempty"`
}

type rawTileSet struct {
	Tiles []Tile         `yaml:"tiles"`
	Ends  []rawEnd       `yaml:"ends"`
	Seed  *Seed          `yaml:"seed"`
	Info  map[string]any `yaml:"info"`
}

// Load decodes a YAML tile set from r and validates it.
func Load(r io.Reader) (*TileSet, error) {
	var raw rawTileSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("tileset: decode: %w", err)
	}
	ts := &TileSet{Tiles: raw.Tiles, Seed: raw.Seed, Info: raw.Info}
	for _, e := range raw.Ends {
		strength := 1
		if e.Strength != nil {
			strength = *e.Strength
		}
		ts.Ends = append(ts.Ends, End{Name: e.Name, Type: e.Type, Strength: strength, Use: e.Use})
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}

	return ts, nil
}

// LoadFile reads a YAML tile set from path.
func LoadFile(path string) (*TileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tileset: %w", err)
	}

	return Load(bytes.NewReader(data))
}

// Save encodes ts as YAML to w.
func (ts *TileSet) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ts); err != nil {
		return fmt.Errorf("tileset: encode: %w", err)
	}

	return enc.Close()
}

// SaveFile writes ts as YAML to path.
func (ts *TileSet) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := ts.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("tileset: %w", err)
	}

	return nil
}
