// Package loader turns problem files into validated instances.
//
// Two shapes are accepted, both as YAML or JSON:
//
//	{"capacity": 10, "items": [{"id": "A", "size": 4}]}
//	{"kapasitas_kontainer": 10, "barang": [{"id": "A", "ukuran": 4}]}
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"binPack/internal/binpack"
)

var ErrFormat = errors.New("loader: malformed problem file")

type itemDoc struct {
	ID     string   `yaml:"id"`
	Size   *float64 `yaml:"size"`
	Ukuran *float64 `yaml:"ukuran"`
}

type problemDoc struct {
	Capacity  *float64  `yaml:"capacity"`
	Kapasitas *float64  `yaml:"kapasitas_kontainer"`
	Items     []itemDoc `yaml:"items"`
	Barang    []itemDoc `yaml:"barang"`
}

func Load(path string) (*binpack.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inst, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

func Decode(r io.Reader) (*binpack.Instance, error) {
	var doc problemDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrFormat)
		}
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	capacity, err := pick("capacity", doc.Capacity, "kapasitas_kontainer", doc.Kapasitas)
	if err != nil {
		return nil, err
	}

	docs := doc.Items
	if doc.Barang != nil {
		if doc.Items != nil {
			return nil, fmt.Errorf("%w: both items and barang are set", ErrFormat)
		}
		docs = doc.Barang
	}

	items := make([]binpack.Item, len(docs))
	for i, d := range docs {
		size, err := pick("size", d.Size, "ukuran", d.Ukuran)
		if err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i, d.ID, err)
		}
		items[i] = binpack.Item{ID: d.ID, Size: size}
	}

	return binpack.NewInstance(capacity, items)
}

func pick(name string, v *float64, alias string, a *float64) (float64, error) {
	switch {
	case v != nil && a != nil:
		return 0, fmt.Errorf("%w: both %s and %s are set", ErrFormat, name, alias)
	case v != nil:
		return *v, nil
	case a != nil:
		return *a, nil
	default:
		return 0, fmt.Errorf("%w: missing %s", ErrFormat, name)
	}
}
