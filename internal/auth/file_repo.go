package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository keeps the operator allowlist as a single JSON array.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) LoadAll() ([]Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUnlocked()
}

func (r *FileRepository) Upsert(op Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops, _ := r.loadUnlocked()
	updated := false
	for i, o := range ops {
		if o.ID == op.ID {
			ops[i] = op
			updated = true
			break
		}
	}
	if !updated {
		ops = append(ops, op)
	}
	return r.saveUnlocked(ops)
}

func (r *FileRepository) Remove(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops, _ := r.loadUnlocked()
	out := ops[:0]
	for _, o := range ops {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return r.saveUnlocked(out)
}

func (r *FileRepository) loadUnlocked() ([]Operator, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	var ops []Operator
	dec := json.NewDecoder(f)
	if err := dec.Decode(&ops); err != nil {
		if err == io.EOF {
			return []Operator{}, nil
		}
		return []Operator{}, nil
	}
	return ops, nil
}

func (r *FileRepository) saveUnlocked(ops []Operator) error {
	tmp := r.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ops); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}
