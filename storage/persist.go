package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"todo/config"
	"todo/tasks"
)

// Logger receives warnings about recovered storage problems
var Logger = log.New(os.Stderr, "storage: ", log.LstdFlags)

// Persister loads and saves the task list under one fixed key.
// It implements tasks.Saver.
type Persister struct {
	backend Backend
	codec   Codec
	key     string
}

// PersisterOption configures a Persister
type PersisterOption func(*Persister)

// WithCodec replaces the default JSON codec
func WithCodec(c Codec) PersisterOption {
	return func(p *Persister) {
		if c != nil {
			p.codec = c
		}
	}
}

// WithKey replaces the default storage key
func WithKey(key string) PersisterOption {
	return func(p *Persister) {
		if key != "" {
			p.key = key
		}
	}
}

func NewPersister(backend Backend, opts ...PersisterOption) *Persister {
	p := &Persister{
		backend: backend,
		codec:   JSONCodec{},
		key:     config.DefaultKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the storage key the list is kept under
func (p *Persister) Key() string {
	return p.key
}

// Load returns the stored list. A missing value gives an empty list, and so
// does a value that fails to decode; the decode failure is logged, never
// returned. Only a failure to read from the backend is returned.
func (p *Persister) Load(ctx context.Context) ([]tasks.Task, error) {
	data, ok, err := p.backend.Get(ctx, p.key)
	if err != nil {
		return []tasks.Task{}, fmt.Errorf("load %q: %w", p.key, err)
	}
	if !ok {
		return []tasks.Task{}, nil
	}

	list, err := p.codec.Decode(data)
	if err != nil {
		derr := &DecodeError{Key: p.key, Err: err}
		Logger.Printf("discarding stored tasks: %v", derr)
		return []tasks.Task{}, nil
	}
	return list, nil
}

// Save encodes the full list and overwrites the stored value. Failures are
// returned as *WriteError.
func (p *Persister) Save(ctx context.Context, list []tasks.Task) error {
	data, err := p.codec.Encode(list)
	if err != nil {
		return &WriteError{Key: p.key, Err: err}
	}
	if err := p.backend.Set(ctx, p.key, data); err != nil {
		return &WriteError{Key: p.key, Err: err}
	}
	return nil
}

// IsWriteError reports whether err came from a failed save
func IsWriteError(err error) bool {
	var werr *WriteError
	return errors.As(err, &werr)
}
