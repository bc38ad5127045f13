package cli

import (
	"context"
	"fmt"

	"todo/commands"
	"todo/config"
	"todo/llm"
	"todo/storage"
	"todo/tasks"
)

// session is one run of the program: the loaded list, the backend it is
// saved to and the optional assistant
type session struct {
	cfg     *config.Config
	backend storage.Backend
	store   *tasks.Store
	client  llm.Client
}

// openSession loads configuration, opens the storage backend and restores the
// saved list. Only a failure to open the backend is fatal; an unreadable list
// starts the session empty.
func openSession(ctx context.Context, confirmer tasks.Confirmer) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendName != "" {
		cfg.Storage.Backend = backendName
	}

	codec, err := storage.CodecFor(cfg.Storage.Encoding)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	persister := storage.NewPersister(backend, storage.WithCodec(codec), storage.WithKey(cfg.Storage.Key))
	list, err := persister.Load(ctx)
	if err != nil {
		storage.Logger.Printf("starting with an empty list: %v", err)
	}
	debugLog.Printf("loaded %d task(s) from %s backend under key %s", len(list), cfg.Storage.Backend, persister.Key())

	s := &session{
		cfg:     cfg,
		backend: backend,
		store:   tasks.NewStore(list, persister, confirmer),
	}
	commands.SetStore(s.store)

	if cfg.Assistant.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.Assistant.APIKey, &llm.Config{
			Model:       cfg.Assistant.Model,
			MaxTokens:   cfg.Assistant.MaxTokens,
			Temperature: cfg.Assistant.Temperature,
		})
		if err != nil {
			debugLog.Printf("assistant disabled: %v", err)
		} else {
			s.client = client
			commands.SetLLMClient(client)
		}
	}

	return s, nil
}

func (s *session) Close() error {
	commands.SetStore(nil)
	if s.client != nil {
		commands.SetLLMClient(nil)
		s.client.Close()
	}
	return s.backend.Close()
}
