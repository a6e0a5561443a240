package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound se devuelve cuando no existe el documento (collection, key).
var ErrNotFound = errors.New("document not found")

// DocumentStore es el contrato minimo del almacen de documentos: get/set por (collection, key).
type DocumentStore interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Set(ctx context.Context, collection, key string, data []byte) error
}

func getJSON[T any](ctx context.Context, store DocumentStore, collection, key string) (T, error) {
	var out T
	raw, err := store.Get(ctx, collection, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return out, nil
}

func setJSON(ctx context.Context, store DocumentStore, collection, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, key, err)
	}
	return store.Set(ctx, collection, key, raw)
}
