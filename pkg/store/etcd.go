package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const etcdDialTimeout = 5 * time.Second

type etcd struct {
	client *clientv3.Client
	prefix string
}

// NewEtcd initializes a [Store] backed by an etcd cluster. Each entry
// is a JSON value under the given key prefix. Per-key serialization of
// concurrent writes is guaranteed by etcd itself.
func NewEtcd(endpoints []string, prefix string) (Store, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: etcdDialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize etcd client: %w", err)
	}

	return &etcd{client: client, prefix: prefix}, nil
}

func (s *etcd) key(acronym string) string {
	return s.prefix + Normalize(acronym)
}

func (s *etcd) Get(ctx context.Context, acronym string) (Entry, error) {
	resp, err := s.client.Get(ctx, s.key(acronym))
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read acronym: %w", err)
	}
	if len(resp.Kvs) == 0 {
		return Entry{}, ErrNotFound
	}

	return decodeEntry(resp.Kvs[0].Value)
}

func (s *etcd) Put(ctx context.Context, e Entry) error {
	e.Acronym = Normalize(e.Acronym)
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode acronym entry: %w", err)
	}

	if _, err := s.client.Put(ctx, s.prefix+e.Acronym, string(value)); err != nil {
		return fmt.Errorf("failed to save acronym: %w", err)
	}
	return nil
}

func (s *etcd) Delete(ctx context.Context, acronym string) error {
	resp, err := s.client.Delete(ctx, s.key(acronym))
	if err != nil {
		return fmt.Errorf("failed to delete acronym: %w", err)
	}
	if resp.Deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *etcd) List(ctx context.Context) ([]Entry, error) {
	resp, err := s.client.Get(ctx, s.prefix, clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend))
	if err != nil {
		return nil, fmt.Errorf("failed to list acronyms: %w", err)
	}

	entries := make([]Entry, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		e, err := decodeEntry(kv.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *etcd) Close() error {
	return s.client.Close()
}

func decodeEntry(value []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(value, &e); err != nil {
		return Entry{}, fmt.Errorf("failed to decode acronym entry: %w", err)
	}
	return e, nil
}
