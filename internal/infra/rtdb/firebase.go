package rtdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"firebase.google.com/go/v4/db"

	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

// FirebaseStore реализация Store поверх Firebase Realtime Database
type FirebaseStore struct {
	client  *db.Client
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewFirebaseStore создает хранилище; timeout ограничивает каждый вызов (0 - без ограничения)
func NewFirebaseStore(client *db.Client, timeout time.Duration, m *metrics.Metrics) *FirebaseStore {
	return &FirebaseStore{
		client:  client,
		timeout: timeout,
		metrics: m,
	}
}

func (s *FirebaseStore) Get(ctx context.Context, path string) (json.RawMessage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	var raw json.RawMessage
	err := s.client.NewRef(path).Get(ctx, &raw)
	s.metrics.ObserveDBQuery("RTDB_GET", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, path, err)
	}
	if isNull(raw) {
		return nil, nil
	}
	return raw, nil
}

func (s *FirebaseStore) Set(ctx context.Context, path string, value interface{}) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	var err error
	if value == nil {
		err = s.client.NewRef(path).Delete(ctx)
	} else {
		err = s.client.NewRef(path).Set(ctx, value)
	}
	s.metrics.ObserveDBQuery("RTDB_SET", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := s.client.NewRef(path).Update(ctx, fields)
	s.metrics.ObserveDBQuery("RTDB_UPDATE", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

func (s *FirebaseStore) Push(ctx context.Context, path string, value interface{}) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	ref, err := s.client.NewRef(path).Push(ctx, value)
	s.metrics.ObserveDBQuery("RTDB_PUSH", err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: push %s: %v", ErrUnavailable, path, err)
	}
	return ref.Key, nil
}

func (s *FirebaseStore) Query(ctx context.Context, path, orderBy string, equalTo interface{}) ([]Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	nodes, err := s.client.NewRef(path).OrderByChild(orderBy).EqualTo(equalTo).GetOrdered(ctx)
	s.metrics.ObserveDBQuery("RTDB_QUERY", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s by %s: %v", ErrUnavailable, path, orderBy, err)
	}

	records := make([]Record, 0, len(nodes))
	for _, node := range nodes {
		var raw json.RawMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, fmt.Errorf("%w: decode %s/%s: %v", ErrUnavailable, path, node.Key(), err)
		}
		records = append(records, Record{Key: node.Key(), Value: raw})
	}
	sortRecords(records)
	return records, nil
}

func (s *FirebaseStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
