// Package redis implementa el caché de sesiones: el contexto de identidad
// (user_id, organizer_id, organizer_role) se guarda bajo un id de sesión con
// TTL y lo resuelve el middleware de autenticación en cada petición.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/pkg/config"
)

const sessionKeyPrefix = "session:"

// SessionStore sesiones de usuario sobre Redis.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore construye el store y verifica la conexión.
func NewSessionStore(ctx context.Context, cfg config.RedisConfig) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SessionStore{
		client: client,
		ttl:    time.Duration(cfg.SessionTTL) * time.Second,
	}, nil
}

// Create guarda el contexto de identidad bajo un id de sesión nuevo y lo devuelve.
func (s *SessionStore) Create(ctx context.Context, data entity.UserData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	sessionID := uuid.New().String()
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("set session: %w", err)
	}
	return sessionID, nil
}

// Get resuelve el contexto de identidad de una sesión. (nil, nil) si expiró o no existe.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*entity.UserData, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var data entity.UserData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &data, nil
}

// Delete invalida una sesión (logout).
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
