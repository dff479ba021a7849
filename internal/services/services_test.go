package services

import (
	"testing"

	"inkpost/internal/db"
	"inkpost/internal/logger"
	"inkpost/internal/store"
	"inkpost/internal/utils"

	"github.com/stretchr/testify/require"
)

type memSession struct {
	values map[interface{}]interface{}
	saves  int
}

func newMemSession() *memSession {
	return &memSession{values: map[interface{}]interface{}{}}
}

func (s *memSession) Get(key interface{}) interface{}      { return s.values[key] }
func (s *memSession) Set(key interface{}, val interface{}) { s.values[key] = val }
func (s *memSession) Delete(key interface{})               { delete(s.values, key) }
func (s *memSession) Clear()                               { s.values = map[interface{}]interface{}{} }
func (s *memSession) Save() error {
	s.saves++
	return nil
}

func fastHash(password string) (string, error) {
	return utils.HashPasswordWithIterations(password, 1000)
}

func newTestRepos(t *testing.T) *store.Repositories {
	t.Helper()
	conn, err := db.Open(":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return store.NewRepositories(conn, logger.Nop())
}
