package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surrealdb/surrealdb.go"
)

func TestWrapQueryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"already exists", &surrealdb.QueryError{Message: "Database record `report:abc` already exists"}, ErrAlreadyExists},
		{"conflict", &surrealdb.QueryError{Message: "Transaction conflict: resource busy"}, ErrTransactionConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, wrapQueryError(tt.err), tt.want)
		})
	}

	t.Run("other query error passes through", func(t *testing.T) {
		err := &surrealdb.QueryError{Message: "Parse error"}
		assert.Same(t, err, wrapQueryError(err))
	})

	t.Run("plain error passes through", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, err, wrapQueryError(err))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, wrapQueryError(nil))
	})
}

func TestConfigAuth(t *testing.T) {
	cfg := Config{Namespace: "ideascope", Database: "reports", Username: "root", Password: "secret"}
	assert.Equal(t, surrealdb.Auth{Username: "root", Password: "secret"}, cfg.auth())

	cfg.AuthLevel = AuthDatabase
	assert.Equal(t, surrealdb.Auth{
		Namespace: "ideascope",
		Database:  "reports",
		Username:  "root",
		Password:  "secret",
	}, cfg.auth())
}
