package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set_Valid(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost", addr.Host)
	assert.Equal(t, 8080, addr.Port)
	assert.Equal(t, "localhost:8080", addr.String())
}

func TestNetAddress_Set_ValidIP(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("127.0.0.1:9090"))
	assert.Equal(t, "127.0.0.1:9090", addr.String())
}

func TestNetAddress_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no port", "localhost"},
		{"bad port", "localhost:abc"},
		{"negative port", "localhost:-1"},
		{"bad host", "not-an-ip:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			assert.Error(t, addr.Set(tt.input))
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	var addr NetAddress
	assert.Equal(t, "", addr.String())
}

func TestParseJSON_FullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	payload := `{
		"app": {"token_sign_key": "k", "token_issuer": "folio", "token_duration": "1h"},
		"storage": {"db": {"dsn": "postgres://localhost/folio"}},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"client": {"server_url": "http://localhost:8080", "fetch_timeout": "10s", "session_poll_interval": "1m"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, "folio", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://localhost/folio", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Client.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.Client.SessionPollInterval)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	// raw nanoseconds
	require.NoError(t, os.WriteFile(path, []byte(`{"server": {"request_timeout": 1000000000}}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestValidateServer(t *testing.T) {
	valid := &StructuredConfig{
		App:     App{TokenSignKey: "k", TokenDuration: time.Hour},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/folio"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
	assert.NoError(t, valid.validateServer())

	missing := &StructuredConfig{}
	err := missing.validateServer()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoServerAddress)
	assert.ErrorIs(t, err, ErrNoDatabaseDSN)
	assert.ErrorIs(t, err, ErrNoTokenSignKey)
}

func TestValidateClient(t *testing.T) {
	valid := &StructuredConfig{
		Client: Client{
			ServerURL:           "http://localhost:8080",
			FetchTimeout:        10 * time.Second,
			SessionPollInterval: time.Minute,
		},
	}
	assert.NoError(t, valid.validateClient())

	missing := &StructuredConfig{}
	err := missing.validateClient()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoServerURL)
	assert.ErrorIs(t, err, ErrNoFetchTimeout)
}

func TestBuilder_DefaultsFillGaps(t *testing.T) {
	cfg, err := newConfigBuilder().
		withDefaults().
		build((*StructuredConfig).validateClient)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Client.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.Client.FetchTimeout)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
}

func TestBuilder_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Client: Client{ServerURL: "http://first:1"}},
		&StructuredConfig{Client: Client{ServerURL: "http://second:2"}},
	)
	cfg, err := b.withDefaults().build((*StructuredConfig).validateClient)
	require.NoError(t, err)

	assert.Equal(t, "http://first:1", cfg.Client.ServerURL)
}
