package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON file parsing.
// Durations are accepted both as strings ("30s", "1h") and as raw
// nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress             string   `json:"http_address"`
		RequestTimeout          Duration `json:"request_timeout"`
		RevocationSweepInterval Duration `json:"revocation_sweep_interval"`
	} `json:"server,omitempty"`

	Client struct {
		ServerURL           string   `json:"server_url"`
		RequestTimeout      Duration `json:"request_timeout"`
		FetchTimeout        Duration `json:"fetch_timeout"`
		SessionPollInterval Duration `json:"session_poll_interval"`
		SessionDBPath       string   `json:"session_db_path"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:             jsonCfg.Server.HTTPAddress,
			RequestTimeout:          time.Duration(jsonCfg.Server.RequestTimeout),
			RevocationSweepInterval: time.Duration(jsonCfg.Server.RevocationSweepInterval),
		},
		Client: Client{
			ServerURL:           jsonCfg.Client.ServerURL,
			RequestTimeout:      time.Duration(jsonCfg.Client.RequestTimeout),
			FetchTimeout:        time.Duration(jsonCfg.Client.FetchTimeout),
			SessionPollInterval: time.Duration(jsonCfg.Client.SessionPollInterval),
			SessionDBPath:       jsonCfg.Client.SessionDBPath,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" in addition to raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}
