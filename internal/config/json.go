// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations accept Go duration strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version      string `json:"version"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Bootstrap struct {
		BossThreadCount   int      `json:"boss_thread_count"`
		WorkerThreadCount int      `json:"worker_thread_count"`
		ShutdownTimeout   Duration `json:"shutdown_timeout"`
		Socket            struct {
			DisableNoDelay *bool    `json:"disable_no_delay"`
			KeepAlive      Duration `json:"keep_alive"`
			ReuseAddress   *bool    `json:"reuse_address"`
			ReceiveBuffer  int      `json:"receive_buffer"`
			SendBuffer     int      `json:"send_buffer"`
		} `json:"socket,omitempty"`
	} `json:"bootstrap,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		LineAddress    string   `json:"line_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Retries        int      `json:"retries"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Transports []struct {
		Name           string   `json:"name"`
		Protocol       string   `json:"protocol"`
		Address        string   `json:"address"`
		MaxConnections int      `json:"max_connections"`
		IdleTimeout    Duration `json:"idle_timeout"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxFrameSize   int      `json:"max_frame_size"`
	} `json:"transports,omitempty"`
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
			Version:      jsonCfg.App.Version,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
		},
		Bootstrap: Bootstrap{
			BossThreadCount:   jsonCfg.Bootstrap.BossThreadCount,
			WorkerThreadCount: jsonCfg.Bootstrap.WorkerThreadCount,
			ShutdownTimeout:   time.Duration(jsonCfg.Bootstrap.ShutdownTimeout),
			Socket: Socket{
				DisableNoDelay: jsonCfg.Bootstrap.Socket.DisableNoDelay,
				KeepAlive:      time.Duration(jsonCfg.Bootstrap.Socket.KeepAlive),
				ReuseAddress:   jsonCfg.Bootstrap.Socket.ReuseAddress,
				ReceiveBuffer:  jsonCfg.Bootstrap.Socket.ReceiveBuffer,
				SendBuffer:     jsonCfg.Bootstrap.Socket.SendBuffer,
			},
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			LineAddress:    jsonCfg.Server.LineAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Retries:        jsonCfg.Adapter.Retries,
			Token:          jsonCfg.Adapter.Token,
		},
	}

	for _, t := range jsonCfg.Transports {
		cfg.Transports = append(cfg.Transports, Transport{
			Name:           t.Name,
			Protocol:       t.Protocol,
			Address:        t.Address,
			MaxConnections: t.MaxConnections,
			IdleTimeout:    time.Duration(t.IdleTimeout),
			RequestTimeout: time.Duration(t.RequestTimeout),
			MaxFrameSize:   t.MaxFrameSize,
		})
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
