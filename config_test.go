package main

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{port: 8080, handshakeTimeout: 5 * time.Second}, false},
		{"port too low", Config{port: 0, handshakeTimeout: time.Second}, true},
		{"port too high", Config{port: 70000, handshakeTimeout: time.Second}, true},
		{"cert without key", Config{port: 8080, handshakeTimeout: time.Second, tlsCert: "cert.pem"}, true},
		{"key without cert", Config{port: 8080, handshakeTimeout: time.Second, tlsKey: "key.pem"}, true},
		{"cert and key", Config{port: 8080, handshakeTimeout: time.Second, tlsCert: "cert.pem", tlsKey: "key.pem"}, false},
		{"zero handshake timeout", Config{port: 8080}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := Config{}
	if cfg.scheme() != "http" {
		t.Errorf("expected http, got %s", cfg.scheme())
	}

	cfg = Config{tlsCert: "cert.pem", tlsKey: "key.pem"}
	if cfg.scheme() != "https" {
		t.Errorf("expected https, got %s", cfg.scheme())
	}
}

func TestDefaultPort(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("IMPOSTER_PORT", "")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.port)
	}
}

func TestBarePortEnvIsHonored(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 9999 {
		t.Errorf("expected PORT env to set the port, got %d", cfg.port)
	}
}

func TestPrefixedPortEnvWins(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("IMPOSTER_PORT", "7777")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 7777 {
		t.Errorf("expected IMPOSTER_PORT to take precedence, got %d", cfg.port)
	}
}
