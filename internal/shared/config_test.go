package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.Spotify.ClientID != "" {
			t.Error("default config must not carry a client ID")
		}
		if config.Credentials.Spotify.ClientSecret != "" {
			t.Error("default config must not carry a client secret")
		}
		if config.Credentials.Groq.APIKey != "" {
			t.Error("default config must not carry an API key")
		}
		if config.Credentials.Spotify.RedirectURI == "" {
			t.Error("expected default redirect URI")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
		if config.Server.Port == 0 {
			t.Error("expected default server port")
		}
	})

	t.Run("Require Credentials", func(t *testing.T) {
		t.Run("Spotify Missing", func(t *testing.T) {
			config := DefaultConfig()

			if err := config.RequireSpotify(); !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Spotify Present", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Spotify.ClientID = "id"
			config.Credentials.Spotify.ClientSecret = "secret"

			if err := config.RequireSpotify(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Groq Missing", func(t *testing.T) {
			config := DefaultConfig()

			if err := config.RequireGroq(); !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Groq Present", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Groq.APIKey = "key"

			if err := config.RequireGroq(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Load And Save Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "test_id"
		config.Credentials.Groq.APIKey = "test_key"
		config.Server.Port = 9999

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "test_id" {
			t.Errorf("unexpected client ID %q", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Groq.APIKey != "test_key" {
			t.Errorf("unexpected API key %q", loaded.Credentials.Groq.APIKey)
		}
		if loaded.Server.Port != 9999 {
			t.Errorf("unexpected port %d", loaded.Server.Port)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("[credentials\nbroken"), 0644)

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("Creates From Example", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("failed to create config: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read created config: %v", err)
			}
			if !strings.Contains(string(data), "[credentials.spotify]") {
				t.Error("expected example content in created config")
			}
		})

		t.Run("Refuses To Overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("existing"), 0644)

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error for existing file")
			}
		})
	})

	t.Run("Spotify Map", func(t *testing.T) {
		spotify := SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "http://localhost:3000/callback",
			AccessToken:  "token",
		}

		m := spotify.Map()
		if m["client_id"] != "id" || m["client_secret"] != "secret" {
			t.Errorf("unexpected map %v", m)
		}
		if _, ok := m["access_token"]; ok {
			t.Error("map must not leak tokens to constructors")
		}
	})

	t.Run("Spotify Update", func(t *testing.T) {
		t.Run("Stores Tokens", func(t *testing.T) {
			spotify := SpotifyConfig{}

			err := spotify.Update(&oauth2.Token{AccessToken: "new_access", RefreshToken: "new_refresh"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if spotify.AccessToken != "new_access" {
				t.Errorf("unexpected access token %q", spotify.AccessToken)
			}
			if spotify.RefreshToken != "new_refresh" {
				t.Errorf("unexpected refresh token %q", spotify.RefreshToken)
			}
		})

		t.Run("Keeps Refresh Token When Absent", func(t *testing.T) {
			spotify := SpotifyConfig{RefreshToken: "old_refresh"}

			spotify.Update(&oauth2.Token{AccessToken: "new_access"})
			if spotify.RefreshToken != "old_refresh" {
				t.Errorf("expected old refresh token kept, got %q", spotify.RefreshToken)
			}
		})

		t.Run("Rejects Empty Token", func(t *testing.T) {
			spotify := SpotifyConfig{}

			if err := spotify.Update(nil); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials for nil token, got %v", err)
			}
			if err := spotify.Update(&oauth2.Token{}); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials for empty token, got %v", err)
			}
		})
	})
}
