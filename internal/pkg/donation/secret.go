package donation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
)

// WebhookSecretSettingKey is the settings row holding the shared HMAC secret.
const WebhookSecretSettingKey = "coinsnap_webhook_secret"

// SecretStore is the slice of the settings repository the provider needs.
type SecretStore interface {
	GetValue(key string) (string, error)
	CreateIfNotExists(setting *models.Setting) (bool, error)
}

// SecretProvider lazily provisions the per-installation webhook secret.
// Provisioning races resolve through the unique setting_key index: both
// callers end up reading whichever secret the store accepted first.
type SecretProvider struct {
	store SecretStore
}

// NewSecretProvider creates a secret provider from an injected setting store.
func NewSecretProvider(store SecretStore) *SecretProvider {
	return &SecretProvider{store: store}
}

// GetOrCreate returns the persisted webhook secret, generating and storing a
// new one on first use. The secret is 16 random bytes, hex encoded.
func (p *SecretProvider) GetOrCreate(ctx context.Context) (string, error) {
	_ = ctx
	secret, err := p.store.GetValue(WebhookSecretSettingKey)
	if err != nil {
		return "", err
	}
	if secret != "" {
		return secret, nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	candidate := hex.EncodeToString(buf)

	if _, err := p.store.CreateIfNotExists(&models.Setting{
		Key:   WebhookSecretSettingKey,
		Value: candidate,
		Type:  "string",
	}); err != nil {
		return "", err
	}

	// Re-read so a concurrent first caller that won the insert wins here too.
	secret, err = p.store.GetValue(WebhookSecretSettingKey)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", errors.New("webhook secret was not persisted")
	}
	return secret, nil
}
