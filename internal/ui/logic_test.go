package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/zalando/go-keyring"
)

// TestApp_LoadMailConfig tests the conversion of UI preferences plus keyring
// secrets into the mailer configuration. Being in package 'ui' lets us test
// the private method loadMailConfig.
func TestApp_LoadMailConfig(t *testing.T) {
	keyring.MockInit() // In-memory keyring, no OS secret store involved

	a := test.NewApp()
	app := &CardManagerApp{
		App:         a,
		Preferences: a.Preferences(),
	}

	t.Run("Defaults", func(t *testing.T) {
		cfg := app.loadMailConfig()

		assert.Equal(t, config.DefaultSMTPHost, cfg.Host)
		assert.Equal(t, config.DefaultSMTPPort, cfg.Port)
		assert.Empty(t, cfg.Username)
		assert.Empty(t, cfg.Password)
		assert.Empty(t, cfg.From, "From mirrors the account, which is unset")
	})

	t.Run("ConfiguredAccount", func(t *testing.T) {
		app.Preferences.SetString(config.PrefSMTPHost, "mail.example.org")
		app.Preferences.SetInt(config.PrefSMTPPort, 2525)
		app.Preferences.SetString(config.PrefSMTPAccount, "acct@example.org")

		require.NoError(t, keyring.Set(config.KeyringService, "acct@example.org", "s3cret"))

		cfg := app.loadMailConfig()

		assert.Equal(t, "mail.example.org", cfg.Host)
		assert.Equal(t, 2525, cfg.Port)
		assert.Equal(t, "acct@example.org", cfg.Username)
		assert.Equal(t, "s3cret", cfg.Password, "Password comes from the keyring, not preferences")
		assert.Equal(t, cfg.Username, cfg.From)
	})

	t.Run("MissingKeyringEntry", func(t *testing.T) {
		app.Preferences.SetString(config.PrefSMTPAccount, "ghost@example.org")

		cfg := app.loadMailConfig()

		assert.Equal(t, "ghost@example.org", cfg.Username)
		assert.Empty(t, cfg.Password, "A missing secret degrades to an empty password")
	})
}
