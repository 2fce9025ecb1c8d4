package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect   *widget.Select
	entryHorizon *NumericalEntry
	entryPort    *NumericalEntry
	notifyEntry  *widget.Entry
	smtpHost     *widget.Entry
	smtpPort     *NumericalEntry
	smtpAccount  *widget.Entry
	smtpPass     *widget.Entry
	remoteURL    *widget.Entry
	remoteUser   *widget.Entry
	remotePass   *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *CardManagerApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. General Section (Language, Horizon, Port) ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// Horizon: Numerical only, strict range (1-30 days).
	sw.entryHorizon = NewNumericalEntry()
	sw.entryHorizon.SetText(strconv.Itoa(app.Horizon()))
	sw.entryHorizon.Validator = func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < config.MinHorizonDays || v > config.MaxHorizonDays {
			return errors.New(app.GetMsg(config.TKeyErrHorizonRange))
		}
		return nil
	}

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widHorizon := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblDaysSuffix)), sw.entryHorizon)
	itemHorizon := widget.NewFormItem(app.GetMsg(config.TKeyLblHorizon), widHorizon)
	itemHorizon.HintText = app.GetMsg(config.TKeyHelpHorizon)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemHorizon, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Email Section (notify address + SMTP account) ---
	sw.notifyEntry = widget.NewEntry()
	sw.notifyEntry.SetText(app.Preferences.String(config.PrefNotifyEmail))

	sw.smtpHost = widget.NewEntry()
	sw.smtpHost.SetText(app.Preferences.StringWithFallback(config.PrefSMTPHost, config.DefaultSMTPHost))

	sw.smtpPort = NewNumericalEntry()
	sw.smtpPort.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefSMTPPort, config.DefaultSMTPPort)))

	sw.smtpAccount = widget.NewEntry()
	sw.smtpAccount.SetText(app.Preferences.String(config.PrefSMTPAccount))

	sw.smtpPass = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.smtpAccount.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.smtpPass.SetText(pwd)
		}
	}

	itemNotify := widget.NewFormItem(app.GetMsg(config.TKeyLblNotifyEmail), sw.notifyEntry)
	itemNotify.HintText = app.GetMsg(config.TKeyHelpNotify)

	mailForm := widget.NewForm(
		itemNotify,
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPHost), sw.smtpHost),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPPort), sw.smtpPort),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPAccount), sw.smtpAccount),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPPass), sw.smtpPass),
	)
	mailCard := widget.NewCard(app.GetMsg(config.TKeyLblSMTP), "", mailForm)

	// --- 3. Remote Contacts Section ---
	sw.remoteURL = widget.NewEntry()
	sw.remoteURL.SetText(app.Preferences.String(config.PrefRemoteURL))
	sw.remoteURL.PlaceHolder = config.PlaceholderURL

	sw.remoteUser = widget.NewEntry()
	sw.remoteUser.SetText(app.Preferences.String(config.PrefRemoteUser))

	sw.remotePass = widget.NewPasswordEntry()
	if user := sw.remoteUser.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.remotePass.SetText(pwd)
		}
	}

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblRemoteURL), sw.remoteURL)
	itemURL.HintText = app.GetMsg(config.TKeyHelpRemote)

	remoteForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.remoteUser),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.remotePass),
	)
	remoteCard := widget.NewCard(app.GetMsg(config.TKeyBtnFetch), "", remoteForm)

	// --- Actions ---
	saveAction := func() {
		// Port and horizon block saving when invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := sw.entryHorizon.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		mailCard,
		remoteCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.Show()
}

// saveSettings persists the form and refreshes the dependent views.
func (app *CardManagerApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefNotifyEmail, sw.notifyEntry.Text)
	app.Preferences.SetString(config.PrefSMTPHost, sw.smtpHost.Text)
	app.Preferences.SetString(config.PrefSMTPAccount, sw.smtpAccount.Text)
	app.Preferences.SetString(config.PrefRemoteURL, sw.remoteURL.Text)
	app.Preferences.SetString(config.PrefRemoteUser, sw.remoteUser.Text)

	if v, err := strconv.Atoi(sw.entryHorizon.Text); err == nil {
		app.Preferences.SetInt(config.PrefHorizon, v)
	}
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}
	if v, err := strconv.Atoi(sw.smtpPort.Text); err == nil {
		app.Preferences.SetInt(config.PrefSMTPPort, v)
	}

	// Passwords go to the Keyring only, never to the preferences store.
	if sw.smtpAccount.Text != "" && sw.smtpPass.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.smtpAccount.Text, sw.smtpPass.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}
	if sw.remoteUser.Text != "" && sw.remotePass.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.remoteUser.Text, sw.remotePass.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.RefreshUpcoming()
	app.notifyDataChanged()

	w.Close()
}
