package ui

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/birthday-cards/internal/card"
	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/tartampluch/birthday-cards/internal/engine"
	"github.com/tartampluch/birthday-cards/internal/mailer"
	"github.com/tartampluch/birthday-cards/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// SessionState is the single in-process session: the current contact list,
// the last computed upcoming view, and the last generated card. The UI layer
// owns and mutates it; the engine functions are pure over snapshots of it.
type SessionState struct {
	Contacts     []engine.ContactRecord
	SkippedLines int

	Upcoming     []engine.UpcomingBirthday
	SkippedDates int

	CardImage     *image.RGBA
	CardRecipient string
	CardMessage   string
}

// CardManagerApp encapsulates the UI state, preferences, and glue logic.
type CardManagerApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.FeedServer
	Fetcher  engine.ContactsFetcher
	Clock    engine.Clock   // Injected clock for testability (e.g. mocking time travel)
	Renderer *card.Renderer

	// NewNotifier builds the mail transport; swappable so UI tests can
	// capture sends instead of opening SMTP sessions.
	NewNotifier func(mailer.Config) mailer.Notifier

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	settingsWindow fyne.Window

	// Session State
	StateMut sync.RWMutex
	State    SessionState

	// Tab refresh hooks registered by the tab builders.
	refreshHooks []func()
}

// NewCardManagerApp constructs the application and wires dependencies.
func NewCardManagerApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher engine.ContactsFetcher) *CardManagerApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &CardManagerApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{}, // Default to real clock in production
		Renderer:           card.NewRenderer(),
		NewNotifier:        func(cfg mailer.Config) mailer.Notifier { return mailer.NewSMTPNotifier(cfg) },
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the local server, tray, and the main UI loop.
func (app *CardManagerApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.buildMainWindow()
	app.Window.Show()
	app.App.Run()
}

// buildMainWindow assembles the tabbed main window.
// Closing it hides the window; the tray keeps the application alive.
func (app *CardManagerApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	tabs := container.NewAppTabs(
		container.NewTabItem(app.GetMsg(config.TKeyTabContacts), app.buildContactsTab(w)),
		container.NewTabItem(app.GetMsg(config.TKeyTabUpcoming), app.buildUpcomingTab()),
		container.NewTabItem(app.GetMsg(config.TKeyTabCard), app.buildCardTab(w)),
	)

	w.SetContent(tabs)
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	if app.Tray != nil {
		w.SetCloseIntercept(func() { w.Hide() })
	}
}

// registerRefreshHook records a tab callback invoked whenever session data changes.
func (app *CardManagerApp) registerRefreshHook(hook func()) {
	app.refreshHooks = append(app.refreshHooks, hook)
}

// notifyDataChanged re-renders every registered tab view.
func (app *CardManagerApp) notifyDataChanged() {
	for _, hook := range app.refreshHooks {
		hook()
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *CardManagerApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		if app.Window != nil {
			app.Window.Show()
		}
	})

	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), func() {
		if app.Window != nil {
			app.Window.Show()
		}
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CardManagerApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// updateTrayStatus reflects the number of upcoming birthdays in the tray.
// A negative count signals an error state.
func (app *CardManagerApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else if count == 0 {
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	} else {
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// -----------------------------------------------------------------------------
// Session Operations
// -----------------------------------------------------------------------------

// SetContacts replaces the session contact list and recomputes the
// downstream views (upcoming list, tray count, ICS feed).
func (app *CardManagerApp) SetContacts(records []engine.ContactRecord, skipped int) {
	app.StateMut.Lock()
	app.State.Contacts = records
	app.State.SkippedLines = skipped
	app.StateMut.Unlock()

	slog.Info(config.MsgContactsLoaded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(records),
		config.LogKeySkipped, skipped)

	app.RefreshUpcoming()
	app.notifyDataChanged()
}

// LoadContacts parses a contact stream (text lines or vCards) into the session.
// Parse failures surface to the caller; the previous list is left untouched.
func (app *CardManagerApp) LoadContacts(r io.Reader, isVCard bool) error {
	var (
		records []engine.ContactRecord
		skipped int
		err     error
	)
	if isVCard {
		records, skipped, err = engine.ParseVCards(r)
	} else {
		records, skipped, err = engine.ParseContacts(r)
	}
	if err != nil {
		return err
	}

	app.SetContacts(records, skipped)
	return nil
}

// Horizon returns the configured inclusive window, clamped to sane bounds.
func (app *CardManagerApp) Horizon() int {
	h := app.Preferences.IntWithFallback(config.PrefHorizon, config.DefaultHorizonDays)
	if h < config.MinHorizonDays {
		h = config.DefaultHorizonDays
	}
	if h > config.MaxHorizonDays {
		h = config.MaxHorizonDays
	}
	return h
}

// RefreshUpcoming recomputes the window filter over the current contacts and
// republishes the ICS feed. The computation is pure; repeating it with the
// same contacts and the same day yields the same view.
func (app *CardManagerApp) RefreshUpcoming() {
	app.StateMut.RLock()
	contacts := make([]engine.ContactRecord, len(app.State.Contacts))
	copy(contacts, app.State.Contacts)
	app.StateMut.RUnlock()

	now := app.Clock.Now()
	horizon := app.Horizon()

	upcoming, skippedDates := engine.UpcomingWithin(contacts, now, horizon)

	app.StateMut.Lock()
	app.State.Upcoming = upcoming
	app.State.SkippedDates = skippedDates
	app.StateMut.Unlock()

	slog.Info(config.MsgFilterDone,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyHorizon, horizon,
		config.LogKeyCount, len(upcoming),
		config.LogKeySkipped, skippedDates)

	ics, err := engine.BuildCalendar(upcoming, now, app.buildSummaryFormatter())
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.updateTrayStatus(-1)
		return
	}
	app.Server.UpdateFeed(ics)
	app.updateTrayStatus(len(upcoming))
}

// loadMailConfig assembles the SMTP configuration from preferences and the
// system keyring. The password never touches the preferences store.
func (app *CardManagerApp) loadMailConfig() mailer.Config {
	cfg := mailer.Config{
		Host:     app.Preferences.StringWithFallback(config.PrefSMTPHost, config.DefaultSMTPHost),
		Port:     app.Preferences.IntWithFallback(config.PrefSMTPPort, config.DefaultSMTPPort),
		Username: app.Preferences.String(config.PrefSMTPAccount),
	}
	cfg.From = cfg.Username

	if cfg.Username != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.Username); err == nil {
			cfg.Password = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
		}
	}

	return cfg
}

// SendReminders sends one notification email per upcoming birthday,
// synchronously and in order. A failed send is reported and the loop
// continues with the remaining records.
func (app *CardManagerApp) SendReminders() (sent, failed int) {
	recipient := app.Preferences.String(config.PrefNotifyEmail)
	notifier := app.NewNotifier(app.loadMailConfig())

	app.StateMut.RLock()
	upcoming := make([]engine.UpcomingBirthday, len(app.State.Upcoming))
	copy(upcoming, app.State.Upcoming)
	app.StateMut.RUnlock()

	for _, b := range upcoming {
		if err := notifier.Notify(recipient, b); err != nil {
			failed++
			app.App.SendNotification(fyne.NewNotification(
				config.TitleSendError,
				app.GetMsgData(config.TKeyNotifSendFail, map[string]interface{}{"Name": b.Name})))
			continue
		}
		sent++
		app.App.SendNotification(fyne.NewNotification(
			config.AppName,
			app.GetMsgData(config.TKeyNotifSent, map[string]interface{}{"Name": b.Name})))
	}
	return sent, failed
}

// RenderCard draws the card for the selected recipient and publishes the PNG
// to the local server so it is also reachable as a download.
func (app *CardManagerApp) RenderCard(recipient, presetName, message string) *image.RGBA {
	img := app.Renderer.Render(presetName, recipient, message)

	app.StateMut.Lock()
	app.State.CardImage = img
	app.State.CardRecipient = recipient
	app.State.CardMessage = message
	app.StateMut.Unlock()

	if data, err := card.EncodePNG(img); err == nil {
		app.Server.UpdateCard(data)
	} else {
		slog.Error(config.ErrPNGEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}

	return img
}

// buildSummaryFormatter returns a closure that localizes the feed summary.
func (app *CardManagerApp) buildSummaryFormatter() engine.SummaryFormatter {
	return func(name string) string {
		if app.Localizer == nil {
			return fmt.Sprintf(config.FallbackSummary, name)
		}
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtSummary,
			TemplateData: map[string]interface{}{"Name": name},
		})
		if err != nil || msg == "" {
			return fmt.Sprintf(config.FallbackSummary, name)
		}
		return msg
	}
}
