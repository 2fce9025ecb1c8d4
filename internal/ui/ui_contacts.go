package ui

import (
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/zalando/go-keyring"
)

// buildContactsTab assembles the contact import view: a local file picker, a
// remote fetch action, the load summary, and the contact table.
func (app *CardManagerApp) buildContactsTab(w fyne.Window) fyne.CanvasObject {
	summary := widget.NewLabel("")
	summary.TextStyle = fyne.TextStyle{Italic: true}

	table := app.buildContactsTable()

	updateSummary := func() {
		app.StateMut.RLock()
		loaded := len(app.State.Contacts)
		skipped := app.State.SkippedLines
		app.StateMut.RUnlock()

		text := app.GetMsgData(config.TKeyLblLoaded, map[string]interface{}{"Count": loaded})
		if skipped > 0 {
			text += config.CharSpace + app.GetMsgData(config.TKeyLblSkipped, map[string]interface{}{"Count": skipped})
		}
		summary.SetText(text)
	}

	app.registerRefreshHook(func() {
		updateSummary()
		table.Refresh()
	})

	openBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnOpenFile), theme.FolderOpenIcon(), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			defer func() { _ = r.Close() }()

			ext := strings.ToLower(r.URI().Extension())
			isVCard := ext == config.ExtVCF || ext == config.ExtVCard

			if loadErr := app.LoadContacts(r, isVCard); loadErr != nil {
				slog.Warn(config.ErrContactsRead,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyFile, r.URI().Name(),
					config.LogKeyError, loadErr)
				dialog.ShowError(loadErr, w)
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtTXT, config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	fetchBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnFetch), theme.DownloadIcon(), func() {
		app.fetchRemoteContacts(w)
	})

	toolbar := container.NewHBox(openBtn, fetchBtn)

	return container.NewBorder(
		container.NewVBox(toolbar, summary),
		nil, nil, nil,
		table,
	)
}

// fetchRemoteContacts downloads the contact list configured in settings.
// The extension of the remote path decides the parser, defaulting to text.
func (app *CardManagerApp) fetchRemoteContacts(w fyne.Window) {
	url := app.Preferences.String(config.PrefRemoteURL)
	if url == "" {
		dialog.ShowInformation(config.TitleLoadError, app.GetMsg(config.TKeyHelpRemote), w)
		return
	}
	if app.Fetcher == nil {
		slog.Error(config.ErrFetcherMissing, config.LogKeyComponent, config.CompUI)
		return
	}

	user := app.Preferences.String(config.PrefRemoteUser)
	pass := ""
	if user != "" {
		if p, err := keyring.Get(config.KeyringService, user); err == nil {
			pass = p
		}
	}

	reader, err := app.Fetcher.Fetch(app.Ctx, url, user, pass)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}
	defer func() { _ = reader.Close() }()

	lower := strings.ToLower(url)
	isVCard := strings.HasSuffix(lower, config.ExtVCF) || strings.HasSuffix(lower, config.ExtVCard)

	if err := app.LoadContacts(reader, isVCard); err != nil {
		dialog.ShowError(err, w)
	}
}

// buildContactsTable lists the session contacts in input order.
func (app *CardManagerApp) buildContactsTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			app.StateMut.RLock()
			defer app.StateMut.RUnlock()
			return len(app.State.Contacts), config.ContactsCols
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)

			app.StateMut.RLock()
			defer app.StateMut.RUnlock()
			if id.Row >= len(app.State.Contacts) {
				return
			}
			c := app.State.Contacts[id.Row]

			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDAddress:
				label.SetText(c.Address)
			case config.ColIDBirthdate:
				label.SetText(c.Birthdate)
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabel(config.TablePlaceholder)
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		switch id.Col {
		case config.ColIDName:
			label.SetText(app.GetMsg(config.TKeyColName))
		case config.ColIDAddress:
			label.SetText(app.GetMsg(config.TKeyColAddress))
		case config.ColIDBirthdate:
			label.SetText(app.GetMsg(config.TKeyColBirthdate))
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDAddress, config.ColWidthAddress)
	table.SetColumnWidth(config.ColIDBirthdate, config.ColWidthBirthdate)

	return table
}
