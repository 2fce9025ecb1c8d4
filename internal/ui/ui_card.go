package ui

import (
	"fmt"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-cards/internal/card"
	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/tartampluch/birthday-cards/internal/postage"
)

// buildCardTab assembles the card studio: recipient, preset and message
// selection on the left, the live preview plus save/postage actions on the
// right.
func (app *CardManagerApp) buildCardTab(w fyne.Window) fyne.CanvasObject {
	recipientSelect := widget.NewSelect(nil, nil)
	presetSelect := widget.NewSelect(config.CardPresets, nil)
	presetSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefCardPreset, config.PresetClassic))

	customLabel := app.GetMsg(config.TKeyMsgCustom)
	messageSelect := widget.NewSelect(append([]string{customLabel}, config.DefaultCardMessages...), nil)
	messageSelect.SetSelected(config.DefaultCardMessages[0])

	customEntry := widget.NewMultiLineEntry()
	customEntry.Wrapping = fyne.TextWrapWord
	customEntry.Hide()

	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillOriginal
	preview.SetMinSize(fyne.NewSize(config.CardWidth, config.CardHeight))

	postageLink := widget.NewHyperlink(app.GetMsg(config.TKeyLblPostage), nil)
	postageLink.Hide()

	currentMessage := func() string {
		if messageSelect.Selected == customLabel {
			return customEntry.Text
		}
		return messageSelect.Selected
	}

	render := func() {
		recipient := recipientSelect.Selected
		message := currentMessage()
		if recipient == "" || message == "" {
			return
		}

		img := app.RenderCard(recipient, presetSelect.Selected, message)
		preview.Image = img
		preview.Refresh()

		app.updatePostageLink(postageLink, recipient)
	}

	recipientSelect.OnChanged = func(string) { render() }
	presetSelect.OnChanged = func(name string) {
		app.Preferences.SetString(config.PrefCardPreset, name)
		render()
	}
	messageSelect.OnChanged = func(choice string) {
		if choice == customLabel {
			customEntry.Show()
		} else {
			customEntry.Hide()
		}
		render()
	}
	customEntry.OnChanged = func(string) {
		if messageSelect.Selected == customLabel {
			render()
		}
	}

	app.registerRefreshHook(func() {
		app.StateMut.RLock()
		names := make([]string, 0, len(app.State.Contacts))
		for _, c := range app.State.Contacts {
			names = append(names, c.Name)
		}
		app.StateMut.RUnlock()
		recipientSelect.Options = names
		recipientSelect.Refresh()
	})

	saveBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSaveCard), theme.DocumentSaveIcon(), func() {
		app.saveCard(w)
	})

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblRecipient), recipientSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPreset), presetSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMessage), messageSelect),
	)

	left := container.NewVBox(form, customEntry)
	right := container.NewVBox(preview, container.NewHBox(saveBtn, postageLink))

	return container.NewGridWithColumns(config.LayoutColumnsDouble, left, right)
}

// updatePostageLink points the hyperlink at the Click-N-Ship page for the
// recipient's address. The link is convenience only and never validated.
func (app *CardManagerApp) updatePostageLink(link *widget.Hyperlink, recipient string) {
	app.StateMut.RLock()
	address := ""
	for _, c := range app.State.Contacts {
		if c.Name == recipient {
			address = c.Address
			break
		}
	}
	app.StateMut.RUnlock()

	if address == "" {
		link.Hide()
		return
	}

	u, err := url.Parse(postage.BuildLink(address))
	if err != nil {
		link.Hide()
		return
	}
	link.SetURL(u)
	link.Show()
}

// saveCard writes the current card PNG through a save dialog.
func (app *CardManagerApp) saveCard(w fyne.Window) {
	app.StateMut.RLock()
	img := app.State.CardImage
	app.StateMut.RUnlock()

	if img == nil {
		dialog.ShowInformation(config.AppName, app.GetMsg(config.TKeyErrNoRecipient), w)
		return
	}

	data, err := card.EncodePNG(img)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer func() { _ = writer.Close() }()

		if _, wErr := writer.Write(data); wErr != nil {
			slog.Error(config.ErrPNGEncode,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, wErr)
			dialog.ShowError(wErr, w)
		}
	}, w)
	d.SetFileName(fmt.Sprintf(config.CardFileNameFormat,
		app.Clock.Now().Format(config.CardFileTimeLayout)))
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtPNG}))
	d.Show()
}
