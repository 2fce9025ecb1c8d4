package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-cards/internal/config"
)

// buildUpcomingTab assembles the window-filter view: horizon control,
// refresh and reminder actions, and the upcoming table.
func (app *CardManagerApp) buildUpcomingTab() fyne.CanvasObject {
	horizonEntry := NewNumericalEntry()
	horizonEntry.SetText(strconv.Itoa(app.Horizon()))

	status := widget.NewLabel("")
	status.TextStyle = fyne.TextStyle{Italic: true}

	table := app.buildUpcomingTable()

	updateStatus := func() {
		app.StateMut.RLock()
		count := len(app.State.Upcoming)
		app.StateMut.RUnlock()

		if count == 0 {
			status.SetText(app.GetMsgData(config.TKeyLblNoUpcoming,
				map[string]interface{}{"Days": app.Horizon()}))
		} else {
			status.SetText("")
		}
	}

	app.registerRefreshHook(func() {
		updateStatus()
		table.Refresh()
	})

	refreshBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRefresh), theme.ViewRefreshIcon(), func() {
		if v, err := strconv.Atoi(horizonEntry.Text); err == nil &&
			v >= config.MinHorizonDays && v <= config.MaxHorizonDays {
			app.Preferences.SetInt(config.PrefHorizon, v)
		} else {
			horizonEntry.SetText(strconv.Itoa(app.Horizon()))
		}
		app.RefreshUpcoming()
		updateStatus()
		table.Refresh()
	})

	sendBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSendReminders), theme.MailSendIcon(), func() {
		app.SendReminders()
	})
	sendBtn.Importance = widget.HighImportance

	horizonRow := container.NewHBox(
		widget.NewLabel(app.GetMsg(config.TKeyLblHorizon)),
		horizonEntry,
		widget.NewLabel(app.GetMsg(config.TKeyLblDaysSuffix)),
		refreshBtn,
		sendBtn,
	)

	updateStatus()

	return container.NewBorder(
		container.NewVBox(horizonRow, status),
		nil, nil, nil,
		table,
	)
}

// buildUpcomingTable lists the filtered records in input order; no sort by
// proximity is applied.
func (app *CardManagerApp) buildUpcomingTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			app.StateMut.RLock()
			defer app.StateMut.RUnlock()
			return len(app.State.Upcoming), config.UpcomingCols
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)

			app.StateMut.RLock()
			defer app.StateMut.RUnlock()
			if id.Row >= len(app.State.Upcoming) {
				return
			}
			b := app.State.Upcoming[id.Row]

			switch id.Col {
			case config.UpColIDName:
				label.SetText(b.Name)
			case config.UpColIDDays:
				label.SetText(strconv.Itoa(b.DaysUntil))
			case config.UpColIDNext:
				label.SetText(b.NextOccurrence.Format(config.DateFormatDisplay))
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
		case config.UpColIDName:
			label.SetText(app.GetMsg(config.TKeyColName))
		case config.UpColIDDays:
			label.SetText(app.GetMsg(config.TKeyColDays))
		case config.UpColIDNext:
			label.SetText(app.GetMsg(config.TKeyColNext))
		}
	}

	table.SetColumnWidth(config.UpColIDName, config.UpColWidthName)
	table.SetColumnWidth(config.UpColIDDays, config.UpColWidthDays)
	table.SetColumnWidth(config.UpColIDNext, config.UpColWidthNext)

	return table
}
