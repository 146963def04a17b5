package ui

import (
	"fmt"
	"strings"

	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SettingsView edits the user-facing parts of the configuration
type SettingsView struct {
	app *App

	baseURLEntry   *widget.Entry
	themeSelect    *widget.Select
	fontSizeSlider *widget.Slider
	fontSizeLabel  *widget.Label
	minimizeCheck  *widget.Check
	exportDirEntry *widget.Entry
	toastEntry     *widget.Entry
	status         *widget.Label
}

// NewSettingsView creates a settings view bound to the app config
func NewSettingsView(app *App) *SettingsView {
	return &SettingsView{app: app}
}

// Build builds the settings UI from the current config
func (sv *SettingsView) Build() fyne.CanvasObject {
	edit := utils.EditFromConfig(sv.app.config)

	sv.baseURLEntry = widget.NewEntry()
	sv.baseURLEntry.SetPlaceHolder("https://kb.example.com")
	sv.baseURLEntry.SetText(edit.BaseURL)

	sv.themeSelect = widget.NewSelect([]string{"Dark", "Light"}, nil)
	sv.themeSelect.SetSelected(titleCase(edit.Theme))

	sv.fontSizeLabel = widget.NewLabel("")
	sv.fontSizeSlider = widget.NewSlider(utils.MinFontSize, utils.MaxFontSize)
	sv.fontSizeSlider.Step = 1
	sv.fontSizeSlider.OnChanged = func(value float64) {
		sv.fontSizeLabel.SetText(fmt.Sprintf("Font Size: %d", int(value)))
	}
	sv.fontSizeSlider.SetValue(float64(edit.FontSize))

	sv.minimizeCheck = widget.NewCheck("Minimize to system tray on close", nil)
	sv.minimizeCheck.SetChecked(edit.MinimizeToTray)

	sv.exportDirEntry = widget.NewEntry()
	sv.exportDirEntry.SetPlaceHolder("~/Downloads/Apex Exports")
	sv.exportDirEntry.SetText(edit.ExportDir)

	sv.toastEntry = widget.NewEntry()
	sv.toastEntry.SetText(edit.ToastSeconds)

	sv.status = widget.NewLabel("")
	sv.status.Wrapping = fyne.TextWrapWord
	sv.status.Hide()

	connection := widget.NewForm(
		widget.NewFormItem("API address", sv.baseURLEntry),
	)
	appearance := widget.NewForm(
		widget.NewFormItem("Theme", sv.themeSelect),
		widget.NewFormItem("", container.NewVBox(sv.fontSizeLabel, sv.fontSizeSlider)),
		widget.NewFormItem("System Tray", sv.minimizeCheck),
	)
	data := widget.NewForm(
		widget.NewFormItem("Export folder", sv.exportDirEntry),
		widget.NewFormItem("Unlock toast (seconds)", sv.toastEntry),
	)

	dbPath := widget.NewLabel(sv.app.config.Data.DBPath)
	dbPath.Wrapping = fyne.TextWrapBreak
	dbNote := widget.NewLabelWithStyle("Changing the database path requires a restart", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})

	save := widget.NewButton("Save", sv.save)
	save.Importance = widget.HighImportance

	return container.NewBorder(nil, container.NewVBox(sv.status, save), nil, nil,
		container.NewVScroll(container.NewVBox(
			widget.NewLabelWithStyle("Connection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			connection,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			appearance,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Data", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			data,
			dbPath,
			dbNote,
		)),
	)
}

func (sv *SettingsView) save() {
	edit := utils.SettingsEdit{
		BaseURL:        sv.baseURLEntry.Text,
		Theme:          strings.ToLower(sv.themeSelect.Selected),
		FontSize:       int(sv.fontSizeSlider.Value),
		MinimizeToTray: sv.minimizeCheck.Checked,
		ExportDir:      sv.exportDirEntry.Text,
		ToastSeconds:   sv.toastEntry.Text,
	}

	a := sv.app
	a.configMu.Lock()
	err := edit.Apply(a.config)
	a.configMu.Unlock()
	if err != nil {
		sv.setStatus(err.Error(), widget.DangerImportance)
		return
	}

	a.client.SetBaseURL(a.config.API.BaseURL)
	a.toasts.SetTiming(a.config.Notifications.ToastDuration(), a.config.Notifications.ExitDelay())
	a.applyThemeFromConfig()
	if a.config.UI.MinimizeToTray {
		a.EnableMinimizeToTray()
	} else {
		a.DisableMinimizeToTray()
	}

	if err := utils.SaveConfig(a.configPath, a.config); err != nil {
		a.logger.Error("Failed to save settings: %v", err)
		sv.setStatus("Settings applied but could not be saved: "+err.Error(), widget.DangerImportance)
		return
	}

	a.logger.Info("Settings saved (API %s, theme %s, font %d)", a.config.API.BaseURL, a.config.UI.Theme, a.config.UI.FontSize)
	sv.setStatus("Settings saved", widget.SuccessImportance)
}

func (sv *SettingsView) setStatus(msg string, importance widget.Importance) {
	sv.status.Importance = importance
	sv.status.SetText(msg)
	sv.status.Show()
}

// showSettings opens the settings window, or focuses it when already open
func (a *App) showSettings() {
	if a.settingsWindow != nil {
		a.settingsWindow.RequestFocus()
		return
	}

	win := a.fyneApp.NewWindow("Settings")
	win.SetContent(NewSettingsView(a).Build())
	win.Resize(fyne.NewSize(520, 560))
	win.SetOnClosed(func() {
		a.settingsWindow = nil
	})
	a.settingsWindow = win
	win.Show()
}
