package ui

import (
	_ "image/png"

	"fyne.io/fyne/v2"
	"fyne.io/systray"
)

var (
	globalApp *App // Global reference for systray callbacks
)

// SetupSystemTray sets up the system tray icon and menu
func (a *App) SetupSystemTray() {
	globalApp = a

	go systray.Run(onReady, onExit)

	a.logger.Info("System tray initialized")
}

// onReady is called when systray is ready
func onReady() {
	systray.SetIcon(getIconData())
	systray.SetTitle("Apex")
	systray.SetTooltip("Apex knowledge assistant")

	mShow := systray.AddMenuItem("Show Window", "Show main window")
	mNew := systray.AddMenuItem("New Conversation", "Start a new conversation")
	mAchievements := systray.AddMenuItem("Achievements", "Open achievements")
	mSettings := systray.AddMenuItem("Settings", "Open settings")
	mSignOut := systray.AddMenuItem("Sign Out", "Forget the saved session")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mShow.ClickedCh:
				onMain(func(a *App) {
					a.window.Show()
					a.logger.Info("Window shown from system tray")
				})
			case <-mNew.ClickedCh:
				onMain(func(a *App) {
					a.window.Show()
					a.Navigate(RouteConversation)
					a.hub.StartNew()
					a.logger.Info("New conversation from system tray")
				})
			case <-mAchievements.ClickedCh:
				onMain(func(a *App) {
					a.window.Show()
					a.Navigate(RouteAchievements)
				})
			case <-mSettings.ClickedCh:
				onMain(func(a *App) {
					a.showSettings()
					a.logger.Info("Settings opened from system tray")
				})
			case <-mSignOut.ClickedCh:
				onMain(func(a *App) {
					a.window.Show()
					a.SignOut()
				})
			case <-mQuit.ClickedCh:
				onMain(func(a *App) {
					a.logger.Info("Quit from system tray")
					a.fyneApp.Quit()
				})
				systray.Quit()
				return
			}
		}
	}()
}

// onMain runs fn against the app on the UI goroutine
func onMain(fn func(a *App)) {
	if globalApp == nil {
		return
	}
	a := globalApp
	fyne.Do(func() { fn(a) })
}

// onExit is called when systray exits
func onExit() {
	if globalApp != nil {
		globalApp.logger.Info("System tray exited")
	}
}

// EnableMinimizeToTray hides the window on close instead of quitting
func (a *App) EnableMinimizeToTray() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Window close intercepted - minimizing to tray")
		a.window.Hide()
	})
}

// DisableMinimizeToTray restores the normal close behaviour
func (a *App) DisableMinimizeToTray() {
	a.window.SetCloseIntercept(nil)
}

// getIconData returns a 16x16 PNG for the tray
func getIconData() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0xF3, 0xFF, 0x61, 0x00, 0x00, 0x00,
		0x3B, 0x49, 0x44, 0x41, 0x54, 0x38, 0x8D, 0x63, 0x64, 0xC0, 0x0F, 0xF0,
		0x0F, 0x62, 0x62, 0x60, 0x60, 0xF8, 0xCF, 0xC0, 0xC0, 0xC0, 0xF0, 0x9F,
		0x81, 0x81, 0x81, 0xE1, 0x3F, 0x03, 0x03, 0x03, 0xC3, 0x7F, 0x06, 0x06,
		0x06, 0x86, 0xFF, 0x0C, 0x0C, 0x0C, 0x0C, 0xFF, 0x19, 0x18, 0x18, 0x18,
		0xFE, 0x33, 0x30, 0x30, 0x30, 0xFC, 0x67, 0x60, 0x60, 0x60, 0x00, 0x00,
		0x1F, 0x84, 0x01, 0x0C, 0x7A, 0x7A, 0x7A, 0x7A, 0x00, 0x00, 0x00, 0x00,
		0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
	}
}
