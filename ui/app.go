package ui

import (
	"context"
	"sync"
	"time"

	"apex-client/api"
	"apex-client/auth"
	"apex-client/conversation"
	"apex-client/db"
	"apex-client/gamification"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	RouteDashboard    = "/dashboard"
	RouteConversation = "/conversation"
	RouteAchievements = "/achievements"
	RouteLogin        = "/login"
)

const (
	settingShowSidebar   = "show_sidebar"
	settingShowCitations = "show_citations"
	settingFilter        = "achievements_filter"
)

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	configMu   sync.RWMutex // guards config fields read off the UI goroutine
	db         *db.DB
	client     *api.Client
	logger     *utils.Logger

	ctx    context.Context
	cancel context.CancelFunc

	hub    *conversation.Hub
	panel  *gamification.Panel
	login  *auth.Controller
	toasts *gamification.ToastQueue

	// UI components
	conversationView *ConversationView
	achievementsView *AchievementsView
	loginView        *LoginView
	tabs             *container.AppTabs
	conversationTab  *container.TabItem
	achievementsTab  *container.TabItem
	userLabel        *widget.Label
	toastPopup       *widget.PopUp
	settingsWindow   fyne.Window

	signedIn bool
}

// NewApp creates a new application instance
func NewApp(config *utils.Config, configPath string, database *db.DB, client *api.Client, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("apex-client")
	window := fyneApp.NewWindow("Apex")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		db:         database,
		client:     client,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		a.config.UI.WindowWidth = int(size.Width)
		a.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(a.configPath, a.config); err != nil {
			a.logger.Error("Failed to save window size: %v", err)
		} else {
			a.logger.Info("Window size saved: %dx%d", a.config.UI.WindowWidth, a.config.UI.WindowHeight)
		}
	})

	a.applyThemeFromConfig()
	a.initState()
	a.buildUI()

	a.SetupSystemTray()
	if a.config.UI.MinimizeToTray {
		a.EnableMinimizeToTray()
		a.logger.Info("Minimize to tray enabled")
	}

	a.restoreSession()
	return a
}

// initState wires the state holders to the API client and local store
func (a *App) initState() {
	a.hub = conversation.NewHub(a.client, a.logger, conversation.Options{
		Save: func(id, format string, payload []byte) (string, error) {
			a.configMu.RLock()
			exportDir := a.config.Data.ExportDir
			a.configMu.RUnlock()
			return utils.SaveExport(exportDir, id, format, payload)
		},
		ShowSidebar:   a.db.GetBool(settingShowSidebar, a.config.UI.ShowSidebar),
		ShowCitations: a.db.GetBool(settingShowCitations, a.config.UI.ShowCitations),
	})

	a.panel = gamification.NewPanel(a.client, gamification.NewTracker(a.db), a.logger)
	if f, err := a.db.GetSetting(settingFilter, string(gamification.FilterAll)); err == nil {
		a.panel.SetFilter(gamification.Filter(f))
	}

	a.login = auth.NewController(a.client, a.db, a.logger, a.config.Auth.RedirectTo)

	a.toasts = gamification.NewToastQueue(a.config.Notifications.ToastDuration(), a.config.Notifications.ExitDelay())
	a.toasts.OnShow = func(t *gamification.Toast) {
		fyne.Do(func() { a.showToast(t) })
	}
	a.toasts.OnHide = func(t *gamification.Toast) {
		fyne.Do(a.hideToast)
	}
	a.panel.OnUnlock = func(list []api.Achievement) {
		a.toasts.Push(list...)
	}
}

// buildUI builds the main UI
func (a *App) buildUI() {
	a.conversationView = NewConversationView(a)
	a.achievementsView = NewAchievementsView(a)
	a.loginView = NewLoginView(a)

	a.conversationTab = container.NewTabItemWithIcon("Conversation", theme.MailComposeIcon(), a.conversationView.Build())
	a.achievementsTab = container.NewTabItemWithIcon("Achievements", theme.ConfirmIcon(), a.achievementsView.Build())
	a.tabs = container.NewAppTabs(a.conversationTab, a.achievementsTab)
	a.tabs.OnSelected = func(item *container.TabItem) {
		if item == a.achievementsTab {
			a.refreshAchievements()
		}
	}

	a.setupKeyboardShortcuts()
}

// mainContent is the signed-in layout
func (a *App) mainContent() fyne.CanvasObject {
	a.userLabel = widget.NewLabel("")
	signOut := widget.NewButtonWithIcon("Sign out", theme.LogoutIcon(), a.SignOut)
	signOut.Importance = widget.LowImportance

	settings := widget.NewButtonWithIcon("", theme.SettingsIcon(), a.showSettings)
	settings.Importance = widget.LowImportance

	topBar := container.NewHBox(layout.NewSpacer(), a.userLabel, settings, signOut)
	return container.NewBorder(topBar, nil, nil, nil, a.tabs)
}

// setupKeyboardShortcuts sets up global keyboard shortcuts
func (a *App) setupKeyboardShortcuts() {
	send := func(shortcut fyne.Shortcut) {
		if a.signedIn {
			a.conversationView.sendMessage()
		}
	}
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyReturn,
		Modifier: fyne.KeyModifierControl,
	}, send)
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyEnter,
		Modifier: fyne.KeyModifierControl,
	}, send)

	// Ctrl+N: New conversation
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyN,
		Modifier: fyne.KeyModifierControl,
	}, func(shortcut fyne.Shortcut) {
		if a.signedIn {
			a.logger.Debug("Keyboard shortcut: Ctrl+N - New conversation")
			a.Navigate(RouteConversation)
			a.hub.StartNew()
		}
	})

	// Ctrl+Comma: Settings
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyComma,
		Modifier: fyne.KeyModifierControl,
	}, func(shortcut fyne.Shortcut) {
		a.logger.Debug("Keyboard shortcut: Ctrl+, - Settings")
		a.showSettings()
	})
}

// restoreSession skips the login form when a remembered session is valid
func (a *App) restoreSession() {
	email, ok, err := auth.Restore(a.db, a.client, time.Now())
	if err != nil {
		a.logger.Error("Failed to restore session: %v", err)
	}
	if !ok {
		a.showLogin()
		return
	}
	a.logger.Info("Restored session for %s", email)
	a.enterMain(email)
	a.Navigate(a.login.RedirectTo())
}

// enterMain switches the window to the signed-in layout
func (a *App) enterMain(email string) {
	a.signedIn = true
	a.window.SetContent(a.mainContent())
	a.userLabel.SetText(email)

	a.conversationView.Render(a.hub.Snapshot())
	utils.SafeGo(a.logger, "loadHistory", func() {
		a.hub.LoadHistory(a.ctx)
	})
	a.refreshAchievements()
}

func (a *App) showLogin() {
	a.signedIn = false
	a.loginView.Reset()
	a.window.SetContent(a.loginView.Build())
	a.loginView.Focus()
}

// Navigate switches to the view behind a route
func (a *App) Navigate(route string) {
	switch route {
	case RouteLogin:
		a.SignOut()
		return
	case RouteAchievements:
		if a.signedIn {
			a.tabs.Select(a.achievementsTab)
		}
	case RouteDashboard, RouteConversation:
		if a.signedIn {
			a.tabs.Select(a.conversationTab)
		}
	default:
		a.logger.Warn("Unknown route %q, showing conversation", route)
		if a.signedIn {
			a.tabs.Select(a.conversationTab)
		}
	}
}

// SignOut clears the session and returns to the login form
func (a *App) SignOut() {
	if err := auth.SignOut(a.db, a.client); err != nil {
		a.logger.Error("Failed to clear session: %v", err)
	}
	a.toasts.Stop()
	a.hideToast()
	a.hub.StartNew()
	a.logger.Info("Signed out")
	a.showLogin()
}

func (a *App) refreshAchievements() {
	utils.SafeGo(a.logger, "loadAchievements", func() {
		a.panel.Load(a.ctx)
	})
}

// Run shows the window and blocks until the app quits
func (a *App) Run() {
	a.window.ShowAndRun()
}

// showError shows an error popup
func (a *App) showError(message string) {
	var popup *widget.PopUp
	popup = widget.NewModalPopUp(
		container.NewVBox(
			widget.NewLabelWithStyle("Error", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(message),
			widget.NewButton("OK", func() {
				popup.Hide()
			}),
		),
		a.window.Canvas(),
	)
	popup.Show()
}

// showInfo shows an information popup
func (a *App) showInfo(message string) {
	var popup *widget.PopUp
	popup = widget.NewModalPopUp(
		container.NewVBox(
			widget.NewLabelWithStyle("Info", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(message),
			widget.NewButton("OK", func() {
				popup.Hide()
			}),
		),
		a.window.Canvas(),
	)
	popup.Show()
}

func (a *App) applyThemeFromConfig() {
	isDark := a.config.UI.Theme != "light"
	fontSize := a.config.UI.FontSize
	if fontSize < 10 {
		fontSize = 14
	}

	a.fyneApp.Settings().SetTheme(newCustomTheme(fontSize, isDark))
	a.logger.Info("Applied %s theme with font size %d", a.config.UI.Theme, fontSize)
}

// requestContext bounds a single backend call by the configured timeout
func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, a.config.API.Timeout())
}

// Cleanup releases resources
func (a *App) Cleanup() {
	a.cancel()
	a.toasts.Stop()

	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		a.logger.Close()
	}
}
