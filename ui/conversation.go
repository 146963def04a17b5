package ui

import (
	"fmt"
	"math"

	"apex-client/api"
	"apex-client/conversation"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// customEntry extends Entry so that Enter and Ctrl+Enter send.
// Shift+Enter inserts a newline.
type customEntry struct {
	widget.Entry
	onSend func()
}

func newCustomEntry(onSend func()) *customEntry {
	e := &customEntry{onSend: onSend}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

// TypedShortcut handles keyboard shortcuts
func (e *customEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if ks, ok := shortcut.(*desktop.CustomShortcut); ok {
		if (ks.KeyName == fyne.KeyReturn || ks.KeyName == fyne.KeyEnter) &&
			ks.Modifier == fyne.KeyModifierControl && e.onSend != nil {
			e.onSend()
			return
		}
	}
	e.Entry.TypedShortcut(shortcut)
}

// TypedKey sends on Enter unless Shift is held
func (e *customEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyReturn || key.Name == fyne.KeyEnter {
		shift := false
		if drv, ok := fyne.CurrentApp().Driver().(desktop.Driver); ok {
			shift = drv.CurrentKeyModifiers()&fyne.KeyModifierShift != 0
		}
		if !shift && e.onSend != nil {
			e.onSend()
			return
		}
	}
	e.Entry.TypedKey(key)
}

// ConversationView is the conversation hub screen
type ConversationView struct {
	app *App
	hub *conversation.Hub

	sidebar   *ConversationSidebar
	citations *CitationPanel

	title          *widget.Label
	messagesBox    *fyne.Container
	messagesScroll *container.Scroll
	welcome        fyne.CanvasObject
	typing         *fyne.Container
	activity       *widget.Activity
	input          *customEntry
	sendButton     *widget.Button
	exportMD       *widget.Button
	exportPDF      *widget.Button

	renderedIDs []string
}

// NewConversationView creates the view and subscribes it to the hub
func NewConversationView(app *App) *ConversationView {
	cv := &ConversationView{app: app, hub: app.hub}
	cv.hub.OnChange = func(s conversation.State) {
		fyne.Do(func() { cv.Render(s) })
	}
	cv.hub.OnFocusInput = func() {
		fyne.Do(cv.focusInput)
	}
	return cv
}

// Build builds the conversation UI
func (cv *ConversationView) Build() fyne.CanvasObject {
	cv.sidebar = NewConversationSidebar(cv)
	cv.citations = NewCitationPanel(cv.closeCitations)

	cv.title = widget.NewLabelWithStyle("New Conversation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	cv.title.Truncation = fyne.TextTruncateEllipsis

	toggleSidebar := widget.NewButtonWithIcon("", theme.MenuIcon(), cv.toggleSidebar)
	toggleSidebar.Importance = widget.LowImportance

	cv.exportMD = widget.NewButtonWithIcon("Markdown", theme.DocumentIcon(), func() {
		cv.export(api.FormatMarkdown)
	})
	cv.exportPDF = widget.NewButtonWithIcon("PDF", theme.DownloadIcon(), func() {
		cv.export(api.FormatPDF)
	})
	cv.exportMD.Importance = widget.LowImportance
	cv.exportPDF.Importance = widget.LowImportance

	header := container.NewBorder(nil, widget.NewSeparator(),
		toggleSidebar,
		container.NewHBox(cv.exportMD, cv.exportPDF),
		cv.title,
	)

	cv.messagesBox = container.NewVBox()
	cv.welcome = cv.buildWelcome()
	cv.messagesScroll = container.NewVScroll(container.NewStack(cv.welcome, cv.messagesBox))

	cv.activity = widget.NewActivity()
	cv.typing = container.NewHBox(cv.activity, widget.NewLabel("Thinking..."))
	cv.typing.Hide()

	cv.input = newCustomEntry(cv.sendMessage)
	cv.input.SetPlaceHolder("Ask about your knowledge base... (Enter to send, Shift+Enter for a new line)")
	cv.input.SetMinRowsVisible(2)
	cv.input.OnChanged = cv.hub.SetInput

	cv.sendButton = widget.NewButtonWithIcon("Send", theme.MailSendIcon(), cv.sendMessage)
	cv.sendButton.Importance = widget.HighImportance
	cv.sendButton.Disable()

	inputBar := container.NewBorder(nil, nil, nil, cv.sendButton, cv.input)
	bottom := container.NewVBox(cv.typing, inputBar)

	main := container.NewBorder(header, bottom, nil, nil, cv.messagesScroll)
	return container.NewBorder(nil, nil, cv.sidebar, cv.citations, main)
}

func (cv *ConversationView) buildWelcome() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("Welcome to AI Conversation", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	intro := widget.NewLabel("Ask questions about your knowledge base in natural language. " +
		"Answers are grounded in your documents, entities and relationships, with citations.")
	intro.Wrapping = fyne.TextWrapWord
	intro.Alignment = fyne.TextAlignCenter

	items := []fyne.CanvasObject{heading, intro}
	for _, prompt := range conversation.Suggestions {
		prompt := prompt
		btn := widget.NewButton(fmt.Sprintf("%q", prompt), func() {
			cv.hub.UseSuggestion(prompt)
			cv.focusInput()
		})
		btn.Alignment = widget.ButtonAlignLeading
		btn.Importance = widget.LowImportance
		items = append(items, btn)
	}

	return container.NewCenter(container.NewGridWrap(fyne.NewSize(460, 40), items...))
}

// Render applies a hub snapshot to the widgets
func (cv *ConversationView) Render(s conversation.State) {
	if cv.title == nil {
		return
	}

	cv.title.SetText(s.Title())
	cv.renderMessages(s.Messages)

	if s.Loading {
		cv.typing.Show()
		cv.activity.Start()
	} else {
		cv.activity.Stop()
		cv.typing.Hide()
	}

	// Stale snapshots must not overwrite text typed since they were queued
	if cv.input.Text != s.Input && cv.hub.Snapshot().Input == s.Input {
		cv.input.SetText(s.Input)
	}
	if s.CanSend() {
		cv.sendButton.Enable()
	} else {
		cv.sendButton.Disable()
	}
	if s.Current != nil {
		cv.exportMD.Enable()
		cv.exportPDF.Enable()
	} else {
		cv.exportMD.Disable()
		cv.exportPDF.Disable()
	}

	currentID := ""
	if s.Current != nil {
		currentID = s.Current.UUID
	}
	cv.sidebar.Update(s.Conversations, currentID)
	if s.ShowSidebar {
		cv.sidebar.Show()
	} else {
		cv.sidebar.Hide()
	}

	if s.ShowCitations && s.SelectedCitation != nil {
		cv.citations.SetCitation(*s.SelectedCitation)
		cv.citations.Show()
	} else {
		cv.citations.Hide()
	}
}

// renderMessages appends new messages, rebuilding only when history changed
func (cv *ConversationView) renderMessages(messages []api.Message) {
	if len(messages) == 0 {
		cv.welcome.Show()
	} else {
		cv.welcome.Hide()
	}

	prefix := len(cv.renderedIDs) <= len(messages)
	for i := 0; prefix && i < len(cv.renderedIDs); i++ {
		if cv.renderedIDs[i] != messages[i].UUID {
			prefix = false
		}
	}
	if !prefix {
		cv.messagesBox.RemoveAll()
		cv.renderedIDs = nil
	}

	for _, msg := range messages[len(cv.renderedIDs):] {
		cv.messagesBox.Add(cv.buildMessageUI(msg))
		cv.renderedIDs = append(cv.renderedIDs, msg.UUID)
	}
	cv.messagesScroll.ScrollToBottom()
}

func (cv *ConversationView) buildMessageUI(msg api.Message) fyne.CanvasObject {
	var roleLabel string
	switch msg.Role {
	case api.RoleUser:
		roleLabel = "You"
	case api.RoleAssistant:
		roleLabel = "Assistant"
	default:
		roleLabel = "System"
	}

	header := widget.NewLabelWithStyle(roleLabel, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	stamp := widget.NewLabel(msg.CreatedAt.Local().Format("15:04"))
	stamp.Importance = widget.LowImportance
	top := container.NewHBox(header, stamp)

	var body fyne.CanvasObject
	switch msg.Role {
	case api.RoleAssistant:
		rich := widget.NewRichTextFromMarkdown(utils.SanitizeText(msg.Content))
		rich.Wrapping = fyne.TextWrapWord
		body = rich
	case api.RoleSystem:
		label := widget.NewLabel(msg.Content)
		label.Wrapping = fyne.TextWrapWord
		label.Importance = widget.DangerImportance
		body = label
	default:
		label := widget.NewLabel(msg.Content)
		label.Wrapping = fyne.TextWrapWord
		label.Selectable = true
		body = label
	}

	parts := []fyne.CanvasObject{top, body}
	if len(msg.Citations) > 0 {
		parts = append(parts, cv.buildCitationRow(msg.Citations))
	}
	return container.NewPadded(container.NewVBox(parts...))
}

func (cv *ConversationView) buildCitationRow(citations []api.Citation) fyne.CanvasObject {
	row := container.NewHBox(widget.NewLabel("Sources:"))
	for _, c := range citations {
		c := c
		text := fmt.Sprintf("%s (%s)", utils.SanitizeText(c.DocumentTitle), confidenceText(c.ConfidenceScore))
		btn := widget.NewButtonWithIcon(text, theme.FileIcon(), func() {
			cv.hub.SelectCitation(c)
		})
		btn.Importance = widget.LowImportance
		row.Add(btn)
	}
	return container.NewHScroll(row)
}

func confidenceText(score float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(score*100)))
}

// sendMessage submits the input in the background
func (cv *ConversationView) sendMessage() {
	if !cv.hub.Snapshot().CanSend() {
		return
	}
	utils.SafeGo(cv.app.logger, "sendMessage", func() {
		ctx, cancel := cv.app.requestContext()
		defer cancel()
		cv.hub.Send(ctx)
	})
}

func (cv *ConversationView) openConversation(id string) {
	utils.SafeGo(cv.app.logger, "loadConversation", func() {
		ctx, cancel := cv.app.requestContext()
		defer cancel()
		cv.hub.LoadConversation(ctx, id)
	})
}

func (cv *ConversationView) export(format api.ExportFormat) {
	utils.SafeGo(cv.app.logger, "exportConversation", func() {
		ctx, cancel := cv.app.requestContext()
		defer cancel()
		path, err := cv.hub.Export(ctx, format)
		if err != nil || path == "" {
			return
		}
		fyne.Do(func() {
			cv.app.showInfo(fmt.Sprintf("Conversation exported to:\n%s", path))
		})
	})
}

func (cv *ConversationView) toggleSidebar() {
	cv.hub.ToggleSidebar()
	if err := cv.app.db.SetBool(settingShowSidebar, cv.hub.Snapshot().ShowSidebar); err != nil {
		cv.app.logger.Warn("Failed to save sidebar setting: %v", err)
	}
}

func (cv *ConversationView) closeCitations() {
	cv.hub.CloseCitations()
	if err := cv.app.db.SetBool(settingShowCitations, false); err != nil {
		cv.app.logger.Warn("Failed to save citation panel setting: %v", err)
	}
}

func (cv *ConversationView) startNew() {
	cv.hub.StartNew()
}

func (cv *ConversationView) focusInput() {
	if cv.input != nil {
		cv.app.window.Canvas().Focus(cv.input)
	}
}
