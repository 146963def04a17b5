package ui

import (
	"time"

	"apex-client/api"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ConversationItem represents a clickable conversation in the history list
type ConversationItem struct {
	widget.BaseWidget
	view         *ConversationView
	conversation api.Conversation
	label        *widget.Label
	date         *widget.Label
	highlighted  bool
}

// NewConversationItem creates a new conversation item
func NewConversationItem(view *ConversationView, conv api.Conversation) *ConversationItem {
	item := &ConversationItem{
		view:         view,
		conversation: conv,
	}
	title := conv.Title
	if title == "" {
		title = "Untitled"
	}
	item.label = widget.NewLabel(utils.SanitizeText(title))
	item.label.Truncation = fyne.TextTruncateEllipsis
	item.date = widget.NewLabel(formatConversationDate(conv.LastMessageAt, time.Now()))
	item.date.Importance = widget.LowImportance
	item.ExtendBaseWidget(item)
	return item
}

// CreateRenderer creates the renderer for the conversation item
func (ci *ConversationItem) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, ci.date, ci.label))
}

// Tapped opens the conversation
func (ci *ConversationItem) Tapped(_ *fyne.PointEvent) {
	ci.view.openConversation(ci.conversation.UUID)
}

// TappedSecondary shows the context menu
func (ci *ConversationItem) TappedSecondary(pe *fyne.PointEvent) {
	id := ci.conversation.UUID
	openItem := fyne.NewMenuItem("Open", func() {
		ci.view.openConversation(id)
	})
	copyItem := fyne.NewMenuItem("Copy ID", func() {
		ci.view.app.window.Clipboard().SetContent(id)
	})

	menu := fyne.NewMenu("", openItem, copyItem)
	widget.NewPopUpMenu(menu, ci.view.app.window.Canvas()).ShowAtPosition(pe.AbsolutePosition)
}

// SetHighlighted marks the item as the current conversation
func (ci *ConversationItem) SetHighlighted(highlighted bool) {
	if ci.highlighted == highlighted {
		return
	}
	ci.highlighted = highlighted
	if highlighted {
		ci.label.TextStyle = fyne.TextStyle{Bold: true}
	} else {
		ci.label.TextStyle = fyne.TextStyle{}
	}
	ci.label.Refresh()
}

// ConversationSidebar lists past conversations
type ConversationSidebar struct {
	widget.BaseWidget
	view  *ConversationView
	items []*ConversationItem
	list  *fyne.Container
	empty *widget.Label
	ids   []string
}

// NewConversationSidebar creates a new conversation sidebar
func NewConversationSidebar(view *ConversationView) *ConversationSidebar {
	sidebar := &ConversationSidebar{
		view:  view,
		list:  container.NewVBox(),
		empty: widget.NewLabel("No conversations yet"),
	}
	sidebar.empty.Importance = widget.LowImportance
	sidebar.list.Add(sidebar.empty)
	sidebar.ExtendBaseWidget(sidebar)
	return sidebar
}

// CreateRenderer creates the renderer for the sidebar
func (cs *ConversationSidebar) CreateRenderer() fyne.WidgetRenderer {
	newButton := widget.NewButtonWithIcon("New Conversation", theme.ContentAddIcon(), cs.view.startNew)
	newButton.Importance = widget.HighImportance

	heading := widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	scroll := container.NewVScroll(cs.list)

	content := container.NewBorder(
		container.NewVBox(newButton, heading),
		nil, nil, nil,
		scroll,
	)
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps the sidebar at a usable width
func (cs *ConversationSidebar) MinSize() fyne.Size {
	min := cs.BaseWidget.MinSize()
	if min.Width < 240 {
		min.Width = 240
	}
	return min
}

// Update rebuilds the list when conversations change and moves the highlight
func (cs *ConversationSidebar) Update(conversations []api.Conversation, currentID string) {
	if !cs.sameIDs(conversations) {
		cs.list.RemoveAll()
		cs.items = cs.items[:0]
		cs.ids = cs.ids[:0]
		for _, conv := range conversations {
			item := NewConversationItem(cs.view, conv)
			cs.items = append(cs.items, item)
			cs.ids = append(cs.ids, conv.UUID)
			cs.list.Add(item)
		}
		if len(conversations) == 0 {
			cs.list.Add(cs.empty)
		}
	}

	for _, item := range cs.items {
		item.SetHighlighted(item.conversation.UUID == currentID)
	}
}

func (cs *ConversationSidebar) sameIDs(conversations []api.Conversation) bool {
	if len(conversations) != len(cs.ids) {
		return false
	}
	for i, c := range conversations {
		if cs.ids[i] != c.UUID {
			return false
		}
	}
	return true
}

// formatConversationDate shows a time for today and a date otherwise
func formatConversationDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	local := t.Local()
	y1, m1, d1 := local.Date()
	y2, m2, d2 := now.Local().Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return local.Format("15:04")
	}
	if y1 == y2 {
		return local.Format("Jan 2")
	}
	return local.Format("Jan 2, 2006")
}
