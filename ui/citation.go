package ui

import (
	"apex-client/api"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CitationPanel shows the source behind a selected citation
type CitationPanel struct {
	widget.BaseWidget
	title      *widget.Label
	confidence *widget.Label
	bar        *widget.ProgressBar
	excerpt    *widget.Label
	document   *widget.Label
	onClose    func()
}

// NewCitationPanel creates a hidden citation panel
func NewCitationPanel(onClose func()) *CitationPanel {
	p := &CitationPanel{
		title:      widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		confidence: widget.NewLabel(""),
		bar:        widget.NewProgressBar(),
		excerpt:    widget.NewLabel(""),
		document:   widget.NewLabel(""),
		onClose:    onClose,
	}
	p.title.Wrapping = fyne.TextWrapWord
	p.excerpt.Wrapping = fyne.TextWrapWord
	p.excerpt.Selectable = true
	p.document.Importance = widget.LowImportance
	p.document.Truncation = fyne.TextTruncateEllipsis
	p.bar.TextFormatter = func() string { return "" }
	p.ExtendBaseWidget(p)
	p.Hide()
	return p
}

// CreateRenderer builds the panel layout
func (p *CitationPanel) CreateRenderer() fyne.WidgetRenderer {
	closeButton := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		if p.onClose != nil {
			p.onClose()
		}
	})
	closeButton.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil, closeButton,
		widget.NewLabelWithStyle("Citation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	body := container.NewVBox(
		p.title,
		p.document,
		container.NewBorder(nil, nil, widget.NewLabel("Confidence"), p.confidence, p.bar),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Relevant excerpt", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		p.excerpt,
	)

	return widget.NewSimpleRenderer(container.NewBorder(header, nil, nil, nil, container.NewVScroll(body)))
}

// MinSize keeps the panel readable
func (p *CitationPanel) MinSize() fyne.Size {
	min := p.BaseWidget.MinSize()
	if min.Width < 300 {
		min.Width = 300
	}
	return min
}

// SetCitation fills the panel from a citation
func (p *CitationPanel) SetCitation(c api.Citation) {
	p.title.SetText(utils.SanitizeText(c.DocumentTitle))
	p.document.SetText(c.DocumentUUID)
	p.confidence.SetText(confidenceText(c.ConfidenceScore))
	p.bar.SetValue(c.ConfidenceScore)
	p.excerpt.SetText(utils.SanitizeText(c.RelevantExcerpt))
}
