package ui

import (
	"fmt"
	"image/color"
	"time"

	"apex-client/api"
	"apex-client/gamification"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	streakActive   = color.NRGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}
	streakInactive = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
)

// StreakCounter shows the consecutive-day activity streak
type StreakCounter struct {
	widget.BaseWidget
	count      *canvas.Text
	caption    *widget.Label
	longest    *widget.Label
	flame      *canvas.Text
	motivation *widget.Label
}

// NewStreakCounter creates an empty streak counter
func NewStreakCounter() *StreakCounter {
	s := &StreakCounter{
		count:      canvas.NewText("0", streakActive),
		caption:    widget.NewLabel(""),
		longest:    widget.NewLabel(""),
		flame:      canvas.NewText("●", streakActive),
		motivation: widget.NewLabel(gamification.MotivationText),
	}
	s.count.TextSize = 48
	s.count.TextStyle = fyne.TextStyle{Bold: true}
	s.count.Alignment = fyne.TextAlignCenter
	s.caption.Alignment = fyne.TextAlignCenter
	s.motivation.Wrapping = fyne.TextWrapWord
	s.motivation.Hide()
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer lays out the counter
func (s *StreakCounter) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Activity Streak", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.flame)

	body := container.NewVBox(
		header,
		s.count,
		s.caption,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Longest streak:"), s.longest),
		s.motivation,
	)
	return widget.NewSimpleRenderer(container.NewPadded(body))
}

// MinSize keeps the card narrow but readable
func (s *StreakCounter) MinSize() fyne.Size {
	min := s.BaseWidget.MinSize()
	if min.Width < 220 {
		min.Width = 220
	}
	return min
}

// SetStreak updates the counter for the current time
func (s *StreakCounter) SetStreak(streak api.Streak) {
	view := gamification.NewStreakView(streak, time.Now())

	s.count.Text = fmt.Sprintf("%d", view.Current)
	s.caption.SetText(view.CurrentLabel())
	s.longest.SetText(view.LongestLabel())

	if view.Active {
		s.flame.Color = streakActive
		s.motivation.Hide()
	} else {
		s.flame.Color = streakInactive
		s.motivation.Show()
	}
	s.count.Refresh()
	s.flame.Refresh()
}
