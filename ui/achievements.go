package ui

import (
	"fmt"
	"image/color"
	"strings"

	"apex-client/api"
	"apex-client/gamification"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// iconResource maps achievement icon tags onto theme icons
func iconResource(icon string) fyne.Resource {
	switch gamification.IconName(icon) {
	case "search":
		return theme.SearchIcon()
	case "trending":
		return theme.MoveUpIcon()
	case "message":
		return theme.MailComposeIcon()
	case "users":
		return theme.AccountIcon()
	case "flame":
		return theme.WarningIcon()
	case "trophy":
		return theme.MediaRecordIcon()
	case "star":
		return theme.RadioButtonCheckedIcon()
	case "target":
		return theme.ZoomFitIcon()
	case "zap":
		return theme.MediaFastForwardIcon()
	default:
		return theme.ConfirmIcon()
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// AchievementBadge draws one achievement in a tier frame
type AchievementBadge struct {
	widget.BaseWidget
	achievement api.Achievement
	size        gamification.BadgeSize
	onTapped    func()
}

// NewAchievementBadge creates a badge of the given size
func NewAchievementBadge(a api.Achievement, size gamification.BadgeSize, onTapped func()) *AchievementBadge {
	b := &AchievementBadge{achievement: a, size: size, onTapped: onTapped}
	b.ExtendBaseWidget(b)
	return b
}

// Tapped calls the tap handler
func (b *AchievementBadge) Tapped(_ *fyne.PointEvent) {
	if b.onTapped != nil {
		b.onTapped()
	}
}

// CreateRenderer lays out the badge
func (b *AchievementBadge) CreateRenderer() fyne.WidgetRenderer {
	a := b.achievement
	style := gamification.StyleFor(a.Tier)
	metrics := gamification.MetricsFor(b.size)

	frame := canvas.NewRectangle(style.Background)
	frame.StrokeColor = style.Border
	frame.StrokeWidth = 2
	frame.CornerRadius = 12
	frame.SetMinSize(fyne.NewSize(metrics.Container, metrics.Container))

	icon := canvas.NewImageFromResource(iconResource(a.Icon))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(metrics.Icon, metrics.Icon))

	tier := canvas.NewText(strings.ToUpper(string(a.Tier)), style.Text)
	tier.TextSize = metrics.TextSize
	tier.TextStyle = fyne.TextStyle{Bold: true}
	tier.Alignment = fyne.TextAlignCenter

	inner := container.NewVBox(container.NewCenter(icon), tier)
	layers := []fyne.CanvasObject{frame, container.NewCenter(inner)}

	if !a.Unlocked {
		frame.FillColor = dim(style.Background)
		icon.Translucency = 0.6
		tier.Color = dim(style.Text)
		lock := canvas.NewText("LOCKED", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x66})
		lock.TextSize = metrics.TextSize
		lock.Alignment = fyne.TextAlignCenter
		layers = append(layers, container.NewVBox(lock))
	}

	parts := []fyne.CanvasObject{container.NewStack(layers...)}

	if progress, ok := gamification.ProgressOf(a); ok {
		if a.Unlocked {
			bar := widget.NewProgressBar()
			bar.SetValue(float64(progress) / 100)
			parts = append(parts, bar)
		} else {
			label := widget.NewLabel(fmt.Sprintf("%d%% complete", progress))
			label.Alignment = fyne.TextAlignCenter
			label.Importance = widget.LowImportance
			parts = append(parts, label)
		}
	}

	if b.size == gamification.BadgeLarge {
		title := widget.NewLabelWithStyle(utils.SanitizeText(a.Title), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		desc := widget.NewLabel(utils.SanitizeText(a.Description))
		desc.Wrapping = fyne.TextWrapWord
		desc.Alignment = fyne.TextAlignCenter
		parts = append(parts, title, desc)
		if a.Unlocked && a.UnlockedAt != nil {
			when := widget.NewLabel("Unlocked " + a.UnlockedAt.Local().Format("Jan 2, 2006"))
			when.Alignment = fyne.TextAlignCenter
			when.Importance = widget.LowImportance
			parts = append(parts, when)
		}
	} else {
		title := widget.NewLabel(utils.SanitizeText(a.Title))
		title.Alignment = fyne.TextAlignCenter
		title.Truncation = fyne.TextTruncateEllipsis
		parts = append(parts, title)
	}

	return widget.NewSimpleRenderer(container.NewVBox(parts...))
}

func dim(c color.NRGBA) color.NRGBA {
	c.A = uint8(float64(c.A) * 0.4)
	return c
}

// AchievementsView is the gamification screen
type AchievementsView struct {
	app   *App
	panel *gamification.Panel

	summary *widget.Label
	percent *widget.Label
	bar     *widget.ProgressBar
	filter  *widget.RadioGroup
	groups  *fyne.Container
	streak  *StreakCounter
	loading *widget.ProgressBarInfinite
}

// NewAchievementsView creates the view and subscribes it to the panel
func NewAchievementsView(app *App) *AchievementsView {
	v := &AchievementsView{app: app, panel: app.panel}
	v.panel.OnChange = func(s gamification.PanelState) {
		fyne.Do(func() { v.Render(s) })
	}
	return v
}

// Build builds the achievements UI
func (v *AchievementsView) Build() fyne.CanvasObject {
	v.summary = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.percent = widget.NewLabel("")
	v.bar = widget.NewProgressBar()
	v.bar.TextFormatter = func() string { return "" }

	options := make([]string, len(gamification.Filters))
	for i, f := range gamification.Filters {
		options[i] = titleCase(string(f))
	}
	v.filter = widget.NewRadioGroup(options, func(selected string) {
		f := gamification.Filter(strings.ToLower(selected))
		v.panel.SetFilter(f)
		if err := v.app.db.SetSetting(settingFilter, string(f)); err != nil {
			v.app.logger.Warn("Failed to save achievements filter: %v", err)
		}
	})
	v.filter.Horizontal = true
	v.filter.Required = true

	refresh := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), v.app.refreshAchievements)
	refresh.Importance = widget.LowImportance

	v.loading = widget.NewProgressBarInfinite()
	v.loading.Hide()

	v.streak = NewStreakCounter()
	v.streak.Hide()

	header := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabelWithStyle("Achievements", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), refresh),
		container.NewBorder(nil, nil, v.summary, v.percent, v.bar),
		v.filter,
		v.loading,
	)

	v.groups = container.NewVBox()
	body := container.NewVScroll(v.groups)

	v.Render(v.panel.Snapshot())
	return container.NewBorder(header, nil, nil, v.streak, body)
}

// Render applies a panel snapshot to the widgets
func (v *AchievementsView) Render(s gamification.PanelState) {
	if v.groups == nil {
		return
	}

	stats := s.Stats()
	v.summary.SetText(fmt.Sprintf("%d of %d unlocked", stats.Unlocked, stats.Total))
	v.percent.SetText(fmt.Sprintf("%d%%", stats.Completion))
	v.bar.SetValue(float64(stats.Completion) / 100)

	if selected := titleCase(string(s.Filter)); v.filter.Selected != selected {
		v.filter.SetSelected(selected)
	}

	if s.Loading {
		v.loading.Show()
		v.loading.Start()
	} else {
		v.loading.Stop()
		v.loading.Hide()
	}

	if s.Streak != nil {
		v.streak.SetStreak(*s.Streak)
		v.streak.Show()
	} else {
		v.streak.Hide()
	}

	v.groups.RemoveAll()
	groups := s.Groups()
	if len(groups) == 0 && !s.Loading {
		empty := widget.NewLabel("No achievements to show")
		empty.Importance = widget.LowImportance
		v.groups.Add(empty)
	}
	for _, g := range groups {
		style := gamification.StyleFor(g.Tier)
		heading := canvas.NewText(titleCase(string(g.Tier))+" Achievements", style.Text)
		heading.TextStyle = fyne.TextStyle{Bold: true}
		heading.TextSize = theme.TextSubHeadingSize()

		metrics := gamification.MetricsFor(gamification.BadgeMedium)
		grid := container.NewGridWrap(fyne.NewSize(metrics.Container+16, metrics.Container+72))
		for _, a := range g.Achievements {
			a := a
			grid.Add(NewAchievementBadge(a, gamification.BadgeMedium, func() {
				v.showDetail(a)
			}))
		}
		v.groups.Add(container.NewVBox(heading, grid))
	}
	v.groups.Refresh()
}

// showDetail opens a large badge with a claim action for completed ones
func (v *AchievementsView) showDetail(a api.Achievement) {
	var popup *widget.PopUp

	closeButton := widget.NewButton("Close", func() { popup.Hide() })
	buttons := container.NewHBox(closeButton)

	if progress, ok := gamification.ProgressOf(a); ok && !a.Unlocked && progress >= 100 {
		claim := widget.NewButtonWithIcon("Claim", theme.ConfirmIcon(), nil)
		claim.Importance = widget.HighImportance
		claim.OnTapped = func() {
			claim.Disable()
			utils.SafeGo(v.app.logger, "claimAchievement", func() {
				ctx, cancel := v.app.requestContext()
				defer cancel()
				err := v.panel.Claim(ctx, a.UUID)
				fyne.Do(func() {
					popup.Hide()
					if err != nil {
						v.app.showError("Could not claim this achievement. Please try again later.")
					}
				})
			})
		}
		buttons.Add(claim)
	}

	badge := NewAchievementBadge(a, gamification.BadgeLarge, nil)
	popup = widget.NewModalPopUp(container.NewVBox(badge, container.NewCenter(buttons)), v.app.window.Canvas())
	popup.Resize(fyne.NewSize(320, 0))
	popup.Show()
}
