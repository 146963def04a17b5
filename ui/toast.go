package ui

import (
	"apex-client/gamification"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const toastWidth = 340

// showToast displays an unlock toast in the bottom-right corner
func (a *App) showToast(t *gamification.Toast) {
	a.hideToast()
	if !a.signedIn {
		t.Dismiss()
		return
	}

	ach := t.Achievement
	style := gamification.StyleFor(ach.Tier)

	icon := canvas.NewImageFromResource(iconResource(ach.Icon))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(40, 40))

	heading := canvas.NewText("Achievement Unlocked!", style.Text)
	heading.TextStyle = fyne.TextStyle{Bold: true}

	title := widget.NewLabelWithStyle(utils.SanitizeText(ach.Title), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	desc := widget.NewLabel(utils.SanitizeText(ach.Description))
	desc.Wrapping = fyne.TextWrapWord

	closeButton := widget.NewButtonWithIcon("", theme.CancelIcon(), t.Dismiss)
	closeButton.Importance = widget.LowImportance

	bg := canvas.NewRectangle(style.Background)
	bg.StrokeColor = style.Border
	bg.StrokeWidth = 2
	bg.CornerRadius = 10

	body := container.NewBorder(nil, nil, icon, closeButton, container.NewVBox(heading, title, desc))
	content := container.NewStack(bg, container.NewPadded(body))

	popup := widget.NewPopUp(content, a.window.Canvas())
	size := fyne.NewSize(toastWidth, content.MinSize().Height)
	popup.Resize(size)

	canvasSize := a.window.Canvas().Size()
	pad := theme.Padding() * 4
	popup.ShowAtPosition(fyne.NewPos(canvasSize.Width-size.Width-pad, canvasSize.Height-size.Height-pad))

	a.toastPopup = popup
	a.logger.Info("Achievement unlocked: %s", ach.Title)
}

func (a *App) hideToast() {
	if a.toastPopup != nil {
		a.toastPopup.Hide()
		a.toastPopup = nil
	}
}
