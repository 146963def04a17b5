package ui

import (
	"image/color"

	"apex-client/auth"
	"apex-client/utils"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// LoginView is the sign-in form
type LoginView struct {
	app        *App
	controller *auth.Controller

	email         *widget.Entry
	password      *widget.Entry
	reveal        *widget.Button
	remember      *widget.Check
	submit        *widget.Button
	emailError    *widget.Label
	passwordError *widget.Label
	generalError  *widget.Label
	content       fyne.CanvasObject
	signingInAs   string
}

// NewLoginView creates the form and subscribes it to the login controller
func NewLoginView(app *App) *LoginView {
	v := &LoginView{app: app, controller: app.login}
	v.controller.OnChange = func(s auth.State) {
		fyne.Do(func() { v.Render(s) })
	}
	v.controller.Navigate = func(route string) {
		fyne.Do(func() {
			v.app.enterMain(v.signingInAs)
			v.app.Navigate(route)
		})
	}
	return v
}

// Build builds the login form once and returns it
func (v *LoginView) Build() fyne.CanvasObject {
	if v.content != nil {
		return v.content
	}

	v.email = widget.NewEntry()
	v.email.SetPlaceHolder("you@example.com")

	v.password = widget.NewEntry()
	v.password.Password = true
	v.password.SetPlaceHolder("Password")
	v.password.OnSubmitted = func(string) { v.submitForm() }
	v.email.OnSubmitted = func(string) { v.app.window.Canvas().Focus(v.password) }

	v.reveal = widget.NewButtonWithIcon("", theme.VisibilityIcon(), v.togglePassword)
	v.reveal.Importance = widget.LowImportance

	v.remember = widget.NewCheck("Remember me", nil)

	v.emailError = newFieldError()
	v.passwordError = newFieldError()
	v.generalError = newFieldError()

	v.submit = widget.NewButton("Sign in", v.submitForm)
	v.submit.Importance = widget.HighImportance

	heading := widget.NewLabelWithStyle("Sign in to Apex", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	sub := widget.NewLabelWithStyle("Your knowledge base, one question away", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	form := container.NewVBox(
		heading,
		sub,
		v.generalError,
		widget.NewLabel("Email"),
		v.email,
		v.emailError,
		widget.NewLabel("Password"),
		container.NewBorder(nil, nil, nil, v.reveal, v.password),
		v.passwordError,
		v.remember,
		v.submit,
	)

	strut := canvas.NewRectangle(color.Transparent)
	strut.SetMinSize(fyne.NewSize(380, 0))
	v.content = container.NewCenter(container.NewStack(strut, form))
	return v.content
}

func newFieldError() *widget.Label {
	l := widget.NewLabel("")
	l.Importance = widget.DangerImportance
	l.Wrapping = fyne.TextWrapWord
	l.Hide()
	return l
}

func setFieldError(l *widget.Label, msg string) {
	l.SetText(msg)
	if msg == "" {
		l.Hide()
	} else {
		l.Show()
	}
}

// Render applies the controller state to the form
func (v *LoginView) Render(s auth.State) {
	if v.submit == nil {
		return
	}
	setFieldError(v.emailError, s.Errors.Email)
	setFieldError(v.passwordError, s.Errors.Password)
	setFieldError(v.generalError, s.Errors.General)

	if s.Loading {
		v.submit.SetText("Signing in...")
		v.submit.Disable()
		v.email.Disable()
		v.password.Disable()
	} else {
		v.submit.SetText("Sign in")
		v.submit.Enable()
		v.email.Enable()
		v.password.Enable()
	}
}

// Reset clears the password and any errors
func (v *LoginView) Reset() {
	if v.password == nil {
		return
	}
	v.password.SetText("")
	v.Render(auth.State{})
}

// Focus puts the cursor in the email field
func (v *LoginView) Focus() {
	if v.email != nil {
		v.app.window.Canvas().Focus(v.email)
	}
}

func (v *LoginView) togglePassword() {
	v.password.Password = !v.password.Password
	if v.password.Password {
		v.reveal.SetIcon(theme.VisibilityIcon())
	} else {
		v.reveal.SetIcon(theme.VisibilityOffIcon())
	}
	v.password.Refresh()
}

func (v *LoginView) submitForm() {
	form := auth.Form{
		Email:    v.email.Text,
		Password: v.password.Text,
		Remember: v.remember.Checked,
	}
	v.signingInAs = form.Email
	utils.SafeGo(v.app.logger, "login", func() {
		ctx, cancel := v.app.requestContext()
		defer cancel()
		v.controller.Submit(ctx, form)
	})
}
