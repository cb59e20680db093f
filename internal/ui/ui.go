package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/app"
)

// UI drives the screen flow: auth, dashboard, upload and chat. One screen is
// active at a time; every screen forwards actions to the app core.
type UI struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// New constructs the terminal UI.
func New(core *app.App, in io.Reader, out io.Writer) *UI {
	return &UI{app: core, in: bufio.NewScanner(in), out: out}
}

// Run loops between the auth screen and the dashboard until the user quits.
func (u *UI) Run() error {
	for {
		var quit bool
		if u.app.IsAuthenticated() {
			quit = u.dashboardScreen()
		} else {
			quit = u.authScreen()
		}
		if quit || u.eof {
			return nil
		}
	}
}

func (u *UI) authScreen() (quit bool) {
	u.printf("\n== Document Chat Assistant ==\n")
	u.printf("[1] login  [2] sign up  [3] login with OTP  [4] reset password  [q] quit\n")
	switch u.prompt("> ") {
	case "1":
		email := u.prompt("email: ")
		password := u.prompt("password: ")
		sess, err := u.app.Login(email, password)
		if err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		u.printf("Login successful (%s)\n", sess.Email)
	case "2":
		email := u.prompt("email: ")
		password := u.prompt("password: ")
		if _, err := u.app.Signup(email, password); err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		// Signup does not log in; the backend wants a separate login.
		u.printf("Signup successful, please log in\n")
	case "3":
		email := u.prompt("email: ")
		msg, err := u.app.RequestOTP(email)
		if err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		u.printf("%s\n", msg)
		otp := u.prompt("OTP: ")
		if _, err := u.app.VerifyOTP(email, otp); err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		u.printf("Login successful\n")
	case "4":
		email := u.prompt("email: ")
		msg, err := u.app.RequestOTP(email)
		if err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		u.printf("%s\n", msg)
		otp := u.prompt("OTP: ")
		newPassword := u.prompt("new password: ")
		result, err := u.app.ResetPassword(email, otp, newPassword)
		if err != nil {
			u.printf("%s\n", app.FailureMessage(err))
			return false
		}
		u.printf("%s\n", result)
	case "q":
		return true
	}
	return false
}

func (u *UI) prompt(label string) string {
	fmt.Fprint(u.out, label)
	if !u.in.Scan() {
		u.eof = true
		return ""
	}
	return strings.TrimSpace(u.in.Text())
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}
