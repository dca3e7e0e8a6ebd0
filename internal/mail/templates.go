package mail

import (
	"fmt"
	"net/url"
	"strings"
)

// PasswordResetMessage builds the email carrying a password reset link.
func PasswordResetMessage(frontendURL, to, token string) Message {
	link := actionLink(frontendURL, "/reset-password", token)
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf("A password reset was requested for your account.\n\n"+
			"Follow this link to choose a new password:\n%s\n\n"+
			"If you did not request a reset you can ignore this email.", link),
	}
}

// InviteMessage builds the email inviting a new user to set a password.
func InviteMessage(frontendURL, to, firstName, token string) Message {
	link := actionLink(frontendURL, "/accept-invite", token)
	greeting := "Hello"
	if name := strings.TrimSpace(firstName); name != "" {
		greeting = "Hello " + name
	}
	return Message{
		To:      to,
		Subject: "You have been invited",
		Body: fmt.Sprintf("%s,\n\nAn account has been created for you.\n\n"+
			"Follow this link to set your password:\n%s", greeting, link),
	}
}

func actionLink(base, path, token string) string {
	return strings.TrimRight(base, "/") + path + "?token=" + url.QueryEscape(token)
}
