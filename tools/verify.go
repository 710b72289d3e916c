package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Domains that hand out throwaway inboxes. Mail to these never reaches a
// real prospect, so they fail verification outright.
var disposableDomains = map[string]bool{
	"tempmail.com":      true,
	"throwaway.email":   true,
	"10minutemail.com":  true,
	"guerrillamail.com": true,
	"mailinator.com":    true,
}

type emailVerification struct {
	Email  string `json:"email"`
	Valid  bool   `json:"valid"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// verifyEmail is purely local: syntax plus a disposable-domain denylist.
// A passing address is reported as unverified-but-valid, never as
// deliverable, since no mailbox probe is performed.
func (c *catalog) verifyEmail(ctx context.Context, args map[string]interface{}) (string, error) {
	email := strings.TrimSpace(strArg(args, "email"))
	if email == "" {
		return "", fmt.Errorf("verify_email requires an email argument")
	}
	if !emailPattern.MatchString(email) {
		return marshal(emailVerification{
			Email:  email,
			Valid:  false,
			Status: "invalid",
			Reason: "malformed address",
		})
	}
	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	if disposableDomains[domain] {
		return marshal(emailVerification{
			Email:  email,
			Valid:  false,
			Status: "invalid",
			Reason: "disposable domain",
		})
	}
	return marshal(emailVerification{
		Email:  email,
		Valid:  true,
		Status: "unverified",
		Reason: "syntax ok, deliverability not checked",
	})
}
