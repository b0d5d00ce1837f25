package whatsapp

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/pkg/errors"
)

// ErrMissingField is returned when a contact form field is blank.
var ErrMissingField = errors.New("all fields are required")

const deepLinkBase = "https://wa.me/"

// LinkBuilder composes click-to-chat links. Nothing is sent from the
// server; the browser opens the link and the visitor sends the message.
type LinkBuilder struct {
	ContactPhone string // receives contact form messages
	InquiryPhone string // receives product purchase inquiries
}

// ContactLink builds the deep link for a contact form submission.
func (b LinkBuilder) ContactLink(name, email, message string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		return "", ErrMissingField
	}
	text := fmt.Sprintf("Message from %s (%s):\n\n%s", name, email, message)
	return DeepLink(b.ContactPhone, text), nil
}

// InquiryLink builds the purchase inquiry link for a product.
func (b LinkBuilder) InquiryLink(p domain.Product) string {
	return DeepLink(b.InquiryPhone, InquiryText(p))
}

// InquiryText renders the inquiry message. Specifications are listed in
// key order so the text is stable.
func InquiryText(p domain.Product) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Product Inquiry*\n\n")
	fmt.Fprintf(&sb, "*Product:* %s\n", p.Title)
	if p.Category != "" {
		fmt.Fprintf(&sb, "*Category:* %s\n", p.Category)
	}
	if p.Subtitle != "" {
		fmt.Fprintf(&sb, "*Subtitle:* %s\n", p.Subtitle)
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "*Description:* %s\n", p.Description)
	}
	if len(p.Features) > 0 {
		sb.WriteString("*Features:*\n")
		for i, f := range p.Features {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("• " + f)
		}
		sb.WriteString("\n")
	}
	if len(p.Specifications) > 0 {
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("*Specifications:*\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "• %s: %s\n", k, p.Specifications[k])
		}
	}
	sb.WriteString("\nI'm interested in purchasing this product. Please provide more information about pricing and availability.")
	return sb.String()
}

// DeepLink returns https://wa.me/<digits>?text=<encoded text>.
func DeepLink(phone, text string) string {
	return deepLinkBase + Digits(phone) + "?text=" + EncodeURIComponent(text)
}

// Digits strips everything but ASCII digits from a phone number.
func Digits(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

var uriComponentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s leaving A-Z a-z 0-9 - _ . ! ~ * ' ( )
// intact, the way browsers encode URI components.
func EncodeURIComponent(s string) string {
	return uriComponentUnescape.Replace(url.QueryEscape(s))
}
