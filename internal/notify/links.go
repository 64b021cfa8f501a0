package notify

import (
	"fmt"
	"net/url"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

// WhatsAppURL builds the deep link that carries a rendered message. Ten-digit
// numbers get the 91 country prefix with no plus sign; useWeb targets the
// desktop client instead of the wa.me handler.
func WhatsAppURL(phone, message string, useWeb bool) string {
	cleaned := core.CleanPhone(phone)
	final := cleaned
	if len(cleaned) == 10 {
		final = "91" + cleaned
	}
	if useWeb {
		return fmt.Sprintf("https://web.whatsapp.com/send?phone=%s&text=%s", final, url.QueryEscape(message))
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", final, url.QueryEscape(message))
}

// UPILink builds the upi://pay intent for a collection amount in whole
// rupees.
func UPILink(vpa, payeeName string, amount core.Money) string {
	v := url.Values{}
	v.Set("pa", vpa)
	v.Set("pn", payeeName)
	v.Set("am", fmt.Sprintf("%d", amount.Rupees))
	v.Set("cu", "INR")
	return "upi://pay?" + v.Encode()
}
