package notify

import (
	"strings"
	"testing"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

func TestWhatsAppURL(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		useWeb bool
		want   string
	}{
		{
			name:  "ten digit gets country prefix",
			phone: "9876543210",
			want:  "https://wa.me/919876543210?text=hello+there",
		},
		{
			name:  "formatted number is cleaned first",
			phone: "+91 98765-43210",
			want:  "https://wa.me/919876543210?text=hello+there",
		},
		{
			name:  "long number keeps last ten digits",
			phone: "0019876543210",
			want:  "https://wa.me/919876543210?text=hello+there",
		},
		{
			name:   "web client target",
			phone:  "9876543210",
			useWeb: true,
			want:   "https://web.whatsapp.com/send?phone=919876543210&text=hello+there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WhatsAppURL(tt.phone, "hello there", tt.useWeb)
			if got != tt.want {
				t.Errorf("WhatsAppURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhatsAppURL_EscapesMessage(t *testing.T) {
	got := WhatsAppURL("9876543210", "*GTS CHITS*\nAmount: ₹5,000", false)
	if strings.ContainsAny(got, "\n ") {
		t.Errorf("WhatsAppURL() left unescaped characters: %q", got)
	}
}

func TestUPILink(t *testing.T) {
	got := UPILink("gts@upi", "GTS CHITS", core.Money{Rupees: 5000})

	if !strings.HasPrefix(got, "upi://pay?") {
		t.Fatalf("UPILink() = %q", got)
	}
	for _, param := range []string{"pa=gts%40upi", "pn=GTS+CHITS", "am=5000", "cu=INR"} {
		if !strings.Contains(got, param) {
			t.Errorf("UPILink() missing %q in %q", param, got)
		}
	}
}
