package models

var coreServices = [...]string{
	"Stock Market Advisory",
	"Mutual Fund Planning",
	"Wealth Management",
	"Tax Planning (India + basic international)",
	"Retirement Planning",
	"NRI Investment Services",
	"Financial Education (courses, webinars, workshops)",
	"Cryptocurrency Awareness & Guidance (for beginners)",
	"Real Estate Planning",
	"Insurance Advisory (Life, Health, General)",
}

// CoreServices returns the catalog of services offered for selection.
// Records may also carry freely entered service names.
func CoreServices() []string {
	out := make([]string, len(coreServices))
	copy(out, coreServices[:])
	return out
}

// Contact lists the static contact channels shown next to payments.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ContactChannels are informational only.
var ContactChannels = Contact{
	Email: "divya.december1197@gmail.com",
	Phone: "+91 8103170084",
}
