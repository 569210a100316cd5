package partner

import (
	"net/mail"
	"strings"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// Contact is the contact block embedded in vendors and customers
type Contact struct {
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:varchar(500)"`
	City        string `gorm:"type:varchar(100)"`
	Country     string `gorm:"type:varchar(100)"`
}

// NewContact trims every field and validates the email if present
func NewContact(contactName, phone, email, address, city, country string) (Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return Contact{}, shared.NewDomainError("INVALID_EMAIL", "Email address is invalid")
		}
	}
	return Contact{
		ContactName: strings.TrimSpace(contactName),
		Phone:       strings.TrimSpace(phone),
		Email:       email,
		Address:     strings.TrimSpace(address),
		City:        strings.TrimSpace(city),
		Country:     strings.TrimSpace(country),
	}, nil
}
