package models

import "time"

// Supported roles.
const (
	RoleCustomer     = "customer"
	RoleManufacturer = "manufacturer"
)

// ValidRole reports whether role is one of the supported roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleManufacturer
}

// Profile carries the role specific signup fields. Customers fill the vehicle fields,
// manufacturers the company fields; the other group stays empty.
type Profile struct {
	Name             string `json:"name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	CarModel         string `json:"carModel,omitempty"`
	ChargerModel     string `json:"chargerModel,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	BusinessEmail    string `json:"businessEmail,omitempty"`
	LicenseNumber    string `json:"licenseNumber,omitempty"`
	ManufacturerType string `json:"manufacturerType,omitempty"`
}

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
}
