package users

import "time"

// Roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Location is a saved pickup address. Insertion order is display order and
// labels are not required to be unique.
type Location struct {
	Label   string `dynamodbav:"label" json:"label"`
	Address string `dynamodbav:"address" json:"address"`
}

// User is the document stored in the users table. Attribute names match the
// existing collection. Walk-in records are minimal profiles created by an
// admin for addressless counter customers; they carry no credentials and
// cannot log in.
type User struct {
	UID          string     `dynamodbav:"uid" json:"uid"` // PK
	Name         string     `dynamodbav:"name" json:"name"`
	Mobile       string     `dynamodbav:"mobile" json:"mobile"`
	Email        string     `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Role         string     `dynamodbav:"role" json:"role"`
	Verified     bool       `dynamodbav:"verified" json:"verified"`
	IsWalkIn     bool       `dynamodbav:"isWalkIn,omitempty" json:"isWalkIn,omitempty"`
	Locations    []Location `dynamodbav:"locations,omitempty" json:"locations,omitempty"`
	PasswordHash string     `dynamodbav:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time  `dynamodbav:"createdAt" json:"createdAt"`
}
