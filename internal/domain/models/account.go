package models

import "time"

// AccountType tags the three login-capable entities.
type AccountType string

const (
	AccountTypeAdmin  AccountType = "Admin"
	AccountTypeUser   AccountType = "User"
	AccountTypeDriver AccountType = "Driver"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAdmin, AccountTypeUser, AccountTypeDriver:
		return true
	}
	return false
}

// AccountStatus is the moderation lifecycle for users and drivers.
// Admins carry no status and are always authorized.
type AccountStatus string

const (
	StatusPending   AccountStatus = "Pending"
	StatusConfirmed AccountStatus = "Confirmed"
	StatusBlocked   AccountStatus = "Blocked"
)

// CarTypes enumerates the vehicle classes a driver can register.
var CarTypes = []string{"Sedan", "SUV 5 Door", "Minivan", "Four Seater", "Pickup", "SUV 3 Door"}

// Account is the uniform surface over Admin, User and Driver. Records loaded
// for authentication keep their password hash so change-password flows can
// verify the old secret; the hash never leaves the server.
type Account interface {
	AccountID() int64
	Kind() AccountType
	// AccountStatus returns StatusConfirmed for account kinds that have no
	// status column of their own.
	AccountStatus() AccountStatus
	PasswordHash() string
	DisplayName() string
}

type Admin struct {
	ID       int64
	Username string
	Password string
}

func (a Admin) AccountID() int64             { return a.ID }
func (a Admin) Kind() AccountType            { return AccountTypeAdmin }
func (a Admin) AccountStatus() AccountStatus { return StatusConfirmed }
func (a Admin) PasswordHash() string         { return a.Password }
func (a Admin) DisplayName() string          { return a.Username }

type User struct {
	ID           int64
	Name         string
	Email        string
	Password     string
	PhoneNumber  string
	Status       AccountStatus
	ProfileImage string
	AreaID       int64
	AreaName     string
}

func (u User) AccountID() int64             { return u.ID }
func (u User) Kind() AccountType            { return AccountTypeUser }
func (u User) AccountStatus() AccountStatus { return u.Status }
func (u User) PasswordHash() string         { return u.Password }
func (u User) DisplayName() string          { return u.Name }

type Driver struct {
	ID                    int64
	Name                  string
	Email                 string
	Password              string
	PhoneNumber           string
	DLNumber              string
	ProfileImage          string
	CarCapacity           int
	CarType               string
	CarModel              string
	CarColor              string
	CarImage              string
	CarRegistrationNumber string
	InsuranceValidUpto    time.Time
	Status                AccountStatus
}

func (d Driver) AccountID() int64             { return d.ID }
func (d Driver) Kind() AccountType            { return AccountTypeDriver }
func (d Driver) AccountStatus() AccountStatus { return d.Status }
func (d Driver) PasswordHash() string         { return d.Password }
func (d Driver) DisplayName() string          { return d.Name }
