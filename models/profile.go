package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// FlexibleBool decodes the historical representations of the verified flag:
// boolean true, integer 1 and string "1" all mean verified. Internally it is
// always a plain bool; the tolerance exists only at the JSON edge.
type FlexibleBool bool

// UnmarshalJSON implements json.Unmarshaler
func (b *FlexibleBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1", `"1"`:
		*b = true
		return nil
	case "false", "0", `"0"`, "null", `""`:
		*b = false
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid boolean value: %s", data)
	}
	*b = FlexibleBool(v)
	return nil
}

// Bool returns the plain boolean value
func (b FlexibleBool) Bool() bool {
	return bool(b)
}

// Profile holds the self-service details attached 1:1 to a user by email.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	MobileNumber   *int64    `json:"mobileNumber"`
	MobileVerified bool      `gorm:"not null;default:false" json:"mobileVerified"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// NormalizeMobile converts a raw mobile string into the stored form: a
// 10-digit number, or nil when the input is not exactly 10 digits.
func NormalizeMobile(raw string) *int64 {
	if !mobilePattern.MatchString(raw) {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
