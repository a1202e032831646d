package model

import "time"

// Author represents a registered author. Authors without a password hash
// can be selected by anyone.
type Author struct {
	Name         string    `json:"name" xml:"name,attr"`
	PasswordHash []byte    `json:"-" xml:"-"`
	Created      time.Time `json:"created" xml:"created,attr"`
}

// AuthorInfo contains basic information about an author.
type AuthorInfo struct {
	Name      string
	Protected bool
	Created   time.Time
}
