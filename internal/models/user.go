package models

import "time"

// User is the single administrative identity behind the portfolio.
type User struct {
	Base `bson:",inline"`

	FullName    string `bson:"fullName" json:"fullName" validate:"required" label:"Name"`
	Email       string `bson:"email" json:"email" validate:"required,email" label:"Email"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber" validate:"required" label:"Phone number"`
	AboutMe     string `bson:"aboutMe" json:"aboutMe" validate:"required" label:"About Me field"`
	Password    string `bson:"password" json:"-"` // argon2id hash, never serialized

	Avatar Asset `bson:"avatar" json:"avatar"`
	Resume Asset `bson:"resume" json:"resume"`

	PortfolioURL string `bson:"portfolioURL,omitempty" json:"portfolioURL,omitempty"`
	GithubURL    string `bson:"githubURL,omitempty" json:"githubURL,omitempty"`
	TwitterURL   string `bson:"twitterURL,omitempty" json:"twitterURL,omitempty"`
	LinkedInURL  string `bson:"linkedInURL,omitempty" json:"linkedInURL,omitempty"`

	ResetPasswordToken      string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpiration *time.Time `bson:"resetPasswordExpiration,omitempty" json:"-"`
}
