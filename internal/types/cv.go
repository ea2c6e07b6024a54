// Package types provides the typed résumé model produced by a successful
// validation run.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	_ "embed"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/design"
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/locale"
	"github.com/jonathan/cvcheck/internal/schemas"
)

//go:embed cv.schema.json
var cvSchemaJSON string

var cvSchema = schemas.MustCompile("cv", cvSchemaJSON)

// CvSchema checks the structure of the cv block. Sections are checked
// entry by entry elsewhere.
func CvSchema() *schemas.Schema {
	return cvSchema
}

// Model is a validated résumé document
type Model struct {
	Cv       Cv            `json:"cv"`
	Design   design.Design `json:"design"`
	Locale   locale.Locale `json:"locale"`
	Settings Settings      `json:"settings"`
	// Extra keeps top-level keys other than cv, design, locale, and settings
	Extra entries.Extra `json:"-"`

	// ReferenceDate resolves `present` and ends ongoing time spans
	ReferenceDate time.Time      `json:"reference_date"`
	SpanMode      dates.SpanMode `json:"-"`
}

// Cv is the header of the résumé plus its sections
type Cv struct {
	Name           string             `yaml:"name,omitempty" json:"name,omitempty"`
	Headline       string             `yaml:"headline,omitempty" json:"headline,omitempty"`
	Location       string             `yaml:"location,omitempty" json:"location,omitempty"`
	Email          string             `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Photo          string             `yaml:"photo,omitempty" json:"photo,omitempty"`
	Phone          string             `yaml:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,phone"`
	Website        string             `yaml:"website,omitempty" json:"website,omitempty" validate:"omitempty,http_url"`
	SocialNetworks []SocialNetwork    `yaml:"social_networks,omitempty" json:"social_networks,omitempty" validate:"dive"`
	Sections       []*entries.Section `yaml:"-" json:"sections,omitempty"`
}

// Section returns the section stored under key.
func (c *Cv) Section(key string) (*entries.Section, bool) {
	for _, s := range c.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return nil, false
}

// PhoneURL returns the tel: link for the phone number, "" when unset.
func (c *Cv) PhoneURL() string {
	if c.Phone == "" {
		return ""
	}
	return "tel:" + NormalizePhone(c.Phone)
}

// Validate checks the field rules of the header. Errors are located under at.
func (c *Cv) Validate(at schemas.Path) ([]schemas.FieldError, error) {
	return schemas.FromStructErrors(modelValidator.Struct(c), at, tagMessages)
}

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormalizePhone strips the separators people write inside phone numbers.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// IsPhoneNumber reports whether phone is an international number: a "+",
// the country code, and the subscriber number.
func IsPhoneNumber(phone string) bool {
	return checker.Var(NormalizePhone(phone), "required,e164") == nil
}

var (
	checker        = validator.New()
	modelValidator = newModelValidator()
)

func newModelValidator() *validator.Validate {
	v := schemas.NewStructValidator()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhoneNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("network", func(fl validator.FieldLevel) bool {
		return IsNetwork(fl.Field().String())
	})
	v.RegisterStructValidation(validateSocialNetwork, SocialNetwork{})
	return v
}

var tagMessages = map[string]string{
	"phone":   "value is not a valid phone number",
	"network": "Input should be one of: " + strings.Join(networkOrder, ", "),

	"mastodon_username":      `Mastodon username should be in the format "@username@domain".`,
	"stackoverflow_username": `StackOverflow username should be in the format "user_id/username".`,
	"youtube_username":       `YouTube username should not start with "@". Remove "@" from the beginning of the username.`,
	"orcid_username":         "ORCID username should be in the format 'XXXX-XXXX-XXXX-XXXX'.",
	"imdb_username":          "IMDB name should be in the format 'nmXXXXXXX'.",
	"whatsapp_username":      "WhatsApp username should be your phone number with country code in international format (e.g., +1 for USA, +44 for UK).",
	"profile_url":            "The profile URL built from this username is not a valid URL.",
}
