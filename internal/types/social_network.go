package types

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Mastodon profiles live on the user's own server, so there is no fixed prefix
const Mastodon = "Mastodon"

// networkOrder is the order networks are listed in messages
var networkOrder = []string{
	"LinkedIn", "GitHub", "GitLab", "IMDB", "Instagram", "ORCID", Mastodon, "StackOverflow",
	"ResearchGate", "YouTube", "Google Scholar", "Telegram", "WhatsApp", "Leetcode", "X",
}

var profilePrefixes = map[string]string{
	"LinkedIn":       "https://linkedin.com/in/",
	"GitHub":         "https://github.com/",
	"GitLab":         "https://gitlab.com/",
	"IMDB":           "https://imdb.com/name/",
	"Instagram":      "https://instagram.com/",
	"ORCID":          "https://orcid.org/",
	"StackOverflow":  "https://stackoverflow.com/users/",
	"ResearchGate":   "https://researchgate.net/profile/",
	"YouTube":        "https://youtube.com/@",
	"Google Scholar": "https://scholar.google.com/citations?user=",
	"Telegram":       "https://t.me/",
	"WhatsApp":       "https://wa.me/",
	"Leetcode":       "https://leetcode.com/u/",
	"X":              "https://x.com/",
}

var (
	mastodonUsername      = regexp.MustCompile(`^@[^@]+@[^@]+$`)
	stackOverflowUsername = regexp.MustCompile(`^\d+/[^/]+$`)
	orcidUsername         = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	imdbUsername          = regexp.MustCompile(`^nm\d{7}$`)
)

// usernameRules are the username checks that depend on the network
var usernameRules = map[string]struct {
	tag   string
	valid func(string) bool
}{
	Mastodon:        {tag: "mastodon_username", valid: mastodonUsername.MatchString},
	"StackOverflow": {tag: "stackoverflow_username", valid: stackOverflowUsername.MatchString},
	"YouTube":       {tag: "youtube_username", valid: func(u string) bool { return !strings.HasPrefix(u, "@") }},
	"ORCID":         {tag: "orcid_username", valid: orcidUsername.MatchString},
	"IMDB":          {tag: "imdb_username", valid: imdbUsername.MatchString},
	"WhatsApp":      {tag: "whatsapp_username", valid: IsPhoneNumber},
}

// SocialNetwork is an account on one of the supported networks
type SocialNetwork struct {
	Network  string `yaml:"network" json:"network" validate:"required,network"`
	Username string `yaml:"username" json:"username" validate:"required"`
}

// IsNetwork reports whether name is a supported network.
func IsNetwork(name string) bool {
	return slices.Contains(networkOrder, name)
}

// Networks lists the supported networks.
func Networks() []string {
	return append([]string(nil), networkOrder...)
}

// URL returns the profile address. Mastodon usernames carry their server:
// @jane@mastodon.social is https://mastodon.social/@jane.
func (s SocialNetwork) URL() string {
	if s.Network == Mastodon {
		parts := strings.SplitN(strings.TrimPrefix(s.Username, "@"), "@", 2)
		if len(parts) != 2 {
			return ""
		}
		return "https://" + parts[1] + "/@" + parts[0]
	}
	prefix, ok := profilePrefixes[s.Network]
	if !ok {
		return ""
	}
	return prefix + s.Username
}

// validateSocialNetwork applies the per-network username rules. An unknown
// network is already reported by the network tag.
func validateSocialNetwork(sl validator.StructLevel) {
	sn := sl.Current().Interface().(SocialNetwork)
	if sn.Username == "" {
		return
	}
	if rule, ok := usernameRules[sn.Network]; ok && !rule.valid(sn.Username) {
		sl.ReportError(sn.Username, "username", "Username", rule.tag, "")
		return
	}
	if url := sn.URL(); url != "" && checker.Var(url, "http_url") != nil {
		sl.ReportError(sn.Username, "username", "Username", "profile_url", "")
	}
}
