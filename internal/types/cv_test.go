//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlock(t *testing.T, key, src string) *document.Node {
	t.Helper()
	doc, err := document.Parse("cv.yaml", []byte(key+":\n"+src))
	require.NoError(t, err)
	return doc.Root.Get(key)
}

func TestCv_Validate(t *testing.T) {
	at := schemas.NewPath("cv")

	tests := []struct {
		name     string
		cv       Cv
		wantPath string
		wantMsg  string
	}{
		{
			name: "valid",
			cv: Cv{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Phone:   "+1 (555) 123-4567",
				Website: "https://example.com",
				SocialNetworks: []SocialNetwork{
					{Network: "GitHub", Username: "janedoe"},
					{Network: "Mastodon", Username: "@jane@mastodon.social"},
					{Network: "WhatsApp", Username: "+44 20 7946 0958"},
				},
			},
		},
		{
			name:     "invalid email",
			cv:       Cv{Email: "jane@"},
			wantPath: "cv.email",
			wantMsg:  "value is not a valid email address",
		},
		{
			name:     "phone without country code",
			cv:       Cv{Phone: "555-1234"},
			wantPath: "cv.phone",
			wantMsg:  "value is not a valid phone number",
		},
		{
			name:     "invalid website",
			cv:       Cv{Website: "example"},
			wantPath: "cv.website",
			wantMsg:  "Input should be a valid URL",
		},
		{
			name:     "unknown network",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "MySpace", Username: "jane"}}},
			wantPath: "cv.social_networks.0.network",
			wantMsg:  "Input should be one of: LinkedIn, GitHub",
		},
		{
			name:     "mastodon username",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "Mastodon", Username: "jane"}}},
			wantPath: "cv.social_networks.0.username",
			wantMsg:  "@username@domain",
		},
		{
			name: "youtube username",
			cv: Cv{SocialNetworks: []SocialNetwork{
				{Network: "GitHub", Username: "jane"},
				{Network: "YouTube", Username: "@jane"},
			}},
			wantPath: "cv.social_networks.1.username",
			wantMsg:  `YouTube username should not start with "@"`,
		},
		{
			name:     "orcid username",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "ORCID", Username: "0000-0002"}}},
			wantPath: "cv.social_networks.0.username",
			wantMsg:  "XXXX-XXXX-XXXX-XXXX",
		},
		{
			name:     "stackoverflow username",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "StackOverflow", Username: "jane"}}},
			wantPath: "cv.social_networks.0.username",
			wantMsg:  "user_id/username",
		},
		{
			name:     "imdb username",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "IMDB", Username: "jane"}}},
			wantPath: "cv.social_networks.0.username",
			wantMsg:  "nmXXXXXXX",
		},
		{
			name:     "whatsapp username",
			cv:       Cv{SocialNetworks: []SocialNetwork{{Network: "WhatsApp", Username: "jane"}}},
			wantPath: "cv.social_networks.0.username",
			wantMsg:  "international format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := tt.cv.Validate(at)
			require.NoError(t, err)
			if tt.wantPath == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantPath, errs[0].Path.String())
			assert.Contains(t, errs[0].Message, tt.wantMsg)
		})
	}
}

func TestSocialNetwork_URL(t *testing.T) {
	tests := []struct {
		network  SocialNetwork
		expected string
	}{
		{SocialNetwork{Network: "GitHub", Username: "jane"}, "https://github.com/jane"},
		{SocialNetwork{Network: "LinkedIn", Username: "jane-doe"}, "https://linkedin.com/in/jane-doe"},
		{SocialNetwork{Network: "YouTube", Username: "jane"}, "https://youtube.com/@jane"},
		{SocialNetwork{Network: "Mastodon", Username: "@jane@mastodon.social"}, "https://mastodon.social/@jane"},
		{SocialNetwork{Network: "Mastodon", Username: "jane"}, ""},
		{SocialNetwork{Network: "MySpace", Username: "jane"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.network.Network+"/"+tt.network.Username, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.network.URL())
		})
	}
}

func TestNetworks(t *testing.T) {
	networks := Networks()
	assert.Len(t, networks, 15)
	assert.Equal(t, "LinkedIn", networks[0])
	assert.True(t, IsNetwork("Google Scholar"))
	assert.False(t, IsNetwork("google scholar"))

	networks[0] = "changed"
	assert.Equal(t, "LinkedIn", Networks()[0])
}

func TestPhone(t *testing.T) {
	assert.True(t, IsPhoneNumber("+1 (555) 123-4567"))
	assert.True(t, IsPhoneNumber("+90.532.000.00.00"))
	assert.False(t, IsPhoneNumber("555-1234"))
	assert.False(t, IsPhoneNumber(""))

	cv := Cv{Phone: "+1 (555) 123-4567"}
	assert.Equal(t, "tel:+15551234567", cv.PhoneURL())
	assert.Equal(t, "", (&Cv{}).PhoneURL())
}

func TestCvSchema(t *testing.T) {
	at := schemas.NewPath("cv")

	errs, err := CvSchema().ValidateNode(parseBlock(t, "cv", "  name: 5\n  sections:\n    intro: [hello]\n"), at)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "cv.name", errs[0].Path.String())
	assert.Equal(t, schemas.CodeType, errs[0].Code)

	errs, err = CvSchema().ValidateNode(parseBlock(t, "cv", "  social_networks:\n    - network: GitHub\n"), at)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "cv.social_networks.0.username", errs[0].Path.String())
	assert.Equal(t, schemas.CodeMissing, errs[0].Code)

	errs, err = CvSchema().ValidateNode(parseBlock(t, "cv", "  nickname: JD\n"), at)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "cv.nickname", errs[0].Path.String())
	assert.Equal(t, schemas.CodeExtraForbidden, errs[0].Code)
}

func TestCv_Section(t *testing.T) {
	cv := Cv{}
	_, ok := cv.Section("education")
	assert.False(t, ok)
}

func TestResolveSettings(t *testing.T) {
	at := schemas.NewPath("settings")

	t.Run("absent block", func(t *testing.T) {
		s, errs, err := ResolveSettings(nil, at)
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, DefaultSettings(), s)
		_, ok := s.ReferenceDate()
		assert.False(t, ok)
	})

	t.Run("full block", func(t *testing.T) {
		s, errs, err := ResolveSettings(parseBlock(t, "settings", `  current_date: 2024-05-01
  bold_keywords: [Go, Python, Go, Rust, Python]
  render_command:
    pdf_path: out/cv.pdf
    dont_generate_png: true
`), at)
		require.NoError(t, err)
		assert.Empty(t, errs)

		ref, ok := s.ReferenceDate()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), ref)
		assert.Equal(t, []string{"Go", "Python", "Rust"}, s.BoldKeywords)
		assert.Equal(t, "out/cv.pdf", s.RenderCommand.PDFPath)
		assert.Equal(t, "rendercv_output/NAME_IN_SNAKE_CASE_CV.typ", s.RenderCommand.TypstPath)
		assert.True(t, s.RenderCommand.DontGeneratePNG)
	})

	t.Run("schema errors do not hide the date check", func(t *testing.T) {
		_, errs, err := ResolveSettings(parseBlock(t, "settings", "  theme: dark\n  current_date: 2024-05\n  bold_keywords: [Go]\n"), at)
		require.NoError(t, err)
		require.Len(t, errs, 2)
		assert.Equal(t, "settings.theme", errs[0].Path.String())
		assert.Equal(t, schemas.CodeDateFormat, errs[1].Code)
		assert.Equal(t, "settings.current_date", errs[1].Path.String())
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, errs, err := ResolveSettings(parseBlock(t, "settings", "  - a\n"), at)
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, schemas.CodeType, errs[0].Code)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name     string
			src      string
			wantCode schemas.Code
			wantPath string
		}{
			{name: "partial date", src: "  current_date: 2024-05\n", wantCode: schemas.CodeDateFormat, wantPath: "settings.current_date"},
			{name: "present", src: "  current_date: present\n", wantCode: schemas.CodeDateFormat, wantPath: "settings.current_date"},
			{name: "unknown key", src: "  theme: dark\n", wantCode: schemas.CodeExtraForbidden, wantPath: "settings.theme"},
			{name: "keyword type", src: "  bold_keywords: [1]\n", wantCode: schemas.CodeType, wantPath: "settings.bold_keywords.0"},
			{name: "render flag type", src: "  render_command:\n    dont_generate_pdf: maybe\n", wantCode: schemas.CodeType, wantPath: "settings.render_command.dont_generate_pdf"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, errs, err := ResolveSettings(parseBlock(t, "settings", tt.src), at)
				require.NoError(t, err)
				require.Len(t, errs, 1)
				assert.Equal(t, tt.wantCode, errs[0].Code)
				assert.Equal(t, tt.wantPath, errs[0].Path.String())
			})
		}
	})
}
