package design

import "github.com/jonathan/cvcheck/internal/dates"

// Theme holds the options of a built-in theme
type Theme struct {
	Theme         string        `yaml:"theme" json:"theme"`
	Page          Page          `yaml:"page" json:"page"`
	Colors        Colors        `yaml:"colors" json:"colors"`
	Typography    Typography    `yaml:"typography" json:"typography"`
	Links         Links         `yaml:"links" json:"links"`
	SectionTitles SectionTitles `yaml:"section_titles" json:"section_titles"`
	Templates     Templates     `yaml:"templates" json:"templates"`
}

type Page struct {
	Size                string `yaml:"size" json:"size"`
	TopMargin           string `yaml:"top_margin" json:"top_margin"`
	BottomMargin        string `yaml:"bottom_margin" json:"bottom_margin"`
	LeftMargin          string `yaml:"left_margin" json:"left_margin"`
	RightMargin         string `yaml:"right_margin" json:"right_margin"`
	ShowFooter          bool   `yaml:"show_footer" json:"show_footer"`
	ShowLastUpdatedDate bool   `yaml:"show_last_updated_date" json:"show_last_updated_date"`
}

type Colors struct {
	Text          string `yaml:"text" json:"text"`
	Name          string `yaml:"name" json:"name"`
	SectionTitles string `yaml:"section_titles" json:"section_titles"`
	Links         string `yaml:"links" json:"links"`
}

type Typography struct {
	FontFamily  string `yaml:"font_family" json:"font_family"`
	FontSize    string `yaml:"font_size" json:"font_size"`
	LineSpacing string `yaml:"line_spacing" json:"line_spacing"`
	Alignment   string `yaml:"alignment" json:"alignment"`
}

type Links struct {
	Underline            bool `yaml:"underline" json:"underline"`
	ShowExternalLinkIcon bool `yaml:"show_external_link_icon" json:"show_external_link_icon"`
}

type SectionTitles struct {
	Type       string `yaml:"type" json:"type"`
	SpaceAbove string `yaml:"space_above" json:"space_above"`
	SpaceBelow string `yaml:"space_below" json:"space_below"`
}

// Templates control how dates are written; see dates.Templates
type Templates struct {
	SingleDate string `yaml:"single_date" json:"single_date"`
	DateRange  string `yaml:"date_range" json:"date_range"`
	TimeSpan   string `yaml:"time_span" json:"time_span"`
}

// Classic is the base theme every built-in theme starts from.
func Classic() Theme {
	return Theme{
		Theme: "classic",
		Page: Page{
			Size:                "us-letter",
			TopMargin:           "0.7in",
			BottomMargin:        "0.7in",
			LeftMargin:          "0.7in",
			RightMargin:         "0.7in",
			ShowFooter:          true,
			ShowLastUpdatedDate: true,
		},
		Colors: Colors{
			Text:          "rgb(0, 0, 0)",
			Name:          "rgb(0, 79, 144)",
			SectionTitles: "rgb(0, 79, 144)",
			Links:         "rgb(0, 79, 144)",
		},
		Typography: Typography{
			FontFamily:  "Source Sans 3",
			FontSize:    "10pt",
			LineSpacing: "0.6em",
			Alignment:   "justified",
		},
		Links: Links{ShowExternalLinkIcon: false},
		SectionTitles: SectionTitles{
			Type:       "with_partial_line",
			SpaceAbove: "0.5cm",
			SpaceBelow: "0.3cm",
		},
		Templates: Templates{
			SingleDate: dates.DefaultTemplates.SingleDate,
			DateRange:  dates.DefaultTemplates.DateRange,
			TimeSpan:   dates.DefaultTemplates.TimeSpan,
		},
	}
}

// DateTemplates converts the theme's templates for date formatting.
func (t Theme) DateTemplates() dates.Templates {
	return dates.Templates{
		SingleDate: t.Templates.SingleDate,
		DateRange:  t.Templates.DateRange,
		TimeSpan:   t.Templates.TimeSpan,
	}
}
