package utils

import (
	"html"
	"strings"

	"campaignmanager/models"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy strips all markup; used for single-line text fields
	StrictPolicy *bluemonday.Policy
	// UGCPolicy keeps basic formatting; used for body content
	UGCPolicy *bluemonday.Policy
)

func init() {
	StrictPolicy = bluemonday.StrictPolicy()

	UGCPolicy = bluemonday.UGCPolicy()
	UGCPolicy.AllowElements("p", "br", "div", "span", "h1", "h2", "h3", "h4", "h5", "h6")
	UGCPolicy.AllowElements("strong", "em", "u", "s", "ul", "ol", "li", "blockquote")
	UGCPolicy.AllowAttrs("style").OnElements("span", "div", "p")
	UGCPolicy.RequireParseableURLs(true)
	UGCPolicy.AllowURLSchemes("http", "https", "mailto")
}

// SanitizeHTML sanitizes rich content using the UGC policy
func SanitizeHTML(content string) string {
	return UGCPolicy.Sanitize(content)
}

// StripHTML removes all HTML tags from content. Entities produced by the
// strict policy are unescaped again since the field is plain text.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return html.UnescapeString(StrictPolicy.Sanitize(s))
}

// SanitizeURL drops URLs with a scheme other than http, https or mailto.
// Relative and empty URLs are kept.
func SanitizeURL(u string) string {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	if i := strings.Index(lower, ":"); i > 0 && !strings.ContainsAny(lower[:i], "/?#") {
		switch lower[:i] {
		case "http", "https", "mailto":
		default:
			return ""
		}
	}
	return u
}

// SanitizeCampaignData cleans the user-entered fields of a data bag in place
// and returns it. Colors, fonts and enum fields are left alone.
func SanitizeCampaignData(data models.CampaignData) models.CampaignData {
	switch d := data.(type) {
	case *models.BannerData:
		if d == nil {
			return data
		}
		d.Text = StripHTML(d.Text)
	case *models.EmailData:
		if d == nil {
			return data
		}
		d.Subject = StripHTML(d.Subject)
		d.Heading = StripHTML(d.Heading)
		d.Content = SanitizeHTML(d.Content)
		d.CTAText = StripHTML(d.CTAText)
		d.CTAURL = SanitizeURL(d.CTAURL)
		d.HeaderImage = SanitizeURL(d.HeaderImage)
	case *models.LandingData:
		if d == nil {
			return data
		}
		d.PageTitle = StripHTML(d.PageTitle)
		d.MainHeading = StripHTML(d.MainHeading)
		d.SubHeading = StripHTML(d.SubHeading)
		d.Content = SanitizeHTML(d.Content)
		d.HeroImage = SanitizeURL(d.HeroImage)
		d.CTAHeading = StripHTML(d.CTAHeading)
		d.CTAText = StripHTML(d.CTAText)
		d.CTAURL = SanitizeURL(d.CTAURL)
		d.FormHeading = StripHTML(d.FormHeading)
		d.FormDescription = StripHTML(d.FormDescription)
		d.SubmitText = StripHTML(d.SubmitText)
	}
	return data
}
