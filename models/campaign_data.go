package models

import (
	"encoding/json"
	"fmt"
)

// CampaignData is the type-specific content of a campaign. It is implemented
// by *BannerData, *EmailData and *LandingData.
type CampaignData interface {
	CampaignType() CampaignType
}

// BannerSize is one of the supported banner dimensions
type BannerSize string

const (
	BannerSquare     BannerSize = "250x250"
	BannerSkyscraper BannerSize = "300x600"
)

// BannerData is the content of a banner campaign
type BannerData struct {
	Size            BannerSize `json:"size"`
	Text            string     `json:"text"`
	FontFamily      string     `json:"fontFamily"`
	FontSize        int        `json:"fontSize"`
	TextColor       string     `json:"textColor"`
	BackgroundColor string     `json:"backgroundColor"`
}

func (*BannerData) CampaignType() CampaignType { return TypeBanner }

// EmailTemplate is one of the email layouts
type EmailTemplate string

const (
	EmailNewsletter   EmailTemplate = "newsletter"
	EmailPromotional  EmailTemplate = "promotional"
	EmailAnnouncement EmailTemplate = "announcement"
)

// EmailData is the content of an email campaign
type EmailData struct {
	Template     EmailTemplate `json:"template"`
	Subject      string        `json:"subject"`
	Heading      string        `json:"heading"`
	Content      string        `json:"content"`
	CTAText      string        `json:"ctaText"`
	CTAURL       string        `json:"ctaUrl"`
	HeaderImage  string        `json:"headerImage"`
	FontFamily   string        `json:"fontFamily"`
	PrimaryColor string        `json:"primaryColor"`
	AccentColor  string        `json:"accentColor"`
}

func (*EmailData) CampaignType() CampaignType { return TypeEmail }

// LandingTemplate is one of the landing page layouts
type LandingTemplate string

const (
	LandingHero     LandingTemplate = "hero"
	LandingFeatures LandingTemplate = "features"
	LandingMinimal  LandingTemplate = "minimal"
)

// LandingData is the content of a landing page campaign
type LandingData struct {
	Template        LandingTemplate `json:"template"`
	PageTitle       string          `json:"pageTitle"`
	MainHeading     string          `json:"mainHeading"`
	SubHeading      string          `json:"subHeading"`
	Content         string          `json:"content"`
	HeroImage       string          `json:"heroImage"`
	CTAHeading      string          `json:"ctaHeading"`
	CTAText         string          `json:"ctaText"`
	CTAURL          string          `json:"ctaUrl"`
	EnableForm      bool            `json:"enableForm"`
	FormHeading     string          `json:"formHeading"`
	FormDescription string          `json:"formDescription"`
	SubmitText      string          `json:"submitText"`
	FontFamily      string          `json:"fontFamily"`
	PrimaryColor    string          `json:"primaryColor"`
	AccentColor     string          `json:"accentColor"`
	BackgroundColor string          `json:"backgroundColor"`
}

func (*LandingData) CampaignType() CampaignType { return TypeLanding }

// DefaultData returns the editor defaults for a campaign type, or nil for an
// unknown type
func DefaultData(t CampaignType) CampaignData {
	switch t {
	case TypeBanner:
		return &BannerData{
			Size:            BannerSquare,
			FontFamily:      "Arial, sans-serif",
			FontSize:        24,
			TextColor:       "#000000",
			BackgroundColor: "#ffffff",
		}
	case TypeEmail:
		return &EmailData{
			Template:     EmailNewsletter,
			Heading:      "Welcome to our Newsletter!",
			Content:      "Thank you for subscribing to our newsletter.",
			CTAText:      "Read More",
			FontFamily:   "Arial, sans-serif",
			PrimaryColor: "#007bff",
			AccentColor:  "#28a745",
		}
	case TypeLanding:
		return &LandingData{
			Template:        LandingHero,
			PageTitle:       "Welcome to Our Landing Page",
			MainHeading:     "Transform Your Business Today",
			SubHeading:      "The solution you've been waiting for",
			Content:         "Discover how our innovative solution can help you achieve your goals.",
			CTAHeading:      "Ready to get started?",
			CTAText:         "Get Started Now",
			FormHeading:     "Get Your Free Quote",
			FormDescription: "Fill out the form below and we'll contact you",
			SubmitText:      "Submit",
			FontFamily:      "'Inter', sans-serif",
			PrimaryColor:    "#2563eb",
			AccentColor:     "#10b981",
			BackgroundColor: "#ffffff",
		}
	}
	return nil
}

// DecodeCampaignData decodes a raw data bag into the variant for t.
// An empty or null bag decodes to nil.
func DecodeCampaignData(t CampaignType, raw json.RawMessage) (CampaignData, error) {
	var data CampaignData
	switch t {
	case TypeBanner:
		data = &BannerData{}
	case TypeEmail:
		data = &EmailData{}
	case TypeLanding:
		data = &LandingData{}
	default:
		return nil, fmt.Errorf("unknown campaign type %q", t)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s data: %w", t, err)
	}
	return data, nil
}

// CloneData returns a deep copy of a data bag
func CloneData(data CampaignData) CampaignData {
	switch d := data.(type) {
	case *BannerData:
		if d != nil {
			c := *d
			return &c
		}
	case *EmailData:
		if d != nil {
			c := *d
			return &c
		}
	case *LandingData:
		if d != nil {
			c := *d
			return &c
		}
	}
	return nil
}
