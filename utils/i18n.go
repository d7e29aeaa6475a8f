package utils

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// SupportedLanguages lists the locales shipped in locales/
var SupportedLanguages = []string{"en", "ja"}

var (
	// Bundle is the global translation bundle
	Bundle *i18n.Bundle
	// Localizer is the default localizer
	Localizer *i18n.Localizer

	lazyInit sync.Once
)

// InitI18n loads the embedded locale files into the global bundle
func InitI18n() error {
	Bundle = i18n.NewBundle(language.English)
	Bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range SupportedLanguages {
		path := "locales/active." + lang + ".toml"
		if _, err := Bundle.LoadMessageFileFS(localeFS, path); err != nil {
			Log.Warn("Failed to load %s locale: %v", lang, err)
		}
	}

	Localizer = i18n.NewLocalizer(Bundle, language.English.String())

	Log.Debug("i18n system initialized")
	return nil
}

// IsSupportedLanguage reports whether lang has a locale file
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// GetLocalizer returns a localizer for the specified language
func GetLocalizer(lang string) *i18n.Localizer {
	lazyInit.Do(func() {
		if Bundle == nil {
			_ = InitI18n()
		}
	})
	if lang == "" {
		lang = "en"
	}
	return i18n.NewLocalizer(Bundle, lang)
}

// T translates a message ID, returning the ID itself when no translation exists
func T(localizer *i18n.Localizer, messageID string) string {
	if localizer == nil {
		localizer = GetLocalizer("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		Log.Debug("Translation error for '%s': %v", messageID, err)
		return messageID
	}
	return msg
}

// TPlural translates a message ID with plural support
func TPlural(localizer *i18n.Localizer, messageID string, count int) string {
	if localizer == nil {
		localizer = GetLocalizer("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:   messageID,
		PluralCount: count,
		TemplateData: map[string]interface{}{
			"Count": count,
		},
	})
	if err != nil {
		Log.Debug("Translation error for '%s': %v", messageID, err)
		return messageID
	}
	return msg
}
