// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for
// SecureTalk. It uses the go-i18n library to load and manage translation
// files, allowing the user interface to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

// bundle stores all the loaded translation messages from the locale files.
var bundle *i18n.Bundle

// localizer is used to translate messages into a specific language.
var localizer *i18n.Localizer

// currentLang is the active language code.
var currentLang string

// Init initializes the i18n bundle and sets up the localizer for a specific
// language. It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.ParseMessageFileBytes(data, f.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang)
	currentLang = lang
}

// T translates a message by its ID. Extra arguments are applied fmt-style to
// the translated string. If the i18n system has not been initialized it
// defaults to English; if a translation is missing the ID itself is returned.
func T(messageID string, args ...interface{}) string {
	if localizer == nil {
		Init("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		// go-i18n errors on unknown IDs; fall back to the ID so missing
		// translations remain visible rather than fatal.
		msg = messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language code.
func GetLang() string {
	return currentLang
}

// GetAvailableLocales returns a map of locale code to display name for every
// embedded translation file. The display name comes from each locale's
// `language.display_name` message, falling back to the code itself.
func GetAvailableLocales() map[string]string {
	locales := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		code := strings.TrimSuffix(f.Name(), ".yaml")
		name := code
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err == nil {
			var msgs map[string]string
			if yaml.Unmarshal(data, &msgs) == nil {
				if dn, ok := msgs["language.display_name"]; ok && dn != "" {
					name = dn
				}
			}
		}
		locales[code] = name
	}
	return locales
}
