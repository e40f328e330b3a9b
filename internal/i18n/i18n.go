// Package i18n holds the localized user-facing messages of the API.
package i18n

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Message keys.
const (
	EntryRecorded = "entry_recorded"
	ExitRecorded  = "exit_recorded"
	InvalidType   = "invalid_type"
	InvalidBody   = "invalid_body"
	InvalidID     = "invalid_id"
	EntryDeleted  = "entry_deleted"
	AllCleared    = "all_cleared"
)

// FallbackLocale is consulted when a key is missing from the chosen locale.
const FallbackLocale = "en"

//go:embed messages.toml
var defaultCatalog string

// Catalog maps locale -> key -> message.
type Catalog map[string]map[string]string

// Load decodes the embedded catalog and, when overridePath is set, merges
// the keys of that TOML file on top of it.
func Load(overridePath string) (Catalog, error) {
	cat := Catalog{}
	if _, err := toml.Decode(defaultCatalog, &cat); err != nil {
		return nil, fmt.Errorf("decode embedded messages: %w", err)
	}
	if overridePath == "" {
		return cat, nil
	}
	var extra Catalog
	if _, err := toml.DecodeFile(overridePath, &extra); err != nil {
		return nil, fmt.Errorf("decode %s: %w", overridePath, err)
	}
	for locale, msgs := range extra {
		if cat[locale] == nil {
			cat[locale] = map[string]string{}
		}
		for k, v := range msgs {
			cat[locale][k] = v
		}
	}
	return cat, nil
}

// Has reports whether locale has any messages.
func (c Catalog) Has(locale string) bool {
	return len(c[locale]) > 0
}

// Translator resolves keys for one locale.
type Translator struct {
	cat    Catalog
	locale string
}

// For returns a Translator bound to locale.
func (c Catalog) For(locale string) Translator {
	return Translator{cat: c, locale: locale}
}

// Locale returns the bound locale.
func (t Translator) Locale() string { return t.locale }

// T returns the message for key, falling back to FallbackLocale and then to
// the key itself.
func (t Translator) T(key string) string {
	if msg, ok := t.cat[t.locale][key]; ok {
		return msg
	}
	if msg, ok := t.cat[FallbackLocale][key]; ok {
		return msg
	}
	return key
}
