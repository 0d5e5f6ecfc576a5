// Package i18n holds the read-only FR/EN message catalogue and locale
// negotiation. Nothing in it is mutated after process start.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	FR = "fr"
	EN = "en"
)

// Locales lists the supported locales, default first
var Locales = []string{FR, EN}

var (
	tags    = []language.Tag{language.French, language.English}
	matcher = language.NewMatcher(tags)
)

// IsSupported reports whether locale is one of Locales
func IsSupported(locale string) bool {
	return locale == FR || locale == EN
}

// Match picks the best supported locale for an Accept-Language header,
// or fallback when nothing matches.
func Match(acceptLanguage, fallback string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return fallback
	}
	return Locales[idx]
}

// Other returns the alternate locale for the language switcher
func Other(locale string) string {
	if locale == EN {
		return FR
	}
	return EN
}

// Catalog is a set of messages per locale
type Catalog struct {
	messages map[string]map[string]string
	printers map[string]*message.Printer
}

var defaultCatalog = New(messages)

// Default returns the compiled-in catalogue
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalogue from messages keyed by locale then key
func New(m map[string]map[string]string) *Catalog {
	c := &Catalog{
		messages: m,
		printers: make(map[string]*message.Printer, len(Locales)),
	}
	for i, l := range Locales {
		c.printers[l] = message.NewPrinter(tags[i])
	}
	return c
}

// Has reports whether key is translated for locale
func (c *Catalog) Has(locale, key string) bool {
	_, ok := c.messages[locale][key]
	return ok
}

// T returns the message for key in locale, falling back to French and then
// to the key itself. Args are applied with fmt verbs.
func (c *Catalog) T(locale, key string, args ...any) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[FR][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return c.printer(locale).Sprintf(msg, args...)
}

// Number formats n with the locale's digit grouping
func (c *Catalog) Number(locale string, n int) string {
	return c.printer(locale).Sprintf("%d", n)
}

func (c *Catalog) printer(locale string) *message.Printer {
	if p, ok := c.printers[locale]; ok {
		return p
	}
	return c.printers[FR]
}

// T looks key up in the default catalogue
func T(locale, key string, args ...any) string {
	return defaultCatalog.T(locale, key, args...)
}

// FieldError returns the message for a validation failure on field. A
// field-specific message ("error.<field>.<code>") wins over the generic one.
func (c *Catalog) FieldError(locale, field, code, param string) string {
	if key := fmt.Sprintf("error.%s.%s", field, code); c.Has(locale, key) {
		return c.T(locale, key)
	}
	key := "error." + code
	if !c.Has(locale, key) {
		key = "error.invalid"
	}
	if param != "" && strings.Contains(c.T(locale, key), "%") {
		return c.T(locale, key, param)
	}
	return c.T(locale, key)
}
