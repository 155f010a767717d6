package ports

// Translator looks up localized strings.
type Translator interface {
	// Lookup returns the raw string for key in exactly this locale.
	// ok is false when the locale has no translation for key.
	Lookup(locale, key string) (text string, ok bool)

	// Text renders key for locale, substituting "{name}" placeholders.
	// Missing translations fall back to the default locale.
	Text(locale, key string, subs map[string]string) string

	// Match maps a client-reported language code onto a supported locale.
	// ok is false when nothing supported is close enough.
	Match(hint string) (locale string, ok bool)

	// Default returns the system default locale.
	Default() string
}
