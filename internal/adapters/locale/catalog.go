package locale

import (
	"MyneBooks/internal/core/ports"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var embedded embed.FS

// catalog implements the Translator port over flattened YAML files,
// one file per locale named "<locale>.yml".
type catalog struct {
	defaultLocale string
	texts         map[string]map[string]string // locale -> key -> text
	locales       []string                     // same order as the matcher tags
	matcher       language.Matcher
	log           zerolog.Logger
}

var _ ports.Translator = (*catalog)(nil) // Ensure compliance

// New loads the locales bundled with the binary.
func New(defaultLocale string, baseLogger *zerolog.Logger) (ports.Translator, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, defaultLocale, baseLogger)
}

// Load reads every "*.yml" file at the root of fsys.
func Load(fsys fs.FS, defaultLocale string, baseLogger *zerolog.Logger) (ports.Translator, error) {
	log := baseLogger.With().Str("component", "locale").Logger()

	files, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return nil, err
	}

	c := &catalog{
		defaultLocale: defaultLocale,
		texts:         make(map[string]map[string]string),
		log:           log,
	}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", name, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", name, err)
		}
		loc := strings.TrimSuffix(path.Base(name), ".yml")
		if _, err := language.Parse(loc); err != nil {
			return nil, fmt.Errorf("file %s is not named after a locale: %w", name, err)
		}
		texts := make(map[string]string)
		flatten("", tree, texts)
		c.texts[loc] = texts
	}

	if _, ok := c.texts[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalog", defaultLocale)
	}

	// The default goes first so the matcher falls back to it.
	c.locales = append(c.locales, defaultLocale)
	var rest []string
	for loc := range c.texts {
		if loc != defaultLocale {
			rest = append(rest, loc)
		}
	}
	sort.Strings(rest)
	c.locales = append(c.locales, rest...)

	tags := make([]language.Tag, len(c.locales))
	for i, loc := range c.locales {
		tags[i] = language.MustParse(loc)
	}
	c.matcher = language.NewMatcher(tags)

	log.Info().Strs("locales", c.locales).Str("default", defaultLocale).Msg("Locales loaded")
	return c, nil
}

// flatten turns nested maps into dotted keys, e.g. "texts.start".
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func (c *catalog) Default() string {
	return c.defaultLocale
}

func (c *catalog) Lookup(locale, key string) (string, bool) {
	text, ok := c.texts[locale][key]
	return text, ok
}

func (c *catalog) Match(hint string) (string, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", false
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return "", false
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return c.locales[idx], true
}

// Text tries the requested locale, then the closest supported locale,
// then the default. A key missing everywhere renders as itself.
func (c *catalog) Text(locale, key string, subs map[string]string) string {
	text, ok := c.Lookup(locale, key)
	if !ok {
		if matched, found := c.Match(locale); found && matched != locale {
			text, ok = c.Lookup(matched, key)
		}
	}
	if !ok && locale != c.defaultLocale {
		text, ok = c.Lookup(c.defaultLocale, key)
	}
	if !ok {
		c.log.Warn().Str("locale", locale).Str("key", key).Msg("Missing translation")
		return key
	}

	for name, value := range subs {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
