package dispatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

var (
	// ErrNoPrefixes is returned when a command pattern is compiled without
	// any prefix characters. Such a handler could never match.
	ErrNoPrefixes = errors.New("command patterns need at least one prefix")

	// ErrEmptyCommand is returned for a command pattern without a keyword.
	ErrEmptyCommand = errors.New("command pattern has no keyword")
)

// RewriteCommand turns a declared command pattern such as "start$" or
// "get (\d+)$" into a regular expression that requires one of the prefixes
// and accepts an optional "@username" mention after the keyword.
func RewriteCommand(pattern string, prefixes []string, username string) (string, error) {
	if len(prefixes) == 0 {
		return "", ErrNoPrefixes
	}

	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = strings.TrimSuffix(pattern, "$")
	}

	tokens := strings.Fields(pattern)
	if len(tokens) == 0 {
		return "", ErrEmptyCommand
	}

	var b strings.Builder
	b.WriteString("^[")
	for _, p := range prefixes {
		b.WriteString(escapeClass(p))
	}
	b.WriteString("]")
	b.WriteString(tokens[0])

	// Without a username the group can only match the empty string.
	if username != "" {
		b.WriteString("(?:@" + regexp.QuoteMeta(username) + ")?")
	} else {
		b.WriteString("(?:)?")
	}

	for _, arg := range tokens[1:] {
		b.WriteString(" " + arg)
	}
	if anchored {
		b.WriteString("$")
	}
	return b.String(), nil
}

// escapeClass escapes every punctuation rune so it is literal inside [...].
func escapeClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

type patternKey struct {
	pattern   string
	isCommand bool
	prefixes  string
	username  string
}

// Compiler compiles handler patterns and memoizes the result, so each
// distinct (pattern, command flag, prefix set, username) compiles once.
type Compiler struct {
	mu    sync.Mutex
	cache map[patternKey]*regexp.Regexp
}

// NewCompiler creates an empty compiler cache.
func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[patternKey]*regexp.Regexp)}
}

// Compile returns the matcher for pattern. Command patterns are rewritten
// with RewriteCommand first; other patterns are used verbatim.
func (c *Compiler) Compile(pattern string, isCommand bool, prefixes []string, username string) (*regexp.Regexp, error) {
	key := patternKey{
		pattern:   pattern,
		isCommand: isCommand,
		prefixes:  strings.Join(prefixes, "\x00"),
		username:  username,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.cache[key]; ok {
		return re, nil
	}

	source := pattern
	if isCommand {
		var err error
		source, err = RewriteCommand(pattern, prefixes, username)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("could not compile pattern %q: %w", pattern, err)
	}
	c.cache[key] = re
	return re, nil
}

// Len returns the number of cached matchers.
func (c *Compiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
