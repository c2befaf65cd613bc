package termconsole

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Style is a list of SGR parameters, e.g. [103, 30] for black on bright yellow.
// An empty Style emits nothing.
type Style struct {
	Codes []int `toml:"codes"`
}

// LevelStyle colors one log level: the 3-column badge and the message after it.
type LevelStyle struct {
	Badge Style `toml:"badge"`
	Text  Style `toml:"text"`
}

// ColorScheme defines the colors used for the input line and log prefixes.
type ColorScheme struct {
	Name   string     `toml:"name"`
	Margin Style      `toml:"margin"` // Prompt marker or history index
	Input  Style      `toml:"input"`  // Text being edited
	Plain  LevelStyle `toml:"plain"`
	Info   LevelStyle `toml:"info"`
	Warn   LevelStyle `toml:"warn"`
	Error  LevelStyle `toml:"error"`
	Accept LevelStyle `toml:"accept"`
	Reject LevelStyle `toml:"reject"`
}

// ThemeDefault uses the 16-color palette: gray margin, white input and
// bright badges for warnings, errors and verdicts.
var ThemeDefault = &ColorScheme{
	Name:   "default",
	Margin: Style{Codes: []int{90}},
	Input:  Style{Codes: []int{37}},
	Info:   LevelStyle{Badge: Style{Codes: []int{96}}},
	Warn:   LevelStyle{Badge: Style{Codes: []int{103, 30}}, Text: Style{Codes: []int{93}}},
	Error:  LevelStyle{Badge: Style{Codes: []int{101, 30}}, Text: Style{Codes: []int{91}}},
	Accept: LevelStyle{Badge: Style{Codes: []int{102, 30}}, Text: Style{Codes: []int{92}}},
	Reject: LevelStyle{Badge: Style{Codes: []int{101, 30}}, Text: Style{Codes: []int{91}}},
}

// ThemeMonochrome emits no color at all. It is selected automatically when
// NO_COLOR is set and no scheme was configured.
var ThemeMonochrome = &ColorScheme{
	Name: "monochrome",
}

// ToANSI converts a Style to an SGR escape sequence.
func (s Style) ToANSI() string {
	if len(s.Codes) == 0 {
		return ""
	}
	codes := make([]string, len(s.Codes))
	for i, c := range s.Codes {
		codes[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}

func (cs *ColorScheme) level(l Level) LevelStyle {
	switch l {
	case LevelInfo:
		return cs.Info
	case LevelWarn:
		return cs.Warn
	case LevelError:
		return cs.Error
	case LevelAccept:
		return cs.Accept
	case LevelReject:
		return cs.Reject
	default:
		return cs.Plain
	}
}

// Validate checks that every SGR code is in range. It returns all found
// issues joined together.
func (cs *ColorScheme) Validate() error {
	var errs []error
	check := func(field string, s Style) {
		for _, c := range s.Codes {
			if c < 0 || c > 255 {
				errs = append(errs, fmt.Errorf("%s: SGR code %d out of range 0-255", field, c))
			}
		}
	}

	check("margin", cs.Margin)
	check("input", cs.Input)
	for _, l := range []Level{LevelPlain, LevelInfo, LevelWarn, LevelError, LevelAccept, LevelReject} {
		ls := cs.level(l)
		check(l.String()+".badge", ls.Badge)
		check(l.String()+".text", ls.Text)
	}
	return errors.Join(errs...)
}

// LoadColorScheme reads a TOML color scheme from path. Fields missing from
// the file keep their ThemeDefault values; unknown keys are rejected as
// likely typos.
//
// Example file:
//
//	name = "ocean"
//	[margin]
//	codes = [34]
//	[warn.badge]
//	codes = [43, 30]
func LoadColorScheme(path string) (*ColorScheme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("color scheme: open %s: %w", path, err)
	}
	defer f.Close()

	cs, err := decodeColorScheme(f)
	if err != nil {
		return nil, fmt.Errorf("color scheme: %s: %w", path, err)
	}
	return cs, nil
}

func decodeColorScheme(r io.Reader) (*ColorScheme, error) {
	cs := ThemeDefault.clone()
	meta, err := toml.NewDecoder(r).Decode(cs)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s (possible typos?)", strings.Join(keys, ", "))
	}

	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *ColorScheme) clone() *ColorScheme {
	c := *cs
	for _, s := range []*Style{
		&c.Margin, &c.Input,
		&c.Plain.Badge, &c.Plain.Text,
		&c.Info.Badge, &c.Info.Text,
		&c.Warn.Badge, &c.Warn.Text,
		&c.Error.Badge, &c.Error.Text,
		&c.Accept.Badge, &c.Accept.Text,
		&c.Reject.Badge, &c.Reject.Text,
	} {
		s.Codes = append([]int(nil), s.Codes...)
	}
	return &c
}
