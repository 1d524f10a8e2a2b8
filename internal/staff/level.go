package staff

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is the experience tier of an employee or the minimum tier a project requires.
// Levels are totally ordered: Junior < Mid < Senior.
type Level int

const (
	Junior Level = iota + 1
	Mid
	Senior
)

var ErrInvalidLevel = errors.New("invalid experience level")

var levelNames = map[Level]string{
	Junior: "Junior",
	Mid:    "Mid",
	Senior: "Senior",
}

// Levels returns all valid levels in ascending order.
func Levels() []Level {
	return []Level{Junior, Mid, Senior}
}

// ParseLevel accepts a level name in any letter case, e.g. "senior" or " MID ".
func ParseLevel(s string) (Level, error) {
	name := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
	for level, candidate := range levelNames {
		if candidate == name {
			return level, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
