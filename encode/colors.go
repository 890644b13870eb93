package encode

import "github.com/fatih/color"

type ColorAttr int

const (
	NameColor ColorAttr = iota
	ExtrasColor
	OpColor
	VersionColor
	URLColor
	MarkerColor
	OptionColor
	FlagColor
	CommentColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			NameColor:    color.RGB(128, 168, 196).SprintfFunc(),
			ExtrasColor:  color.RGB(196, 168, 128).SprintfFunc(),
			OpColor:      color.RGB(255, 0, 196).SprintfFunc(),
			VersionColor: color.RGB(128, 216, 236).SprintfFunc(),
			URLColor:     color.CyanString,
			MarkerColor:  color.RGB(168, 0, 196).SprintfFunc(),
			OptionColor:  color.RGB(196, 96, 16).SprintfFunc(),
			FlagColor:    color.RGB(196, 96, 16).SprintfFunc(),
			CommentColor: color.BlueString,
		},
	}
}

func colorDefault(s string, args ...any) string {
	return color.New().SprintfFunc()(s, args...)
}

func (c *Colors) paint(attr ColorAttr, s string) string {
	if c == nil {
		return s
	}
	f := c.Map[attr]
	if f == nil {
		f = c.Default
	}
	return f("%s", s)
}
