package layout

import (
	"fmt"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Gravity is a docking slot used for automatic placement.
type Gravity int

const (
	GravityNone Gravity = iota
	GravityHeader
	GravityLeft
	GravityMain
	GravityBottom
	GravityRight
	GravityFooter
)

var gravityNames = [...]string{
	GravityNone:   "",
	GravityHeader: "header",
	GravityLeft:   "left",
	GravityMain:   "main",
	GravityBottom: "bottom",
	GravityRight:  "right",
	GravityFooter: "footer",
}

func (g Gravity) String() string {
	if g < 0 || int(g) >= len(gravityNames) {
		return fmt.Sprintf("Gravity(%d)", int(g))
	}
	return gravityNames[g]
}

// ParseGravity parses a gravity name. The empty string parses to [GravityNone].
func ParseGravity(s string) (Gravity, error) {
	for g, name := range gravityNames {
		if name == s {
			return Gravity(g), nil
		}
	}
	return GravityNone, errs.New(errs.ErrCodeInvalidInput, "unknown gravity %q", s)
}

// Gravities returns the six docking slots in scaffold order.
func Gravities() []Gravity {
	return []Gravity{GravityHeader, GravityLeft, GravityMain, GravityBottom, GravityRight, GravityFooter}
}

// Axis is the direction a [Split] arranges its children along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horiz"
	case Vertical:
		return "vert"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "horiz" or "vert".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horiz":
		return Horizontal, nil
	case "vert":
		return Vertical, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown split axis %q", s)
}

func (a Axis) valid() bool { return a == Horizontal || a == Vertical }
