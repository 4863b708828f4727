package element

import (
	"errors"
	"fmt"
)

// ErrDegenerateGeometry matches every *GeometryError through errors.Is.
var ErrDegenerateGeometry = errors.New("degenerate element geometry")

type Configuration uint8

const (
	Reference Configuration = iota
	Current
)

func (c Configuration) String() string {
	if c == Current {
		return "current"
	}
	return "reference"
}

// GeometryError reports a non-positive or singular Jacobian. The element is
// inverted or collapsed in the given configuration and cannot be integrated.
type GeometryError struct {
	Type       ElementType
	Config     Configuration
	GaussPoint int
	DetJ       float64
}

func (ge *GeometryError) Error() string {
	return fmt.Sprintf("%s element has det(J) = %g at gauss point %d in the %s configuration",
		ge.Type, ge.DetJ, ge.GaussPoint, ge.Config)
}

func (ge *GeometryError) Is(target error) bool { return target == ErrDegenerateGeometry }

func contractViolation(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}
