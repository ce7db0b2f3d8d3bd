package entity

import "fmt"

type Condition int

const (
	Visible Condition = iota
	Clickable
	Present
)

func (c Condition) String() string {
	switch c {
	case Visible:
		return "visible"
	case Clickable:
		return "clickable"
	case Present:
		return "present"
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}
