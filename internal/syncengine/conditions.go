package syncengine

import (
	"context"
	"strings"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
)

// Predicate is evaluated once per poll tick. A nil element with a nil error
// means the condition is not satisfied yet.
type Predicate func(ctx context.Context, session output.SessionPort) (output.ElementPort, error)

// Dispatch maps a condition to its predicate. Unknown conditions fail before
// any polling starts.
func Dispatch(cond entity.Condition, loc entity.Locator) (Predicate, error) {
	switch cond {
	case entity.Present:
		return presenceOf(loc), nil
	case entity.Visible:
		return visibilityOf(loc), nil
	case entity.Clickable:
		return clickabilityOf(loc), nil
	}
	return nil, &ConfigurationError{Condition: cond.String()}
}

// ParseCondition converts a condition name such as "clickable" for callers
// that receive conditions as untyped input.
func ParseCondition(name string) (entity.Condition, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clickable":
		return entity.Clickable, nil
	case "visible":
		return entity.Visible, nil
	case "present":
		return entity.Present, nil
	}
	return 0, &ConfigurationError{Condition: name}
}

func presenceOf(loc entity.Locator) Predicate {
	return func(ctx context.Context, session output.SessionPort) (output.ElementPort, error) {
		return session.FindElement(ctx, loc)
	}
}

func visibilityOf(loc entity.Locator) Predicate {
	present := presenceOf(loc)
	return func(ctx context.Context, session output.SessionPort) (output.ElementPort, error) {
		el, err := present(ctx, session)
		if err != nil || el == nil {
			return nil, err
		}
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			return nil, err
		}
		return el, nil
	}
}

func clickabilityOf(loc entity.Locator) Predicate {
	visible := visibilityOf(loc)
	return func(ctx context.Context, session output.SessionPort) (output.ElementPort, error) {
		el, err := visible(ctx, session)
		if err != nil || el == nil {
			return nil, err
		}
		enabled, err := el.Enabled(ctx)
		if err != nil || !enabled {
			return nil, err
		}
		return el, nil
	}
}
