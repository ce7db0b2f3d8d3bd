package syncengine

import "swaglabs-e2e/internal/domain/entity"

func transientErrors() []error {
	return []error{entity.ErrElementNotFound, entity.ErrStaleElement}
}

// SelectProfile resolves the first requested profile to its WaitConfig.
// Nothing requested, or a value outside the known set, yields DEFAULT.
func SelectProfile(requested ...entity.WaitProfile) entity.WaitConfig {
	profile := entity.WaitDefault
	if len(requested) > 0 {
		profile = requested[0]
	}

	switch profile {
	case entity.WaitShort:
		return entity.WaitConfig{
			Profile:      entity.WaitShort,
			Timeout:      entity.ShortWaitTimeout,
			PollInterval: entity.DefaultPollInterval,
			Ignored:      transientErrors(),
		}
	case entity.WaitLong:
		return entity.WaitConfig{
			Profile:      entity.WaitLong,
			Timeout:      entity.LongWaitTimeout,
			PollInterval: entity.DefaultPollInterval,
			Ignored:      transientErrors(),
		}
	case entity.WaitFluent:
		return entity.WaitConfig{
			Profile:      entity.WaitFluent,
			Timeout:      entity.FluentWaitTimeout,
			PollInterval: entity.FluentPollInterval,
			Ignored:      append(transientErrors(), entity.ErrElementNotVisible),
		}
	case entity.WaitDefault:
	}

	return entity.WaitConfig{
		Profile:      entity.WaitDefault,
		Timeout:      entity.DefaultWaitTimeout,
		PollInterval: entity.DefaultPollInterval,
		Ignored:      transientErrors(),
	}
}
