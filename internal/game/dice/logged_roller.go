package dice

import "go.uber.org/zap"

// Roller pairs the randomness Source used by a throw with a logger.
// Every parsed roll is logged at debug level with its mode, commands, and dice count.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the randomness provider dice are thrown with.
func (r *Roller) Source() Source {
	return r.src
}

// Parse parses line with ParseRoll and logs the outcome.
//
// Postcondition: parse failures are logged at debug level and returned unchanged.
func (r *Roller) Parse(line string) (Roll, error) {
	roll, err := ParseRoll(line)
	if err != nil {
		r.logger.Debug("roll rejected",
			zap.String("input", line),
			zap.Error(err),
		)
		return Roll{}, err
	}
	cmds := make([]string, len(roll.Commands))
	for i, c := range roll.Commands {
		cmds[i] = c.String()
	}
	r.logger.Debug("roll parsed",
		zap.String("input", line),
		zap.Stringer("mode", roll.Mode),
		zap.Strings("commands", cmds),
		zap.Int("dice", len(roll.Dice)),
	)
	return roll, nil
}
