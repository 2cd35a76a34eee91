package patch

import "github.com/rs/zerolog"

// Log writes one warning per skipped attribute.
func (r Result) Log(logger *zerolog.Logger, entity string, id uint) {
	for _, s := range r.Skipped {
		logger.Warn().
			Err(s.Err).
			Str("entity", entity).
			Uint("id", id).
			Str("field", s.Field).
			Msg("ignoring unusable attribute")
	}
}
