package http

import (
	"sync"

	"yukbul/internal/core/normalize"
	"yukbul/internal/platform/logger"
	"yukbul/internal/platform/net/http/bind"
)

var registerOnce sync.Once

// registerValidators adds the normtext tag: the value must keep at least one
// letter or digit after normalization
func registerValidators() {
	registerOnce.Do(func() {
		err := bind.RegisterValidation("normtext", func(fl bind.FieldLevel) bool {
			return normalize.Normalize(fl.Field().String()) != ""
		}, "{0} has no searchable letters")
		if err != nil {
			logger.Named("listings").Error().Err(err).Msg("register normtext validator")
		}
	})
}
