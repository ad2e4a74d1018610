package filters

import (
	"fmt"

	"leaguestats/pkg/regions"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding tags to the gin validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}

	return v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return regions.IsValid(fl.Field().String())
	})
}
