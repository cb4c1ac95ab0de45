package api

import (
	"suito/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}
