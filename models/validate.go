package models

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RegisterValidations 注册账本模型使用的自定义校验规则
// gin 的 binding 校验器与 Validate 共用这些规则
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
}

// Validate 按 binding 标签校验结构体，与 HTTP 层规则一致
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate.Struct(v)
}
