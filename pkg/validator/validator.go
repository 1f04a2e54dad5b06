// Package validator 提供基于 go-playground/validator 的 gin 参数验证器
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomValidator 实现 gin binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	Validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体，非结构体入参直接放行
func (v *CustomValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.Validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

// Engine 返回底层验证引擎
func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")

		// 错误消息中的字段名使用 json tag
		v.Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}
