package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// ValidatorInterface 验证器接口，兼容 gin binding.StructValidator
type ValidatorInterface interface {
	ValidateStruct(obj any) error
	Engine() any
}

// ValidError 单个参数校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return v.ErrorsToString()
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 将所有校验错误消息拼接为一个字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 将校验错误转换为 字段 => 错误消息 映射
func (v ValidErrors) MapsToString() map[string]string {
	maps := make(map[string]string, len(v))
	for _, err := range v {
		maps[err.Key] = err.Message
	}
	return maps
}

// BindAndValid 绑定请求参数并校验，校验失败时返回翻译后的错误列表
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			trans, transOk := c.Value("trans").(ut.Translator)
			for _, fieldErr := range verrs {
				msg := fieldErr.Error()
				if transOk {
					msg = fieldErr.Translate(trans)
				}
				errs = append(errs, &ValidError{
					Key:     fieldErr.Field(),
					Message: msg,
				})
			}
		} else {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
		}
		return false, errs
	}

	return true, nil
}
