package validate

import (
	"strings"
	"time"
	"unicode/utf8"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"github.com/go-playground/validator/v10"
)

const (
	TagSafeText = "safe_text"
	TagDate     = "ddmmyyyy"
	TagStatus   = "report_status"

	maxKeyLength = 100
)

// Register 注册自定义校验标签
func Register(va *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		TagSafeText: FieldValidation,
		TagDate:     DateValidation,
		TagStatus:   StatusValidation,
	} {
		if err := va.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// FieldValidation 船名/单元名，限制长度且不能包含特殊字符
func FieldValidation(fl validator.FieldLevel) bool {
	fieldValue := fl.Field().String()
	if utf8.RuneCountInString(fieldValue) > maxKeyLength {
		return false
	}
	return !strings.ContainsAny(fieldValue, common.SpecialCharacters)
}

// DateValidation DD/MM/YYYY，允许一位数的日和月
func DateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(common.DateParseLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// StatusValidation OPEN / CLOSED，不区分大小写
func StatusValidation(fl validator.FieldLevel) bool {
	s := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return s == "OPEN" || s == "CLOSED"
}
