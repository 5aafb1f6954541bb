package i18n

// Message codes produced by the validation engine.
const (
	CodeRequired        = "required"
	CodeMissingOptional = "missing_optional"
	CodeEmptyValue      = "empty_value"
	CodeCastFailure     = "cast_failure"
	CodeUnknownKey      = "unknown_key"
	CodeNestedInvalid   = "nested_invalid"
	CodeContextFailed   = "context_failed"
	CodeInsertFailure   = "insert_failure"
)

// Translator retrieves localized messages for engine codes. data provides
// optional metadata to embed in the message.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case CodeRequired:
			return "必須フィールドが不足しています"
		case CodeMissingOptional:
			return "任意フィールドが省略されています"
		case CodeEmptyValue:
			return "値が空または null です"
		case CodeCastFailure:
			return "宣言されたどの型にも一致しません"
		case CodeUnknownKey:
			return "未知のキーです"
		case CodeNestedInvalid:
			return "ネストされたコレクションの検証に失敗しました"
		case CodeContextFailed:
			return "検証に失敗しました"
		case CodeInsertFailure:
			return "既定値を挿入できません"
		}
	default: // "en"
		switch code {
		case CodeRequired:
			return "missing required field"
		case CodeMissingOptional:
			return "missing optional field"
		case CodeEmptyValue:
			return "value is empty or null"
		case CodeCastFailure:
			return "value matched none of the declared types"
		case CodeUnknownKey:
			return "unrecognized key"
		case CodeNestedInvalid:
			return "nested collection failed validation"
		case CodeContextFailed:
			return "validation failed"
		case CodeInsertFailure:
			return "cannot insert default value"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
