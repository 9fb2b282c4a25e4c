package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":             "required field missing",
		"invalid_type":         "invalid type",
		"invalid_enum":         "value not in enum",
		"unknown_key":          "unknown key",
		"unknown_field":        "unknown field",
		"duplicate_field":      "duplicate field",
		"field_conflict":       "conflicting field types",
		"no_matching_variant":  "no variant matched",
		"ambiguous_variant":    "more than one variant matched",
		"unknown_variant":      "unknown variant",
		"duplicate_variant":    "duplicate variant",
		"capability_denied":    "variant not authorized",
		"field_not_in_variant": "field not part of variant",
		"readonly_field":       "field is readonly",
	},
	"ja": {
		"required":             "必須フィールドが不足しています",
		"invalid_type":         "型が不正です",
		"invalid_enum":         "列挙値に含まれていません",
		"unknown_key":          "未知のキーです",
		"unknown_field":        "未知のフィールドです",
		"duplicate_field":      "フィールドが重複しています",
		"field_conflict":       "フィールドの型が競合しています",
		"no_matching_variant":  "一致するバリアントがありません",
		"ambiguous_variant":    "複数のバリアントに一致しました",
		"unknown_variant":      "未登録のバリアントです",
		"duplicate_variant":    "バリアントが重複しています",
		"capability_denied":    "このバリアントは許可されていません",
		"field_not_in_variant": "バリアントに存在しないフィールドです",
		"readonly_field":       "読み取り専用フィールドです",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
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
