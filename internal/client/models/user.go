package models

// Language is a supported UI language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"

	DefaultLanguage = LanguageEnglish
)

// ParseLanguage accepts exactly the supported codes.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case LanguageEnglish, LanguageHindi:
		return Language(s), true
	default:
		return "", false
	}
}

// Toggle flips between the two supported languages. Anything unknown
// toggles to Hindi, as if it were English.
func (l Language) Toggle() Language {
	if l == LanguageHindi {
		return LanguageEnglish
	}
	return LanguageHindi
}

func (l Language) String() string { return string(l) }

// User is the authenticated principal as returned by the backend.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role,omitempty"`
	Language Language `json:"language,omitempty"`
}
