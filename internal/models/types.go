package models

// QuizType is the interaction modality of a quiz. It constrains the shape of
// every contained question's choices.
type QuizType string

const (
	TypeQuiz         QuizType = "quiz"
	TypeTrueFalse    QuizType = "true-false"
	TypePuzzle       QuizType = "puzzle"
	TypeSlider       QuizType = "slider"
	TypeFreeResponse QuizType = "free-response"
)

// quizTypeNames maps the wire names used by the generation service to the
// internal enum. The service speaks French for some of them.
var quizTypeNames = map[string]QuizType{
	"quiz":          TypeQuiz,
	"vrai_ou_faux":  TypeTrueFalse,
	"vrai-faux":     TypeTrueFalse,
	"true-false":    TypeTrueFalse,
	"puzzle":        TypePuzzle,
	"curseur":       TypeSlider,
	"slider":        TypeSlider,
	"reponse_libre": TypeFreeResponse,
	"reponse-libre": TypeFreeResponse,
	"free-response": TypeFreeResponse,
}

// ParseQuizType resolves a wire name to a QuizType. Unknown names fall back
// to TypeQuiz (plain multiple choice).
func ParseQuizType(s string) QuizType {
	if t, ok := quizTypeNames[s]; ok {
		return t
	}
	return TypeQuiz
}

func (t QuizType) Valid() bool {
	switch t {
	case TypeQuiz, TypeTrueFalse, TypePuzzle, TypeSlider, TypeFreeResponse:
		return true
	}
	return false
}

type Language string

const (
	LangFrench  Language = "fr"
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangGerman  Language = "de"
)

// ParseLanguage resolves a language code, falling back to English.
func ParseLanguage(s string) Language {
	switch Language(s) {
	case LangFrench, LangEnglish, LangArabic, LangGerman:
		return Language(s)
	}
	return LangEnglish
}

type QuizStatus string

const (
	StatusDraft     QuizStatus = "draft"
	StatusPublished QuizStatus = "published"
)
