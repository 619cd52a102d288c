package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuizType(t *testing.T) {
	assert.Equal(t, TypeQuiz, ParseQuizType("quiz"))
	assert.Equal(t, TypeTrueFalse, ParseQuizType("vrai_ou_faux"))
	assert.Equal(t, TypeTrueFalse, ParseQuizType("true-false"))
	assert.Equal(t, TypeSlider, ParseQuizType("curseur"))
	assert.Equal(t, TypeFreeResponse, ParseQuizType("reponse_libre"))

	// Unknown names fall back to plain multiple choice.
	assert.Equal(t, TypeQuiz, ParseQuizType("something-new"))
	assert.Equal(t, TypeQuiz, ParseQuizType(""))
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LangFrench, ParseLanguage("fr"))
	assert.Equal(t, LangArabic, ParseLanguage("ar"))
	assert.Equal(t, LangEnglish, ParseLanguage("xx"))
	assert.Equal(t, LangEnglish, ParseLanguage(""))
}
