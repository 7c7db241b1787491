package prompt

import (
	"strings"
	"testing"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

var defaults = []string{DefaultBackground, DefaultClothing, DefaultExpression, DefaultProductPosition}

func TestCompose_EmptyOptionSetUsesAllDefaults(t *testing.T) {
	got := Compose(domain.OptionSet{})

	for _, d := range defaults {
		assert.Equal(t, 1, strings.Count(got, d), "default %q should appear exactly once", d)
	}
	assert.Contains(t, got, "Background: "+DefaultBackground+".")
	assert.Contains(t, got, "Model clothing: "+DefaultClothing+".")
	assert.Contains(t, got, "Model expression: "+DefaultExpression+".")
	assert.Contains(t, got, "Product position: "+DefaultProductPosition+".")
}

func TestCompose_ProvidedValuesAreVerbatim(t *testing.T) {
	opts := domain.OptionSet{
		Background:      "neon-lit Tokyo alley",
		Clothing:        "áo dài đỏ",
		Expression:      "  sly grin  ",
		ProductPosition: "balanced on the model's head",
	}
	got := Compose(opts)

	assert.Contains(t, got, "Background: neon-lit Tokyo alley.")
	assert.Contains(t, got, "Model clothing: áo dài đỏ.")
	assert.Contains(t, got, "Model expression:   sly grin  .")
	assert.Contains(t, got, "Product position: balanced on the model's head.")
	for _, d := range defaults {
		assert.NotContains(t, got, d)
	}
}

func TestCompose_MixedFields(t *testing.T) {
	tests := []struct {
		name        string
		opts        domain.OptionSet
		wantLine    string
		wantDefault string
	}{
		{"背景だけ指定", domain.OptionSet{Background: "beach"}, "Background: beach.", DefaultClothing},
		{"服装だけ指定", domain.OptionSet{Clothing: "suit"}, "Model clothing: suit.", DefaultBackground},
		{"表情だけ指定", domain.OptionSet{Expression: "smiling"}, "Model expression: smiling.", DefaultProductPosition},
		{"位置だけ指定", domain.OptionSet{ProductPosition: "in hand"}, "Product position: in hand.", DefaultExpression},
		{"空白のみは未入力扱い", domain.OptionSet{Background: "   "}, "Background: " + DefaultBackground + ".", DefaultClothing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.opts)
			assert.Contains(t, got, tt.wantLine)
			assert.Contains(t, got, tt.wantDefault)
		})
	}
}

func TestCompose_InstructsImageOutputAndFidelity(t *testing.T) {
	got := Compose(domain.OptionSet{})

	assert.Contains(t, got, "must be an image file")
	assert.Contains(t, got, "Do not return text")
	assert.Contains(t, got, "exactly the same person as in image 1")
	assert.Contains(t, got, "exactly the same product as in image 2")
}

func TestSuggestions(t *testing.T) {
	all := AllSuggestions()
	assert.Len(t, all, len(Fields))
	for _, f := range Fields {
		assert.NotEmpty(t, all[f], f)
	}

	// 返り値を書き換えても内部の一覧は変わらないのだ
	list := Suggestions(FieldBackground)
	list[0] = "mutated"
	assert.NotEqual(t, "mutated", Suggestions(FieldBackground)[0])
	assert.Empty(t, Suggestions(Field("unknown")))
}
