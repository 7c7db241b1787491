package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// 項目が空のときに使う既定フレーズです。
const (
	DefaultBackground      = "modern professional studio"
	DefaultClothing        = "appropriate to product and setting"
	DefaultExpression      = "confident and professional"
	DefaultProductPosition = "prominently and naturally placed"
)

const template = `Task: Create an advertising image.
Inputs: image 1 (the model), image 2 (the product).
Description of the resulting image:
- Model: exactly the same person as in image 1.
- Product: exactly the same product as in image 2.
- Background: %s.
- Model clothing: %s.
- Model expression: %s.
- Product position: %s.
Note: The result must be an image file. Do not return text only.`

// Compose は OptionSet から外部API向けの指示文を組み立てます。
// 空白だけの項目は未入力として既定フレーズに置き換え、それ以外はそのまま埋め込みます。
func Compose(opts domain.OptionSet) string {
	return fmt.Sprintf(template,
		orDefault(opts.Background, DefaultBackground),
		orDefault(opts.Clothing, DefaultClothing),
		orDefault(opts.Expression, DefaultExpression),
		orDefault(opts.ProductPosition, DefaultProductPosition),
	)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
