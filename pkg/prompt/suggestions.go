package prompt

// Field は OptionSet の各項目を表します。
type Field string

const (
	FieldBackground      Field = "background"
	FieldClothing        Field = "clothing"
	FieldExpression      Field = "expression"
	FieldProductPosition Field = "productPosition"
)

// Fields は画面に並べる順序です。
var Fields = []Field{FieldBackground, FieldClothing, FieldExpression, FieldProductPosition}

var suggestions = map[Field][]string{
	FieldBackground: {
		"minimalist white studio",
		"sunny beach at golden hour",
		"modern city street at night",
		"cozy cafe interior",
		"lush tropical garden",
		"luxury hotel lobby",
	},
	FieldClothing: {
		"smart casual outfit",
		"elegant evening dress",
		"business suit",
		"sporty activewear",
		"traditional ao dai",
		"summer linen shirt",
	},
	FieldExpression: {
		"warm natural smile",
		"confident and serious",
		"joyful laughter",
		"calm and relaxed",
		"curious and surprised",
	},
	FieldProductPosition: {
		"held in the model's hand",
		"on a table in front of the model",
		"worn by the model",
		"in the foreground, slightly out of focus background",
		"beside the model at eye level",
	},
}

// Suggestions は項目ごとの候補一覧のコピーを返します。
func Suggestions(field Field) []string {
	return append([]string(nil), suggestions[field]...)
}

// AllSuggestions は全項目の候補一覧を返します。
func AllSuggestions() map[Field][]string {
	out := make(map[Field][]string, len(suggestions))
	for _, f := range Fields {
		out[f] = Suggestions(f)
	}
	return out
}
