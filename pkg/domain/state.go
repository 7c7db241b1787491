package domain

import "fmt"

// InteractionState は生成フローの状態です。
type InteractionState int

const (
	StateIdle InteractionState = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

var stateNames = map[InteractionState]string{
	StateIdle:       "idle",
	StateSubmitting: "submitting",
	StateSucceeded:  "succeeded",
	StateFailed:     "failed",
}

func (s InteractionState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InteractionState(%d)", int(s))
}

// MarshalText は JSON 出力時に状態名を使うためのものです。
func (s InteractionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot は表示層に渡す、ある時点の状態のコピーです。
// Result は StateSucceeded / StateFailed のときだけ値を持ちます。
type Snapshot struct {
	State      InteractionState
	Result     GenerationResult
	HasModel   bool
	HasProduct bool
	Options    OptionSet
}

// CanGenerate は生成ボタンを有効にできるかを返します。
func (s Snapshot) CanGenerate() bool {
	return s.State != StateSubmitting && s.HasModel && s.HasProduct
}
