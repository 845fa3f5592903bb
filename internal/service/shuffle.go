package service

import "math/rand"

// Shuffler は一様なランダム順列を生成するインターフェース
// テストではシード済み乱数の実装に差し替えて割り当てを決定的にします
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// randShuffler はmath/randのグローバル乱数によるShuffler実装です
// rand.ShuffleはFisher–Yatesで一様、かつgoroutineセーフです
type randShuffler struct{}

func (randShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// NewShuffler は本番用のShufflerを作成します
func NewShuffler() Shuffler { return randShuffler{} }

// SeededShuffler はシード付き乱数源によるShufflerを作成します（テスト用）
func SeededShuffler(seed int64) Shuffler {
	return seededShuffler{r: rand.New(rand.NewSource(seed))}
}

type seededShuffler struct{ r *rand.Rand }

func (s seededShuffler) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
