package systems

import (
	"math/rand"
	"time"
)

// newTimeSeededRand 返回按当前时间取种的随机源
func newTimeSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
}

// NewRand 按种子创建随机源，seed 为 0 时按时间取种
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return newTimeSeededRand()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
}
