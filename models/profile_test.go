package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinRate(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, float64(0), p.WinRate(), "empty profile has no win rate")

	p = &Profile{UserWins: 1, TotalDebates: 1}
	assert.Equal(t, float64(100), p.WinRate())

	p = &Profile{UserWins: 1, AiWins: 2, TotalDebates: 3}
	assert.Equal(t, 33.33, p.WinRate(), "rounded to two decimals")

	p = &Profile{UserWins: 0, AiWins: 5, TotalDebates: 5}
	assert.Equal(t, float64(0), p.WinRate())
}

func TestWinRateInvariant(t *testing.T) {
	// The counters only ever move together, so the derived rate stays in
	// range for any recorded history.
	p := &Profile{}
	for i := 0; i < 10; i++ {
		if i%3 == 0 {
			p.UserWins++
		} else {
			p.AiWins++
		}
		p.TotalDebates++
		assert.Equal(t, p.TotalDebates, p.UserWins+p.AiWins)
		rate := p.WinRate()
		assert.GreaterOrEqual(t, rate, float64(0))
		assert.LessOrEqual(t, rate, float64(100))
	}
}
