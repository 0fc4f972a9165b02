package service

import "time"

// DefaultStatusInterval is how long each loading message stays on screen.
const DefaultStatusInterval = 2500 * time.Millisecond

// StatusMessages rotate while a plan is being generated. They are cosmetic
// and say nothing about the request's real progress.
var StatusMessages = []string{
	"Analyzing your health profile...",
	"Calculating optimal macronutrient splits...",
	"Designing your custom meal plan...",
	"Structuring your workout roadmap...",
	"Curating healthy habits for you...",
	"Finalizing your wellness blueprint...",
}

// StatusStep is the index into StatusMessages after elapsed loading time.
func StatusStep(elapsed, interval time.Duration) int {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed/interval) % len(StatusMessages)
}

// StatusMessageAt returns the message shown after elapsed loading time.
func StatusMessageAt(elapsed, interval time.Duration) string {
	return StatusMessages[StatusStep(elapsed, interval)]
}
