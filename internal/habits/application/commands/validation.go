package commands

import (
	"github.com/felixgeelhaar/pulse/internal/habits/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

func init() {
	sharedApplication.MustRegisterEnum("habit_frequency", func(s string) bool {
		return domain.Frequency(s).IsValid()
	})
}
