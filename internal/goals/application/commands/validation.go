package commands

import (
	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

func init() {
	sharedApplication.MustRegisterEnum("goal_status", func(s string) bool {
		return domain.Status(s).IsValid()
	})
}
