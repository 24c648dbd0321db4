// Package commands contains command handlers for the insights bounded context.
package commands

import (
	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

func init() {
	sharedApplication.MustRegisterEnum("distraction_type", func(s string) bool {
		return domain.DistractionType(s).IsValid()
	})
}
