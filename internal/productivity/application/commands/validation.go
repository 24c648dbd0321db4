package commands

import (
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

func init() {
	sharedApplication.MustRegisterEnum("priority", func(s string) bool {
		_, err := value_objects.ParsePriority(s)
		return err == nil
	})
}
