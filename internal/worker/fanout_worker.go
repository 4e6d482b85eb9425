package worker

import (
	"github.com/spec-kit/complaint-service/internal/service"
)

// StartFanoutWorker registers realtime fan-out handlers on the dispatcher.
func StartFanoutWorker(fanout *service.FanoutService) {
	if fanout == nil {
		return
	}
	fanout.RegisterHandlers()
}
