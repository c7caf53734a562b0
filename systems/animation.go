package systems

import (
	cfg "github.com/automoto/illuyanka/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// playClip schedules the hook timeline of clip on e, the way animation
// events fire while a clip plays. Hooks without a handler are ignored and
// every hook is dropped if e dies first.
func playClip(ecs *ecs.ECS, e *donburi.Entry, clip string, handlers map[string]func(*ecs.ECS, *donburi.Entry)) bool {
	events := cfg.ClipEvents(clip)
	if len(events) == 0 {
		logger(ecs.World).Warn("clip has no hook timeline", entityField(e), zap.String("clip", clip))
		return false
	}
	for _, ev := range events {
		handler, ok := handlers[ev.Hook]
		if !ok {
			continue
		}
		after(ecs.World, e, ev.At, func() {
			if e.Valid() {
				handler(ecs, e)
			}
		})
	}
	return true
}
