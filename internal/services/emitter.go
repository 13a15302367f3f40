package services

import (
	"context"

	redisbus "github.com/gitfit/gitfit-backend/internal/clients/redis"
	"github.com/gitfit/gitfit-backend/internal/realtime"
)

type Emitter interface {
	Emit(ctx context.Context, msg realtime.Message)
}

type HubEmitter struct{ Hub *realtime.Hub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.Message) {
	e.Hub.Broadcast(msg)
}

type RedisEmitter struct{ Bus redisbus.DirectiveBus }

func (e *RedisEmitter) Emit(ctx context.Context, msg realtime.Message) {
	_ = e.Bus.Publish(ctx, msg)
}
