// Package redis stores step attributes in Redis.
//
// Each step's attributes live in one hash, and each pipeline keeps a set
// of the steps saved under it:
//
//	<prefix>:step:<stepID>              hash   attribute name -> value
//	<prefix>:pipeline:<pipelineID>:steps set   step ids
//
// Both keys are written in one MULTI/EXEC transaction. Component manages
// the client lifecycle and exposes the Repository once started:
//
//	comp := redis.NewComponent(redis.Config{Addr: "localhost:6379"}, log)
//	if err := comp.Start(ctx); err != nil { ... }
//	repo := comp.Repository()
package redis
