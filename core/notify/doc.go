// Package notify publishes recompute lifecycle events.
//
// When a Redis URL is configured, events are published as JSON to a pub/sub
// channel so other services can react to finished recomputes. Without one,
// events are only written to the log.
//
// # Usage
//
//	pub, err := notify.New(cfg.Notify, log)
//	if err != nil {
//	    return err
//	}
//	defer pub.Close()
//
//	_ = pub.Publish(ctx, notify.Event{Key: "item-1", Status: notify.StatusCompleted})
package notify
