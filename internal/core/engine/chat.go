package engine

import (
	"context"
	"strings"

	"sorrybot/internal/core/model"
)

// Submit sends chat input to the text generator. Blank input is apologized
// for directly. A newer submission supersedes one still pending; failures
// become the fixed fallback reply and never reach the caller.
func (engine *Engine) Submit(input string) {
	if strings.TrimSpace(input) == "" {
		engine.Dispatch(model.TriggerEmptyInput)
		return
	}

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	if engine.chatCancel != nil {
		engine.chatCancel()
	}
	engine.chatSeq++
	seq := engine.chatSeq
	ctx, cancel := context.WithCancel(engine.ctx)
	engine.chatCancel = cancel
	engine.emitLocked(Event{Type: EventChatSubmitted, Channel: ChannelInline, Text: input})
	engine.mu.Unlock()

	engine.ports.Chat.SetPending(true)
	go engine.awaitReply(ctx, seq, input)
}

func (engine *Engine) awaitReply(ctx context.Context, seq uint64, input string) {
	reply, err := engine.ports.Generator.Generate(ctx, input)

	engine.mu.Lock()
	if engine.closed || seq != engine.chatSeq {
		engine.mu.Unlock()
		return
	}
	if err != nil {
		engine.logger.Warn("text generation failed", "err", err)
		reply = ChatFallback
	}
	engine.chatCancel()
	engine.chatCancel = nil
	engine.emitLocked(Event{Type: EventChatReply, Channel: ChannelInline, Text: reply})
	engine.mu.Unlock()

	engine.ports.Chat.ShowReply(reply)
	engine.ports.Chat.SetPending(false)
}
