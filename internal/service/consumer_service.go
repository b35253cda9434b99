package service

import (
	"context"
	"encoding/json"

	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService rebuilds the knowledge base whenever a menu-updated event
// arrives. Rebuilds run from the full catalog each time: embeddings are
// derived data and the catalog is small enough to re-embed wholesale.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	menuRepo  contract.MenuRepository
	indexer   *indexer.Indexer
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	menuRepo contract.MenuRepository,
	ix *indexer.Indexer,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		menuRepo:  menuRepo,
		indexer:   ix,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.MenuUpdatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal menu-updated message", map[string]any{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying will not help
		return
	}

	cs.logger.Info("consumer", "rebuilding knowledge base", map[string]any{
		"reason": payload.Reason,
	})

	items, err := cs.menuRepo.FindAll(ctx)
	if err != nil {
		cs.logger.Error("consumer", "failed to load menu catalog", map[string]any{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	if err := cs.indexer.Index(ctx, items); err != nil {
		cs.logger.Error("consumer", "index rebuild failed, previous generation kept", map[string]any{
			"error": err.Error(),
			"items": len(items),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "knowledge base rebuilt", map[string]any{
		"items": len(items),
	})
	msg.Ack()
}
