package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TikLite.com/config"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/search"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

// 消费search_index_queue，维护elasticsearch中的视频/用户索引
func main() {
	hlog.SetLevel(hlog.LevelInfo)
	config.Init()

	url := config.RabbitMqURL()
	if url == "" {
		logrus.Fatal("rabbitmq is not configured, nothing to consume")
	}
	es, err := search.Init()
	if err != nil {
		logrus.Fatalf("Failed to create elasticsearch client: %v", err)
	}
	if es == nil {
		logrus.Fatal("elasticsearch is not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := es.EnsureIndices(ctx); err != nil {
		logrus.Fatalf("Failed to ensure indices: %v", err)
	}

	consumer, err := mq.NewConsumer(url)
	if err != nil {
		logrus.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	if err := consumer.ConsumeIndexEvents(ctx, search.NewIndexer(es)); err != nil {
		logrus.Fatalf("Failed to start index event consumer: %v", err)
	}
	hlog.Info("Index consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	hlog.Info("Shutting down index consumer...")
}
