package kafka

import (
	"context"
	"strconv"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"github.com/bytedance/sonic"
	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Producer 基于 kafka-go 发布报告变更事件，按船名分区
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg config.KafkaCfg) (dependency.EventPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 未配置")
	}
	mechanism, err := buildSASLMechanism(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "构建 SASL 认证失败")
	}

	log.Infof("Kafka Producer: brokers=%v topic=%s sasl=%t", cfg.Brokers, cfg.Topic, mechanism != nil)

	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			Transport:              &kafka.Transport{SASL: mechanism},
			RequiredAcks:           kafka.RequireOne,
			Async:                  true,
			BatchSize:              10,
			WriteTimeout:           10 * time.Second,
			ReadTimeout:            10 * time.Second,
		},
	}, nil
}

func (p *Producer) PublishReportChanged(ctx context.Context, event dependency.ReportChanged) error {
	if p.writer == nil {
		return errors.New("kafka writer 未初始化")
	}
	value, err := sonic.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal report event")
	}
	key := event.Vessel
	if key == "" {
		key = strconv.FormatInt(event.ReportID, 10)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.Time,
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// LogPublisher 未启用 kafka 时使用，只记录日志
type LogPublisher struct{}

func (LogPublisher) PublishReportChanged(_ context.Context, event dependency.ReportChanged) error {
	log.Infof("report changed: action=%s id=%d generation=%d", event.Action, event.ReportID, event.Generation)
	return nil
}

func (LogPublisher) Close() error {
	return nil
}

var ProviderSet = wire.NewSet(NewEventPublisher)

// NewEventPublisher 按配置选择 kafka 或日志
func NewEventPublisher() (dependency.EventPublisher, error) {
	cfg := config.Get().Kafka
	if !cfg.Enabled {
		return LogPublisher{}, nil
	}
	return NewProducer(cfg)
}
