package kafka

import (
	"context"
	"testing"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildSASLMechanism(t *testing.T) {
	Convey("TestBuildSASLMechanism", t, func() {
		Convey("未启用返回 nil", func() {
			m, err := buildSASLMechanism(config.KafkaCfg{SASLMechanism: "PLAIN"})
			So(err, ShouldBeNil)
			So(m, ShouldBeNil)
		})

		Convey("支持的机制", func() {
			for _, mech := range []string{"", "plain", "SCRAM-SHA-256", "SCRAM-SHA-512"} {
				m, err := buildSASLMechanism(config.KafkaCfg{SASLEnabled: true, SASLMechanism: mech, SASLUsername: "u", SASLPassword: "p"})
				So(err, ShouldBeNil)
				So(m, ShouldNotBeNil)
			}
		})

		Convey("不支持的机制", func() {
			_, err := buildSASLMechanism(config.KafkaCfg{SASLEnabled: true, SASLMechanism: "GSSAPI"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "不支持的 SASL 机制")
		})
	})
}

func TestNewProducer(t *testing.T) {
	Convey("TestNewProducer", t, func() {
		Convey("未配置 broker", func() {
			p, err := NewProducer(config.KafkaCfg{Topic: "t"})
			So(err, ShouldNotBeNil)
			So(p, ShouldBeNil)
		})

		Convey("创建成功", func() {
			p, err := NewProducer(config.KafkaCfg{Brokers: []string{"localhost:9092"}, Topic: "t"})
			So(err, ShouldBeNil)
			So(p.(*Producer).writer.Topic, ShouldEqual, "t")
			So(p.Close(), ShouldBeNil)
		})
	})
}

func TestProducer_PublishReportChanged(t *testing.T) {
	Convey("TestProducer_PublishReportChanged", t, func() {
		event := dependency.ReportChanged{
			Action: dependency.ActionInsert, ReportID: 7, Vessel: "KCL 1", Generation: 2,
			Time: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		}

		Convey("writer 为 nil", func() {
			err := (&Producer{}).PublishReportChanged(context.Background(), event)
			So(err, ShouldNotBeNil)
		})

		Convey("按船名作为 key 写入", func() {
			producer, _ := NewProducer(config.KafkaCfg{Brokers: []string{"localhost:9092"}, Topic: "t"})
			p := producer.(*Producer)
			defer p.Close()

			var captured []kafka.Message
			patches := gomonkey.ApplyMethod(p.writer, "WriteMessages",
				func(_ *kafka.Writer, ctx context.Context, msgs ...kafka.Message) error {
					captured = append(captured, msgs...)
					return nil
				})
			defer patches.Reset()

			So(p.PublishReportChanged(context.Background(), event), ShouldBeNil)
			So(len(captured), ShouldEqual, 1)
			So(string(captured[0].Key), ShouldEqual, "KCL 1")

			var got dependency.ReportChanged
			So(sonic.Unmarshal(captured[0].Value, &got), ShouldBeNil)
			So(got.ReportID, ShouldEqual, 7)
			So(got.Action, ShouldEqual, dependency.ActionInsert)
		})

		Convey("写入失败", func() {
			producer, _ := NewProducer(config.KafkaCfg{Brokers: []string{"localhost:9092"}, Topic: "t"})
			p := producer.(*Producer)
			defer p.Close()

			writeErr := errors.New("write failed")
			patches := gomonkey.ApplyMethod(p.writer, "WriteMessages",
				func(_ *kafka.Writer, ctx context.Context, msgs ...kafka.Message) error {
					return writeErr
				})
			defer patches.Reset()

			So(p.PublishReportChanged(context.Background(), event), ShouldEqual, writeErr)
		})
	})
}

func TestNewEventPublisher(t *testing.T) {
	Convey("TestNewEventPublisher", t, func() {
		old := config.Get()
		defer config.Set(old)
		config.Set(&config.GlobalCfg{})

		p, err := NewEventPublisher()
		So(err, ShouldBeNil)
		So(p, ShouldHaveSameTypeAs, LogPublisher{})
		So(p.PublishReportChanged(context.Background(), dependency.ReportChanged{}), ShouldBeNil)
	})
}
