package kafka

import (
	"strings"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// buildSASLMechanism 根据配置构建 SASL 认证机制，未启用时返回 nil
func buildSASLMechanism(cfg config.KafkaCfg) (sasl.Mechanism, error) {
	if !cfg.SASLEnabled {
		return nil, nil
	}

	switch strings.ToUpper(cfg.SASLMechanism) {
	case "PLAIN", "":
		return plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}, nil
	case "SCRAM-SHA-256":
		mechanism, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, errors.Wrap(err, "创建 SCRAM-SHA-256 认证失败")
		}
		return mechanism, nil
	case "SCRAM-SHA-512":
		mechanism, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, errors.Wrap(err, "创建 SCRAM-SHA-512 认证失败")
		}
		log.Debugf("使用 SCRAM-SHA-512 认证机制")
		return mechanism, nil
	default:
		return nil, errors.Errorf("不支持的 SASL 机制: %s", cfg.SASLMechanism)
	}
}
