package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"mungebits/sink"
)

type Config struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	Acks    *int16   `koanf:"required_acks"` // 0,1,-1; unset waits for the leader
}

type driver struct {
	cfg Config
	p   sarama.SyncProducer
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: topic is required")
	}
	d.cfg = cfg

	var err error
	d.p, err = sarama.NewSyncProducer(cfg.Brokers, producerConfig(cfg))
	return err
}

func producerConfig(cfg Config) *sarama.Config {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	if cfg.Acks != nil {
		sc.Producer.RequiredAcks = sarama.RequiredAcks(*cfg.Acks)
	}
	sc.Producer.Return.Successes = true
	return sc
}

// Push produces one message per row, keyed like the source record.
func (d *driver) Push(b sink.Batch) error {
	recs := b.Frame.Records()
	msgs := make([]*sarama.ProducerMessage, 0, len(recs))
	for _, rec := range recs {
		v, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("kafka-sink: %w", err)
		}
		m := &sarama.ProducerMessage{Topic: d.cfg.Topic, Value: sarama.ByteEncoder(v)}
		if b.Key != nil {
			m.Key = sarama.ByteEncoder(b.Key)
		}
		msgs = append(msgs, m)
	}
	if len(msgs) == 0 {
		return nil
	}
	return d.p.SendMessages(msgs)
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	return d.p.Close()
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
