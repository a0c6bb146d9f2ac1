package mq

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xh-polaris/gopkg/util/log"
	"golang.org/x/net/context"

	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/domain/history"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
	"github.com/xh-polaris/croply-core/biz/infrastructure/mapper/diagnosis"
)

// ArchiveConsumer 消费归档消息并把诊断记录写入Mongo
// 只读本地历史的持久化键, 不写, 写入方始终只有历史集合本身
type ArchiveConsumer struct {
	conn   *amqp.Connection
	finish chan struct{}
}

// NewArchiveConsumer 创建一个消费者
func NewArchiveConsumer() *ArchiveConsumer {
	return &ArchiveConsumer{
		conn:   getConn(),
		finish: make(chan struct{}),
	}
}

// Consume 启动消费者
func Consume() {
	consumer := NewArchiveConsumer()
	consumer.Start()
}

// Start 开始消费
func (c *ArchiveConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动消息处理
	gopool.CtxGo(ctx, func() {
		c.consume(ctx)
	})
	// 处理系统信号
	gopool.CtxGo(ctx, func() {
		c.osSignalHandler(ctx)
		c.finish <- struct{}{}
	})

	<-c.finish
}

// 消费信息
func (c *ArchiveConsumer) consume(ctx context.Context) {
	ch, err := c.conn.Channel()
	if err != nil {
		log.Error("get channel error:", err)
		return
	}
	defer func() { _ = ch.Close() }()
	err = ch.Qos(1, 0, false)
	if err != nil {
		log.Error("set qos error:", err)
		return
	}
	msgs, err := ch.Consume(Queue, "archive_consumer", false, false, false, false, nil)
	if err != nil {
		log.Error("get consume error:", err)
		return
	}

	for msg := range msgs {
		if err = c.process(ctx, msg); err != nil {
			// 失败时拒绝并重试
			log.Error("处理失败，消息重新入队:", err)
			if err = msg.Nack(false, true); err != nil {
				log.Error("nack失败 ", err)
			}
		} else if err = msg.Ack(false); err != nil {
			log.Error("ack失败 ", err)
		}
	}
}

// osSignalHandler 处理os信号
func (c *ArchiveConsumer) osSignalHandler(ctx context.Context) {
	log.CtxInfo(ctx, "[osSignalHandler] start")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	osSignal := <-ch
	log.CtxInfo(ctx, "[osSignalHandler] receive signal:[%v]", osSignal)
}

// process 实际消费逻辑
func (c *ArchiveConsumer) process(ctx context.Context, msg amqp.Delivery) error {
	var m map[string]interface{}
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}
	id, ok := m["record_id"].(float64)
	if !ok {
		return fmt.Errorf("消息缺少record_id")
	}

	rec, err := c.lookup(int64(id))
	if err != nil {
		return err
	}
	if rec == nil {
		// 记录可能已被删除或淘汰, 丢弃消息
		log.Info("归档目标不存在, record_id: ", int64(id))
		return nil
	}

	return c.store(ctx, rec)
}

// lookup 从持久化历史中查找记录, 淘汰或删除后返回nil
func (c *ArchiveConsumer) lookup(id int64) (*history.Record, error) {
	rs := domain.GetRedisHelper()
	raw, err := rs.Load(consts.KeyHistory)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var records []*history.Record
	if err = json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

// store 归档一条诊断记录
func (c *ArchiveConsumer) store(ctx context.Context, rec *history.Record) error {
	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		ts = time.UnixMilli(rec.ID)
	}
	mapper := diagnosis.GetMongoMapper()
	return mapper.Insert(ctx, &diagnosis.Diagnosis{
		RecordID:   rec.ID,
		PlantName:  rec.PlantName,
		Class:      rec.Class,
		Confidence: rec.Confidence,
		Detail:     rec.Detail,
		Language:   rec.Language,
		Timestamp:  ts,
	})
}
