package wxlog

import (
	"os"
	"sync/atomic"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

const maxQueuedMessages = 1024

// Logger 异步日志池：有界队列 + 单消费协程，按天切割写文件。
// 队列满或已关闭时生产方退化为同步直写，避免丢消息。
type Logger struct {
	ch     chan string
	done   chan struct{}
	out    *logrus.Logger
	closed atomic.Bool
}

// New 创建异步日志器并启动消费协程，日志写入 dir 下按天切割的文件
func New(dir string) *Logger {
	_ = os.MkdirAll(dir, 0755)

	log := logrus.New()
	writer, _ := rotatelogs.New(
		dir+"/wxpay.log.%Y-%m-%d",
		rotatelogs.WithLinkName(dir+"/wxpay.log"),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	log.SetOutput(writer)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	log.SetLevel(logrus.InfoLevel)

	l := &Logger{
		ch:   make(chan string, maxQueuedMessages),
		done: make(chan struct{}),
		out:  log,
	}
	go l.consume()
	return l
}

func (l *Logger) consume() {
	for msg := range l.ch {
		l.out.Info(msg)
	}
	close(l.done)
}

// Enqueue 投递一条日志，满/已关闭时同步直写
func (l *Logger) Enqueue(msg string) {
	if !l.closed.Load() {
		select {
		case l.ch <- msg:
			return
		default:
		}
	}
	l.out.Info(msg)
}

// Close 关闭队列并等待消费协程把积压写完。关闭后 Enqueue 退化为同步直写。
func (l *Logger) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.ch)
		<-l.done
	}
}
