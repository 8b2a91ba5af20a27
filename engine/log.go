package engine

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logEvent is one queued log line; Logger's writer goroutine is the only
// thing touching the underlying logrus entry, so search code never blocks
// on file I/O.
type logEvent struct {
	level logrus.Level
	msg   string
	field logrus.Fields
}

// Logger is a buffered, single-writer-goroutine logger over logrus: callers
// queue structured entries, and only the writer goroutine touches the file.
type Logger struct {
	entry *logrus.Entry
	queue chan logEvent
	done  chan struct{}
}

// NewLogger opens filename for append, rotating any existing file to
// filename+".old" first, and starts the background writer.
func NewLogger(filename string) (*Logger, error) {
	if _, err := os.Stat(filename); err == nil {
		_ = os.Rename(filename, filename+".old")
	}
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l := &Logger{
		entry: logrus.NewEntry(log),
		queue: make(chan logEvent, 256),
		done:  make(chan struct{}),
	}
	go l.writer()
	return l, nil
}

// Log queues a log line; if the queue is full the entry is dropped rather
// than blocking the caller (typically a search worker).
func (l *Logger) Log(level logrus.Level, msg string, fields logrus.Fields) {
	if l == nil {
		return
	}
	select {
	case l.queue <- logEvent{level: level, msg: msg, field: fields}:
	default:
	}
}

// Info is shorthand for Log(logrus.InfoLevel, ...).
func (l *Logger) Info(msg string, fields logrus.Fields) {
	l.Log(logrus.InfoLevel, msg, fields)
}

// Close drains the queue and releases the underlying file.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	close(l.queue)
	<-l.done
}

func (l *Logger) writer() {
	for ev := range l.queue {
		l.entry.WithFields(ev.field).Log(ev.level, ev.msg)
	}
	close(l.done)
}
