package log

import (
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	Component string         `json:"component,omitempty"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Locale    string         `json:"locale,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func emit(out *log.Logger, e entry, err error) {
	e.TS = time.Now().UTC().Format(time.RFC3339)
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	if out == nil {
		log.Println(string(b))
		return
	}
	out.Println(string(b))
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if loc, ok := c.Locals("locale").(string); ok {
			e.Locale = loc
		}
	}
	emit(nil, e, err)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}

// Logger writes the same JSON lines for code that has no request context
// (stores, services, the CMS client). A nil *Logger discards.
type Logger struct {
	out       *log.Logger
	component string
}

// New logs to w. A nil w means the process-wide standard logger, so output
// follows log.SetOutput.
func New(w io.Writer) *Logger {
	if w == nil {
		return &Logger{}
	}
	return &Logger{out: log.New(w, "", 0)}
}

// Discard drops everything; handy in tests.
func Discard() *Logger { return nil }

// With returns a logger tagging every line with component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{out: l.out, component: component}
}

func (l *Logger) Info(action string, fields map[string]any) { l.write("info", action, nil, fields) }
func (l *Logger) Warn(action string, fields map[string]any) { l.write("warn", action, nil, fields) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.write("error", action, err, fields)
}

func (l *Logger) write(level, action string, err error, fields map[string]any) {
	if l == nil {
		return
	}
	emit(l.out, entry{Level: level, Component: l.component, Action: action, Fields: fields}, err)
}
