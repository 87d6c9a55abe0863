package logsvc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maqomuz/maktab/core"
)

// ZapLogger is the structured console logger used in DEV/TEST where rollbar
// reporting is disabled.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(conf *core.Config) *ZapLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if conf.Debug {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if conf.Debug {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	zcore := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	logger := zap.New(zcore, zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, kvArgs(args)...) }
func (l ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infow(msg, kvArgs(args)...) }
func (l ZapLogger) Warn(msg string, args ...interface{})  { l.sugar.Warnw(msg, kvArgs(args)...) }
func (l ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, kvArgs(args)...) }
func (l ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalw(msg, kvArgs(args)...) }

// kvArgs adapts positional context args to zap's key/value pairs.
func kvArgs(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(args)*2)
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			kvs = append(kvs, "error", err)
			continue
		}
		kvs = append(kvs, "context", arg)
	}
	return kvs
}
