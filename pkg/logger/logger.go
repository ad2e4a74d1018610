package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"leaguestats/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger that we will use to save our logs.
// Every entry goes to stdout and to a temporary file that can be shipped to the bucket.
type NewLogger struct {
	mu       sync.Mutex
	sugar    *zap.SugaredLogger
	logFile  *os.File
	filePath string
	bucket   config.BucketConfiguration
}

// Create the log instance with a temporary file.
func CreateLogger(bucket config.BucketConfiguration) (*NewLogger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, fmt.Errorf("couldn't create the log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	l := &NewLogger{
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucket,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(&lockedFile{l: l}), zap.InfoLevel),
	)
	l.sugar = zap.New(core).Sugar()

	return l, nil
}

// Nop returns a logger that discards everything, used on tests.
func Nop() *NewLogger {
	return &NewLogger{sugar: zap.NewNop().Sugar()}
}

// Log a simple info.
func (l *NewLogger) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Log a warning.
func (l *NewLogger) Warnf(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Log a error.
func (l *NewLogger) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// With returns a zap logger carrying the given fields, for request scoped logging.
func (l *NewLogger) With(args ...any) *zap.SugaredLogger {
	return l.sugar.With(args...)
}

// Write a empty line.
func (l *NewLogger) EmptyLine() {
	if l.logFile == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logFile.WriteString("\n")
}

// Flush the buffered entries.
func (l *NewLogger) Sync() error {
	return l.sugar.Sync()
}

// Clean the file contents.
func (l *NewLogger) CleanFile() {
	if l.logFile == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// Close and remove the temporary file.
func (l *NewLogger) Close() error {
	if l.logFile == nil {
		return nil
	}
	l.sugar.Sync()
	l.logFile.Close()
	return os.Remove(l.filePath)
}

// Upload the log to a s3 bucket.
func (l *NewLogger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	if l.logFile == nil || !l.bucket.Enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	cfg := aws.Config{
		Region: l.bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				l.bucket.AccessKey,
				l.bucket.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(l.bucket.Endpoint)
	})

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)

	return nil
}

// Writer for the file core, shares the mutex with the upload.
type lockedFile struct {
	l *NewLogger
}

func (w *lockedFile) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.logFile.Write(p)
}
