package cmd

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

func setLogger(filePath string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    5,
		MaxBackups: 5,
		Compress:   true,
	}, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
	slog.Debug("DEBUGGING ENABLED")
	return nil
}
