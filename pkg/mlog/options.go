package mlog

import "go.uber.org/zap/zapcore"

type Options struct {
	NodeRole string
	Level    zapcore.Level
	LogDir   string
	LineNum  bool
	NoStdout bool
}

func NewOptions() *Options {

	return &Options{
		LogDir: "./logs",
	}
}
