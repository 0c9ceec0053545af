package service

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type fakeAI struct {
	enabled    bool
	extraction *IntentExtraction
	err        error
	vectors    [][]float32
	calls      int
}

func (f *fakeAI) ExtractIntent(_ context.Context, _ string) (*IntentExtraction, error) {
	f.calls++
	return f.extraction, f.err
}

func (f *fakeAI) CreateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.vectors != nil {
		return f.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (f *fakeAI) IsEnabled() bool { return f.enabled }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
